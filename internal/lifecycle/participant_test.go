package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roster-service/internal/domain"
	"roster-service/internal/lifecycle"
)

func TestParticipantLifecycle_ConfirmPresence(t *testing.T) {
	next, err := lifecycle.ConfirmPresence(domain.AssignmentPending)
	assert.NoError(t, err)
	assert.Equal(t, domain.AssignmentConfirmed, next)

	// Повторное подтверждение идемпотентно.
	next, err = lifecycle.ConfirmPresence(domain.AssignmentConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, domain.AssignmentConfirmed, next)

	_, err = lifecycle.ConfirmPresence(domain.AssignmentSwapRequested)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestParticipantLifecycle_RequestSwap(t *testing.T) {
	next, err := lifecycle.RequestSwap(domain.AssignmentPending)
	assert.NoError(t, err)
	assert.Equal(t, domain.AssignmentSwapRequested, next)

	next, err = lifecycle.RequestSwap(domain.AssignmentConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, domain.AssignmentSwapRequested, next)

	_, err = lifecycle.RequestSwap(domain.AssignmentSwapRequested)
	assert.ErrorIs(t, err, domain.ErrSwapAlreadyOpen)
}

func TestParticipantLifecycle_ResolveSwap(t *testing.T) {
	// Принятая замена: назначение передается новому участнику в PENDING.
	next, err := lifecycle.ResolveSwap(domain.AssignmentSwapRequested, true)
	assert.NoError(t, err)
	assert.Equal(t, domain.AssignmentPending, next)

	// Отклоненная замена: исходный участник остается в CONFIRMED.
	next, err = lifecycle.ResolveSwap(domain.AssignmentSwapRequested, false)
	assert.NoError(t, err)
	assert.Equal(t, domain.AssignmentConfirmed, next)

	_, err = lifecycle.ResolveSwap(domain.AssignmentPending, true)
	assert.ErrorIs(t, err, domain.ErrNoOpenSwap)

	_, err = lifecycle.ResolveSwap(domain.AssignmentConfirmed, false)
	assert.ErrorIs(t, err, domain.ErrNoOpenSwap)
}
