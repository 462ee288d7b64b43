package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roster-service/internal/domain"
	"roster-service/internal/usecase"
	"roster-service/tests/mocks"
)

type swapMocks struct {
	schedules    *mocks.ScheduleRepository
	swaps        *mocks.SwapRepository
	users        *mocks.UserRepository
	availability *mocks.AvailabilityRepository
}

func newSwapWorkflow() (domain.SwapUseCase, *swapMocks) {
	m := &swapMocks{
		schedules:    &mocks.ScheduleRepository{},
		swaps:        &mocks.SwapRepository{},
		users:        &mocks.UserRepository{},
		availability: &mocks.AvailabilityRepository{},
	}
	uc := usecase.NewSwapWorkflow(
		m.schedules, m.swaps, m.users, m.availability,
		usecase.NewScheduleLocker(),
		func() time.Time { return testNow },
	)
	return uc, m
}

func activeSchedule() *domain.Schedule {
	schedule := draftSchedule()
	schedule.Status = domain.ScheduleActive
	return schedule
}

func swapAssignment(status domain.AssignmentStatus) *domain.Assignment {
	return &domain.Assignment{
		ID:         "asg-1",
		ScheduleID: "sched-1",
		UserID:     "U1",
		AreaID:     "area-1",
		RoleID:     "role-5",
		Status:     status,
	}
}

func TestSwapWorkflow_OpenSwap_Success(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()

	m.schedules.On("GetByID", ctx, "sched-1").Return(activeSchedule(), nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentConfirmed), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").Return(nil, nil)
	m.swaps.On("Open", ctx, mock.AnythingOfType("*domain.SwapRequest"), domain.AssignmentSwapRequested).Return(nil)

	swap, err := uc.OpenSwap(ctx, "sched-1", "asg-1")

	require.NoError(t, err)
	assert.NotEmpty(t, swap.ID)
	assert.Equal(t, "asg-1", swap.AssignmentID)
	assert.Equal(t, domain.SwapOpen, swap.Resolution)
	assert.Equal(t, testNow, swap.RequestedAt)
	// Запрос и статус назначения пишутся одним вызовом хранилища.
	m.schedules.AssertNotCalled(t, "UpdateAssignmentStatus", mock.Anything, mock.Anything, mock.Anything)
	m.swaps.AssertExpectations(t)
	m.schedules.AssertExpectations(t)
}

func TestSwapWorkflow_OpenSwap_FailedWriteLeavesAssignmentReopenable(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()

	m.schedules.On("GetByID", ctx, "sched-1").Return(activeSchedule(), nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentConfirmed), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").Return(nil, nil)
	m.swaps.On("Open", ctx, mock.AnythingOfType("*domain.SwapRequest"), domain.AssignmentSwapRequested).
		Return(errors.New("connection reset")).Once()
	m.swaps.On("Open", ctx, mock.AnythingOfType("*domain.SwapRequest"), domain.AssignmentSwapRequested).
		Return(nil).Once()

	// Сбой атомарной записи не оставляет ни открытого запроса, ни
	// измененного статуса: повторная попытка проходит.
	_, err := uc.OpenSwap(ctx, "sched-1", "asg-1")
	require.Error(t, err)

	swap, err := uc.OpenSwap(ctx, "sched-1", "asg-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SwapOpen, swap.Resolution)
	m.swaps.AssertExpectations(t)
}

func TestSwapWorkflow_OpenSwap_AlreadyOpen(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()

	m.schedules.On("GetByID", ctx, "sched-1").Return(activeSchedule(), nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentSwapRequested), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").
		Return(&domain.SwapRequest{ID: "swap-1", AssignmentID: "asg-1", Resolution: domain.SwapOpen}, nil)

	_, err := uc.OpenSwap(ctx, "sched-1", "asg-1")

	assert.ErrorIs(t, err, domain.ErrSwapAlreadyOpen)
	m.swaps.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestSwapWorkflow_OpenSwap_ImmutableSchedule(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()

	complete := draftSchedule()
	complete.Status = domain.ScheduleComplete
	m.schedules.On("GetByID", ctx, "sched-1").Return(complete, nil)

	_, err := uc.OpenSwap(ctx, "sched-1", "asg-1")

	assert.ErrorIs(t, err, domain.ErrScheduleImmutable)
}

func TestSwapWorkflow_ResolveSwap_NoOpenRequest(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()

	m.schedules.On("GetByID", ctx, "sched-1").Return(activeSchedule(), nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentConfirmed), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").Return(nil, nil)

	_, err := uc.ResolveSwap(ctx, "sched-1", "asg-1", true, "")

	assert.ErrorIs(t, err, domain.ErrNoOpenSwap)
}

func TestSwapWorkflow_ResolveSwap_RejectRestoresConfirmed(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()

	m.schedules.On("GetByID", ctx, "sched-1").Return(activeSchedule(), nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentSwapRequested), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").
		Return(&domain.SwapRequest{ID: "swap-1", AssignmentID: "asg-1", Resolution: domain.SwapOpen}, nil)
	m.swaps.On("Close", ctx, "swap-1", domain.SwapCancelled, "asg-1", "U1", domain.AssignmentConfirmed).Return(nil)

	assignment, err := uc.ResolveSwap(ctx, "sched-1", "asg-1", false, "")

	require.NoError(t, err)
	assert.Equal(t, "U1", assignment.UserID)
	assert.Equal(t, domain.AssignmentConfirmed, assignment.Status)
	m.swaps.AssertExpectations(t)
}

func TestSwapWorkflow_ResolveSwap_AcceptReassignsToPending(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()
	schedule := activeSchedule()

	pool := []*domain.User{
		{ID: "U1", Status: domain.UserActive},
		{ID: "U2", Status: domain.UserActive},
		{ID: "U3", Status: domain.UserActive},
	}

	m.schedules.On("GetByID", ctx, "sched-1").Return(schedule, nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentSwapRequested), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").
		Return(&domain.SwapRequest{ID: "swap-1", AssignmentID: "asg-1", Resolution: domain.SwapOpen}, nil)
	m.users.On("GetQualifiedUsers", ctx, "area-1", "role-5").Return(pool, nil)
	m.availability.On("GetBlockedUsers", ctx, schedule.StartsAt, "morning").
		Return(map[string]bool{"U2": true}, nil)
	m.schedules.On("GetAssignedUserIDs", ctx, "sched-1").Return(map[string]bool{"U1": true}, nil)
	m.swaps.On("Close", ctx, "swap-1", domain.SwapAccepted, "asg-1", "U3", domain.AssignmentPending).Return(nil)

	assignment, err := uc.ResolveSwap(ctx, "sched-1", "asg-1", true, "")

	require.NoError(t, err)
	// Исходный участник и заблокированный кандидат исключены, остался U3.
	assert.Equal(t, "U3", assignment.UserID)
	assert.Equal(t, domain.AssignmentPending, assignment.Status)
	m.schedules.AssertExpectations(t)
	m.swaps.AssertExpectations(t)
}

func TestSwapWorkflow_ResolveSwap_ExplicitReplacementNotEligible(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()
	schedule := activeSchedule()

	m.schedules.On("GetByID", ctx, "sched-1").Return(schedule, nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentSwapRequested), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").
		Return(&domain.SwapRequest{ID: "swap-1", AssignmentID: "asg-1", Resolution: domain.SwapOpen}, nil)
	m.users.On("GetQualifiedUsers", ctx, "area-1", "role-5").
		Return([]*domain.User{{ID: "U1"}, {ID: "U3"}}, nil)
	m.availability.On("GetBlockedUsers", ctx, schedule.StartsAt, "morning").
		Return(map[string]bool{}, nil)
	m.schedules.On("GetAssignedUserIDs", ctx, "sched-1").Return(map[string]bool{"U1": true}, nil)

	_, err := uc.ResolveSwap(ctx, "sched-1", "asg-1", true, "U9")

	assert.ErrorIs(t, err, domain.ErrReplacementNotEligible)
	m.swaps.AssertNotCalled(t, "Close",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSwapWorkflow_ResolveSwap_NoEligibleReplacement(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()
	schedule := activeSchedule()

	m.schedules.On("GetByID", ctx, "sched-1").Return(schedule, nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentSwapRequested), nil)
	m.swaps.On("GetOpenByAssignment", ctx, "asg-1").
		Return(&domain.SwapRequest{ID: "swap-1", AssignmentID: "asg-1", Resolution: domain.SwapOpen}, nil)
	m.users.On("GetQualifiedUsers", ctx, "area-1", "role-5").
		Return([]*domain.User{{ID: "U1"}}, nil)
	m.availability.On("GetBlockedUsers", ctx, schedule.StartsAt, "morning").
		Return(map[string]bool{}, nil)
	m.schedules.On("GetAssignedUserIDs", ctx, "sched-1").Return(map[string]bool{"U1": true}, nil)

	_, err := uc.ResolveSwap(ctx, "sched-1", "asg-1", true, "")

	assert.ErrorIs(t, err, domain.ErrNoEligibleReplacement)
	m.swaps.AssertNotCalled(t, "Close",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSwapWorkflow_ListEligibleReplacements_SortedByID(t *testing.T) {
	ctx := context.Background()
	uc, m := newSwapWorkflow()
	schedule := activeSchedule()

	m.schedules.On("GetByID", ctx, "sched-1").Return(schedule, nil)
	m.schedules.On("GetAssignment", ctx, "asg-1").
		Return(swapAssignment(domain.AssignmentConfirmed), nil)
	m.users.On("GetQualifiedUsers", ctx, "area-1", "role-5").
		Return([]*domain.User{{ID: "U5"}, {ID: "U2"}, {ID: "U1"}, {ID: "U4"}}, nil)
	m.availability.On("GetBlockedUsers", ctx, schedule.StartsAt, "morning").
		Return(map[string]bool{"U4": true}, nil)
	m.schedules.On("GetAssignedUserIDs", ctx, "sched-1").Return(map[string]bool{"U1": true}, nil)

	candidates, err := uc.ListEligibleReplacements(ctx, "sched-1", "asg-1")

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "U2", candidates[0].ID)
	assert.Equal(t, "U5", candidates[1].ID)
}
