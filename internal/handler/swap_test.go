package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roster-service/internal/domain"
	"roster-service/internal/handler"
	"roster-service/tests/mocks"
)

func newSwapHandler() (*handler.SwapHandler, *mocks.SwapUseCase) {
	uc := &mocks.SwapUseCase{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return handler.NewSwapHandler(uc, logger), uc
}

func TestPostSwap_Created(t *testing.T) {
	h, uc := newSwapHandler()
	c, rec := newContext(http.MethodPost, "/schedules/sched-1/swap",
		`{"assignment_id":"asg-1"}`)
	withScheduleID(c, "sched-1")

	uc.On("OpenSwap", mock.Anything, "sched-1", "asg-1").Return(&domain.SwapRequest{
		ID:           "swap-1",
		AssignmentID: "asg-1",
		RequestedAt:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Resolution:   domain.SwapOpen,
	}, nil)

	require.NoError(t, h.PostSwap(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]handler.SwapView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "swap-1", resp["swap"].SwapID)
	assert.Equal(t, "OPEN", resp["swap"].Resolution)
}

func TestPostSwap_AlreadyOpen(t *testing.T) {
	h, uc := newSwapHandler()
	c, rec := newContext(http.MethodPost, "/schedules/sched-1/swap",
		`{"assignment_id":"asg-1"}`)
	withScheduleID(c, "sched-1")

	uc.On("OpenSwap", mock.Anything, "sched-1", "asg-1").
		Return(nil, domain.ErrSwapAlreadyOpen)

	require.NoError(t, h.PostSwap(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "STATE_CONFLICT", resp.Error.Code)
}

func TestGetSwapCandidates_ReturnsSortedList(t *testing.T) {
	h, uc := newSwapHandler()
	c, rec := newContext(http.MethodGet, "/schedules/sched-1/swap/candidates?assignment_id=asg-1", "")
	withScheduleID(c, "sched-1")

	uc.On("ListEligibleReplacements", mock.Anything, "sched-1", "asg-1").
		Return([]*domain.User{
			{ID: "U2", DisplayName: "Ana"},
			{ID: "U5", DisplayName: "Bruno"},
		}, nil)

	require.NoError(t, h.GetSwapCandidates(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string][]handler.CandidateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp["candidates"], 2)
	assert.Equal(t, "U2", resp["candidates"][0].UserID)
	assert.Equal(t, "Ana", resp["candidates"][0].DisplayName)
}

func TestPostSwapResolve_Accept(t *testing.T) {
	h, uc := newSwapHandler()
	c, rec := newContext(http.MethodPost, "/schedules/sched-1/swap/resolve",
		`{"assignment_id":"asg-1","accept":true,"replacement_user_id":"U3"}`)
	withScheduleID(c, "sched-1")

	uc.On("ResolveSwap", mock.Anything, "sched-1", "asg-1", true, "U3").
		Return(&domain.Assignment{
			ID:         "asg-1",
			ScheduleID: "sched-1",
			UserID:     "U3",
			Status:     domain.AssignmentPending,
		}, nil)

	require.NoError(t, h.PostSwapResolve(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]handler.AssignmentView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "U3", resp["assignment"].UserID)
	assert.Equal(t, "PENDING", resp["assignment"].Status)
}

func TestPostSwapResolve_NoOpenSwap(t *testing.T) {
	h, uc := newSwapHandler()
	c, rec := newContext(http.MethodPost, "/schedules/sched-1/swap/resolve",
		`{"assignment_id":"asg-1","accept":false}`)
	withScheduleID(c, "sched-1")

	uc.On("ResolveSwap", mock.Anything, "sched-1", "asg-1", false, "").
		Return(nil, domain.ErrNoOpenSwap)

	require.NoError(t, h.PostSwapResolve(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPostSwapResolve_NoEligibleReplacement(t *testing.T) {
	h, uc := newSwapHandler()
	c, rec := newContext(http.MethodPost, "/schedules/sched-1/swap/resolve",
		`{"assignment_id":"asg-1","accept":true}`)
	withScheduleID(c, "sched-1")

	uc.On("ResolveSwap", mock.Anything, "sched-1", "asg-1", true, "").
		Return(nil, domain.ErrNoEligibleReplacement)

	require.NoError(t, h.PostSwapResolve(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NO_CANDIDATE", resp.Error.Code)
}
