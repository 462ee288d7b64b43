package handler

import (
	"errors"
	"net/http"

	"roster-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toScheduleView(schedule *domain.Schedule) ScheduleView {
	return ScheduleView{
		ScheduleID:  schedule.ID,
		Name:        schedule.Name,
		Description: schedule.Description,
		Local:       schedule.Local,
		StartsAt:    schedule.StartsAt,
		EndsAt:      schedule.EndsAt,
		ShiftSlot:   schedule.ShiftSlot,
		Status:      string(schedule.Status),
		CreatedBy:   schedule.CreatedBy,
		Approved:    schedule.Approved,
		CreatedAt:   schedule.CreatedAt,
	}
}

func toAssignmentView(assignment *domain.Assignment) AssignmentView {
	return AssignmentView{
		AssignmentID: assignment.ID,
		UserID:       assignment.UserID,
		AreaID:       assignment.AreaID,
		RoleID:       assignment.RoleID,
		Status:       string(assignment.Status),
		Position:     assignment.Position,
	}
}

func toSnapshotView(snapshot *domain.ScheduleSnapshot) SnapshotView {
	assignments := make([]AssignmentView, len(snapshot.Assignments))
	for i, assignment := range snapshot.Assignments {
		assignments[i] = toAssignmentView(assignment)
	}
	swaps := make([]SwapView, len(snapshot.OpenSwaps))
	for i, swap := range snapshot.OpenSwaps {
		swaps[i] = toSwapView(swap)
	}
	return SnapshotView{
		Schedule:    toScheduleView(snapshot.Schedule),
		Assignments: assignments,
		OpenSwaps:   swaps,
	}
}

func toSwapView(swap *domain.SwapRequest) SwapView {
	return SwapView{
		SwapID:       swap.ID,
		AssignmentID: swap.AssignmentID,
		RequestedAt:  swap.RequestedAt,
		Resolution:   string(swap.Resolution),
	}
}

func toGenerationView(snapshot *domain.ScheduleSnapshot, deficiencies []domain.Deficiency) GenerationView {
	views := make([]DeficiencyView, len(deficiencies))
	for i, deficiency := range deficiencies {
		views[i] = DeficiencyView{
			AreaID:    deficiency.AreaID,
			RoleID:    deficiency.RoleID,
			Requested: deficiency.Requested,
			Fulfilled: deficiency.Fulfilled,
		}
	}
	return GenerationView{
		Schedule:     toSnapshotView(snapshot),
		Deficiencies: views,
	}
}

func toQuotas(payloads []QuotaPayload) []domain.Quota {
	quotas := make([]domain.Quota, len(payloads))
	for i, payload := range payloads {
		quotas[i] = domain.Quota{
			AreaID: payload.AreaID,
			RoleID: payload.RoleID,
			Count:  payload.Count,
		}
	}
	return quotas
}

func domainError(err error) (domain.ErrorResponse, bool) {
	httpErr, exists := domain.ToHTTPError(err)
	if !exists {
		return domain.ErrorResponse{}, false
	}
	return domain.ErrorResponse{Error: httpErr}, true
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{Code: code, Message: message},
	}
}

func getHTTPStatusCode(err error) int {
	switch {
	// Bad Request errors (400) - валидация
	case errors.Is(err, domain.ErrInvalidScheduleID),
		errors.Is(err, domain.ErrInvalidScheduleName),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidShiftSlot),
		errors.Is(err, domain.ErrInvalidQuota),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidAssignmentID),
		errors.Is(err, domain.ErrRoleNotInArea):
		return http.StatusBadRequest

	// Conflict errors (409)
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrScheduleNotDraft),
		errors.Is(err, domain.ErrScheduleNotActive),
		errors.Is(err, domain.ErrScheduleNotEnded),
		errors.Is(err, domain.ErrScheduleEmpty),
		errors.Is(err, domain.ErrScheduleImmutable),
		errors.Is(err, domain.ErrAssignmentsExist),
		errors.Is(err, domain.ErrConfirmationRequired),
		errors.Is(err, domain.ErrDuplicateAssignment),
		errors.Is(err, domain.ErrSwapAlreadyOpen),
		errors.Is(err, domain.ErrNoOpenSwap),
		errors.Is(err, domain.ErrReplacementNotEligible),
		errors.Is(err, domain.ErrNoEligibleReplacement):
		return http.StatusConflict

	// Authorization errors (401/403)
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrCapabilityMissing):
		return http.StatusForbidden

	// Not Found errors (404)
	case errors.Is(err, domain.ErrScheduleNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAreaNotFound):
		return http.StatusNotFound

	// Retryable read-model failures (503)
	case errors.Is(err, domain.ErrReadModelUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
