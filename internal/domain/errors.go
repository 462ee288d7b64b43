package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidScheduleID   = errors.New("invalid schedule id")
	ErrInvalidScheduleName = errors.New("invalid schedule name")
	ErrInvalidDateRange    = errors.New("invalid schedule date range")
	ErrInvalidShiftSlot    = errors.New("invalid shift slot")
	ErrInvalidQuota        = errors.New("invalid quota")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidAssignmentID = errors.New("invalid assignment id")
	ErrRoleNotInArea       = errors.New("role does not belong to area")

	// State conflict errors
	ErrInvalidTransition      = errors.New("invalid lifecycle transition")
	ErrScheduleNotDraft       = errors.New("schedule is not in draft status")
	ErrScheduleNotActive      = errors.New("schedule is not in active status")
	ErrScheduleNotEnded       = errors.New("schedule has not ended yet")
	ErrScheduleEmpty          = errors.New("schedule has no assignments")
	ErrScheduleImmutable      = errors.New("schedule no longer accepts mutations")
	ErrAssignmentsExist       = errors.New("schedule already has assignments")
	ErrConfirmationRequired   = errors.New("regeneration requires explicit confirmation")
	ErrDuplicateAssignment    = errors.New("user already assigned to this role in schedule")
	ErrSwapAlreadyOpen        = errors.New("open swap request already exists for assignment")
	ErrNoOpenSwap             = errors.New("no open swap request for assignment")
	ErrReplacementNotEligible = errors.New("replacement user is not eligible")

	// Eligibility errors
	ErrNoEligibleReplacement = errors.New("no eligible replacement candidate available")

	// Authorization errors
	ErrUnauthorized      = errors.New("missing or invalid access token")
	ErrCapabilityMissing = errors.New("caller lacks required capability")

	// Not found errors
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAreaNotFound       = errors.New("area not found")

	// Retryable errors
	ErrReadModelUnavailable = errors.New("availability or history read model unavailable")
)

// HTTPError для ответа API
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrInvalidScheduleID:   {Code: "VALIDATION", Message: "schedule id is required"},
	ErrInvalidScheduleName: {Code: "VALIDATION", Message: "schedule name is required"},
	ErrInvalidDateRange:    {Code: "VALIDATION", Message: "schedule end must be after start"},
	ErrInvalidShiftSlot:    {Code: "VALIDATION", Message: "shift slot is required"},
	ErrInvalidQuota:        {Code: "VALIDATION", Message: "quota must reference area, role and positive count"},
	ErrInvalidUserID:       {Code: "VALIDATION", Message: "user id is required"},
	ErrInvalidAssignmentID: {Code: "VALIDATION", Message: "assignment id is required"},
	ErrRoleNotInArea:       {Code: "VALIDATION", Message: "role does not belong to the given area"},

	ErrInvalidTransition:      {Code: "STATE_CONFLICT", Message: "lifecycle transition is not allowed"},
	ErrScheduleNotDraft:       {Code: "STATE_CONFLICT", Message: "operation requires a draft schedule"},
	ErrScheduleNotActive:      {Code: "STATE_CONFLICT", Message: "operation requires an active schedule"},
	ErrScheduleNotEnded:       {Code: "STATE_CONFLICT", Message: "schedule end timestamp has not passed"},
	ErrScheduleEmpty:          {Code: "STATE_CONFLICT", Message: "cannot publish a schedule without assignments"},
	ErrScheduleImmutable:      {Code: "STATE_CONFLICT", Message: "completed or deleted schedules accept no mutations"},
	ErrAssignmentsExist:       {Code: "STATE_CONFLICT", Message: "assignments already exist, use regenerate"},
	ErrConfirmationRequired:   {Code: "CONFIRM_REQUIRED", Message: "regeneration discards existing assignments, confirm flag required"},
	ErrDuplicateAssignment:    {Code: "STATE_CONFLICT", Message: "user already holds an assignment in this schedule"},
	ErrSwapAlreadyOpen:        {Code: "STATE_CONFLICT", Message: "an open swap request already exists"},
	ErrNoOpenSwap:             {Code: "STATE_CONFLICT", Message: "no open swap request to resolve"},
	ErrReplacementNotEligible: {Code: "STATE_CONFLICT", Message: "replacement user is not eligible for this assignment"},

	ErrNoEligibleReplacement: {Code: "NO_CANDIDATE", Message: "no eligible replacement candidate available"},

	ErrUnauthorized:      {Code: "UNAUTHORIZED", Message: "missing or invalid access token"},
	ErrCapabilityMissing: {Code: "FORBIDDEN", Message: "caller lacks required capability"},

	ErrScheduleNotFound:   {Code: "NOT_FOUND", Message: "schedule not found"},
	ErrAssignmentNotFound: {Code: "NOT_FOUND", Message: "assignment not found"},
	ErrUserNotFound:       {Code: "NOT_FOUND", Message: "user not found"},
	ErrAreaNotFound:       {Code: "NOT_FOUND", Message: "area not found"},

	ErrReadModelUnavailable: {Code: "RETRY_LATER", Message: "availability or history read failed, retry the operation"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	for domainErr, httpErr := range ErrorMapping {
		if errors.Is(err, domainErr) {
			return httpErr, true
		}
	}
	return HTTPError{}, false
}
