package handler

import "time"

// Запросы и представления API. Формы повторяют публичный контракт §6
// и не зависят от доменных типов.

type QuotaPayload struct {
	AreaID string `json:"area_id"`
	RoleID string `json:"role_id"`
	Count  int    `json:"count"`
}

type CreateScheduleRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Local       string    `json:"local"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	ShiftSlot   string    `json:"shift_slot"`
}

type GenerateRequest struct {
	Quotas []QuotaPayload `json:"quotas"`
}

type RegenerateRequest struct {
	Quotas  []QuotaPayload `json:"quotas"`
	Confirm bool           `json:"confirm"`
}

type AddParticipantsRequest struct {
	UserIDs []string `json:"user_ids"`
	AreaID  string   `json:"area_id"`
	RoleID  string   `json:"role_id"`
}

type RemoveParticipantsRequest struct {
	AssignmentIDs []string `json:"assignment_ids"`
}

type AssignmentRef struct {
	AssignmentID string `json:"assignment_id"`
}

type ResolveSwapRequest struct {
	AssignmentID      string `json:"assignment_id"`
	Accept            bool   `json:"accept"`
	ReplacementUserID string `json:"replacement_user_id,omitempty"`
}

type ScheduleView struct {
	ScheduleID  string    `json:"schedule_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Local       string    `json:"local"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	ShiftSlot   string    `json:"shift_slot"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

type AssignmentView struct {
	AssignmentID string `json:"assignment_id"`
	UserID       string `json:"user_id"`
	AreaID       string `json:"area_id"`
	RoleID       string `json:"role_id"`
	Status       string `json:"status"`
	Position     int    `json:"position"`
}

type SwapView struct {
	SwapID       string    `json:"swap_id"`
	AssignmentID string    `json:"assignment_id"`
	RequestedAt  time.Time `json:"requested_at"`
	Resolution   string    `json:"resolution"`
}

type SnapshotView struct {
	Schedule    ScheduleView     `json:"schedule"`
	Assignments []AssignmentView `json:"assignments"`
	OpenSwaps   []SwapView       `json:"open_swaps"`
}

type DeficiencyView struct {
	AreaID    string `json:"area_id"`
	RoleID    string `json:"role_id"`
	Requested int    `json:"requested"`
	Fulfilled int    `json:"fulfilled"`
}

type GenerationView struct {
	Schedule     SnapshotView     `json:"schedule"`
	Deficiencies []DeficiencyView `json:"deficiencies"`
}

type CandidateView struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}
