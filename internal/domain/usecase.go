package domain

import (
	"context"
	"time"
)

// CreateScheduleInput — данные для создания расписания в статусе DRAFT.
type CreateScheduleInput struct {
	Name        string
	Description string
	Local       string
	StartsAt    time.Time
	EndsAt      time.Time
	ShiftSlot   string
	CreatedBy   string
}

// ScheduleUseCase определяет бизнес-логику координатора расписаний.
// Все мутации для одного расписания сериализуются; чтения не блокируются.
type ScheduleUseCase interface {
	CreateSchedule(ctx context.Context, input CreateScheduleInput) (*Schedule, error)
	ListSchedules(ctx context.Context) ([]*Schedule, error)
	GetSnapshot(ctx context.Context, scheduleID string) (*ScheduleSnapshot, error)

	Generate(ctx context.Context, scheduleID string, quotas []Quota) (*ScheduleSnapshot, []Deficiency, error)
	Regenerate(ctx context.Context, scheduleID string, quotas []Quota, confirm bool) (*ScheduleSnapshot, []Deficiency, error)
	AddParticipants(ctx context.Context, scheduleID string, userIDs []string, areaID, roleID string) (*ScheduleSnapshot, error)
	RemoveParticipants(ctx context.Context, scheduleID string, assignmentIDs []string) (*ScheduleSnapshot, error)

	Publish(ctx context.Context, scheduleID string) (*Schedule, error)
	Complete(ctx context.Context, scheduleID string) (*Schedule, error)
	Delete(ctx context.Context, scheduleID string) error

	ConfirmPresence(ctx context.Context, scheduleID, assignmentID string) (*Assignment, error)
}

// SwapUseCase определяет бизнес-логику workflow замены участника.
type SwapUseCase interface {
	OpenSwap(ctx context.Context, scheduleID, assignmentID string) (*SwapRequest, error)
	ListEligibleReplacements(ctx context.Context, scheduleID, assignmentID string) ([]*User, error)
	ResolveSwap(ctx context.Context, scheduleID, assignmentID string, accept bool, replacementUserID string) (*Assignment, error)
}
