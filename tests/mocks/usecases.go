package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"roster-service/internal/domain"
)

// Моки use case'ов для тестов HTTP-обработчиков.

type ScheduleUseCase struct {
	mock.Mock
}

func (m *ScheduleUseCase) CreateSchedule(ctx context.Context, input domain.CreateScheduleInput) (*domain.Schedule, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *ScheduleUseCase) ListSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Schedule), args.Error(1)
}

func (m *ScheduleUseCase) GetSnapshot(ctx context.Context, scheduleID string) (*domain.ScheduleSnapshot, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSnapshot), args.Error(1)
}

func (m *ScheduleUseCase) Generate(ctx context.Context, scheduleID string, quotas []domain.Quota) (*domain.ScheduleSnapshot, []domain.Deficiency, error) {
	args := m.Called(ctx, scheduleID, quotas)
	var snapshot *domain.ScheduleSnapshot
	if args.Get(0) != nil {
		snapshot = args.Get(0).(*domain.ScheduleSnapshot)
	}
	var deficiencies []domain.Deficiency
	if args.Get(1) != nil {
		deficiencies = args.Get(1).([]domain.Deficiency)
	}
	return snapshot, deficiencies, args.Error(2)
}

func (m *ScheduleUseCase) Regenerate(ctx context.Context, scheduleID string, quotas []domain.Quota, confirm bool) (*domain.ScheduleSnapshot, []domain.Deficiency, error) {
	args := m.Called(ctx, scheduleID, quotas, confirm)
	var snapshot *domain.ScheduleSnapshot
	if args.Get(0) != nil {
		snapshot = args.Get(0).(*domain.ScheduleSnapshot)
	}
	var deficiencies []domain.Deficiency
	if args.Get(1) != nil {
		deficiencies = args.Get(1).([]domain.Deficiency)
	}
	return snapshot, deficiencies, args.Error(2)
}

func (m *ScheduleUseCase) AddParticipants(ctx context.Context, scheduleID string, userIDs []string, areaID, roleID string) (*domain.ScheduleSnapshot, error) {
	args := m.Called(ctx, scheduleID, userIDs, areaID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSnapshot), args.Error(1)
}

func (m *ScheduleUseCase) RemoveParticipants(ctx context.Context, scheduleID string, assignmentIDs []string) (*domain.ScheduleSnapshot, error) {
	args := m.Called(ctx, scheduleID, assignmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSnapshot), args.Error(1)
}

func (m *ScheduleUseCase) Publish(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *ScheduleUseCase) Complete(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *ScheduleUseCase) Delete(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

func (m *ScheduleUseCase) ConfirmPresence(ctx context.Context, scheduleID, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, scheduleID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

type SwapUseCase struct {
	mock.Mock
}

func (m *SwapUseCase) OpenSwap(ctx context.Context, scheduleID, assignmentID string) (*domain.SwapRequest, error) {
	args := m.Called(ctx, scheduleID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *SwapUseCase) ListEligibleReplacements(ctx context.Context, scheduleID, assignmentID string) ([]*domain.User, error) {
	args := m.Called(ctx, scheduleID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *SwapUseCase) ResolveSwap(ctx context.Context, scheduleID, assignmentID string, accept bool, replacementUserID string) (*domain.Assignment, error) {
	args := m.Called(ctx, scheduleID, assignmentID, accept, replacementUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
