package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"roster-service/internal/domain"
)

// Моки репозиториев для unit-тестов бизнес-логики.

type ScheduleRepository struct {
	mock.Mock
}

func (m *ScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *ScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *ScheduleRepository) List(ctx context.Context) ([]*domain.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Schedule), args.Error(1)
}

func (m *ScheduleRepository) GetSnapshot(ctx context.Context, scheduleID string) (*domain.ScheduleSnapshot, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSnapshot), args.Error(1)
}

func (m *ScheduleRepository) UpdateStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus) error {
	args := m.Called(ctx, scheduleID, status)
	return args.Error(0)
}

func (m *ScheduleRepository) SoftDelete(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

func (m *ScheduleRepository) CountAssignments(ctx context.Context, scheduleID string) (int, error) {
	args := m.Called(ctx, scheduleID)
	return args.Int(0), args.Error(1)
}

func (m *ScheduleRepository) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *ScheduleRepository) GetAssignedUserIDs(ctx context.Context, scheduleID string) (map[string]bool, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *ScheduleRepository) ReplaceAssignments(ctx context.Context, scheduleID string, assignments []*domain.Assignment) error {
	args := m.Called(ctx, scheduleID, assignments)
	return args.Error(0)
}

func (m *ScheduleRepository) AddAssignments(ctx context.Context, scheduleID string, assignments []*domain.Assignment) error {
	args := m.Called(ctx, scheduleID, assignments)
	return args.Error(0)
}

func (m *ScheduleRepository) RemoveAssignments(ctx context.Context, scheduleID string, assignmentIDs []string) error {
	args := m.Called(ctx, scheduleID, assignmentIDs)
	return args.Error(0)
}

func (m *ScheduleRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus) error {
	args := m.Called(ctx, assignmentID, status)
	return args.Error(0)
}

type SwapRepository struct {
	mock.Mock
}

func (m *SwapRepository) Open(ctx context.Context, swap *domain.SwapRequest, assignmentStatus domain.AssignmentStatus) error {
	args := m.Called(ctx, swap, assignmentStatus)
	return args.Error(0)
}

func (m *SwapRepository) GetOpenByAssignment(ctx context.Context, assignmentID string) (*domain.SwapRequest, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *SwapRepository) Close(ctx context.Context, swapID string, resolution domain.SwapResolution, assignmentID, holderID string, assignmentStatus domain.AssignmentStatus) error {
	args := m.Called(ctx, swapID, resolution, assignmentID, holderID, assignmentStatus)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetQualifiedUsers(ctx context.Context, areaID, roleID string) ([]*domain.User, error) {
	args := m.Called(ctx, areaID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) IsQualified(ctx context.Context, userID, areaID, roleID string) (bool, error) {
	args := m.Called(ctx, userID, areaID, roleID)
	return args.Bool(0), args.Error(1)
}

type AreaRepository struct {
	mock.Mock
}

func (m *AreaRepository) GetByID(ctx context.Context, areaID string) (*domain.Area, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}

func (m *AreaRepository) RoleBelongsToArea(ctx context.Context, areaID, roleID string) (bool, error) {
	args := m.Called(ctx, areaID, roleID)
	return args.Bool(0), args.Error(1)
}

type AvailabilityRepository struct {
	mock.Mock
}

func (m *AvailabilityRepository) GetBlockedUsers(ctx context.Context, date time.Time, shiftSlot string) (map[string]bool, error) {
	args := m.Called(ctx, date, shiftSlot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) GetUserHistories(ctx context.Context, userIDs []string, windowStart, windowEnd time.Time) (map[string]*domain.UserHistory, error) {
	args := m.Called(ctx, userIDs, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.UserHistory), args.Error(1)
}
