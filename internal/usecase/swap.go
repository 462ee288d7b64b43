package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"roster-service/internal/domain"
	"roster-service/internal/lifecycle"
)

// SwapWorkflow оркестрирует запросы на замену поверх жизненного цикла
// участия: открытие запроса, подбор пригодной замены и разрешение.
// Инвариант "не более одного OPEN-запроса на назначение" обеспечивается
// здесь и продублирован ограничением в хранилище.
type SwapWorkflow struct {
	schedules    domain.ScheduleRepository
	swaps        domain.SwapRepository
	users        domain.UserRepository
	availability domain.AvailabilityRepository
	locks        *ScheduleLocker
	now          func() time.Time
}

// NewSwapWorkflow создает новый экземпляр SwapWorkflow. Локер должен быть
// общим с координатором расписаний, чтобы замены сериализовались с
// остальными мутациями того же расписания.
func NewSwapWorkflow(
	schedules domain.ScheduleRepository,
	swaps domain.SwapRepository,
	users domain.UserRepository,
	availability domain.AvailabilityRepository,
	locks *ScheduleLocker,
	now func() time.Time,
) domain.SwapUseCase {
	if now == nil {
		now = time.Now
	}
	return &SwapWorkflow{
		schedules:    schedules,
		swaps:        swaps,
		users:        users,
		availability: availability,
		locks:        locks,
		now:          now,
	}
}

// OpenSwap открывает запрос на замену для назначения.
func (uc *SwapWorkflow) OpenSwap(ctx context.Context, scheduleID, assignmentID string) (*domain.SwapRequest, error) {
	if assignmentID == "" {
		return nil, domain.ErrInvalidAssignmentID
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	assignment, err := uc.getScheduleAssignment(ctx, scheduleID, assignmentID)
	if err != nil {
		return nil, err
	}

	// Проверка открытого запроса до перехода статуса: назначение могло
	// остаться в SWAP_REQUESTED после сбоя, статус — не единственный источник.
	open, err := uc.swaps.GetOpenByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrSwapAlreadyOpen
	}

	next, err := lifecycle.RequestSwap(assignment.Status)
	if err != nil {
		return nil, err
	}

	// Запрос и статус назначения пишутся одной транзакцией хранилища:
	// частичная запись сделала бы назначение недоступным для замен.
	swap := &domain.SwapRequest{
		ID:           uuid.NewString(),
		AssignmentID: assignmentID,
		RequestedAt:  uc.now(),
		Resolution:   domain.SwapOpen,
	}
	if err := uc.swaps.Open(ctx, swap, next); err != nil {
		return nil, err
	}
	return swap, nil
}

// ListEligibleReplacements возвращает кандидатов на замену, отсортированных
// по идентификатору. Правило пригодности то же, что у генератора: допуск к
// роли, отсутствие назначения в расписании, отсутствие блокировки на
// дату/смену.
func (uc *SwapWorkflow) ListEligibleReplacements(ctx context.Context, scheduleID, assignmentID string) ([]*domain.User, error) {
	if assignmentID == "" {
		return nil, domain.ErrInvalidAssignmentID
	}

	assignment, err := uc.getScheduleAssignment(ctx, scheduleID, assignmentID)
	if err != nil {
		return nil, err
	}
	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	return uc.eligibleReplacements(ctx, schedule, assignment)
}

// ResolveSwap разрешает открытый запрос. Отказ возвращает исходного
// участника в CONFIRMED; принятие передает назначение замене и сбрасывает
// статус в PENDING. Пустой replacementUserID при принятии означает выбор
// первого пригодного кандидата.
func (uc *SwapWorkflow) ResolveSwap(ctx context.Context, scheduleID, assignmentID string, accept bool, replacementUserID string) (*domain.Assignment, error) {
	if assignmentID == "" {
		return nil, domain.ErrInvalidAssignmentID
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	assignment, err := uc.getScheduleAssignment(ctx, scheduleID, assignmentID)
	if err != nil {
		return nil, err
	}

	open, err := uc.swaps.GetOpenByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, domain.ErrNoOpenSwap
	}

	next, err := lifecycle.ResolveSwap(assignment.Status, accept)
	if err != nil {
		return nil, err
	}

	if !accept {
		if err := uc.swaps.Close(ctx, open.ID, domain.SwapCancelled, assignmentID, assignment.UserID, next); err != nil {
			return nil, err
		}
		assignment.Status = next
		return assignment, nil
	}

	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	candidates, err := uc.eligibleReplacements(ctx, schedule, assignment)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoEligibleReplacement
	}

	replacement := candidates[0].ID
	if replacementUserID != "" {
		replacement = ""
		for _, candidate := range candidates {
			if candidate.ID == replacementUserID {
				replacement = candidate.ID
				break
			}
		}
		if replacement == "" {
			return nil, domain.ErrReplacementNotEligible
		}
	}

	// Исход запроса и передача назначения — одна транзакция хранилища.
	if err := uc.swaps.Close(ctx, open.ID, domain.SwapAccepted, assignmentID, replacement, next); err != nil {
		return nil, err
	}

	assignment.UserID = replacement
	assignment.Status = next
	return assignment, nil
}

// eligibleReplacements применяет правило пригодности генератора к пулу
// допущенных для роли назначения.
func (uc *SwapWorkflow) eligibleReplacements(ctx context.Context, schedule *domain.Schedule, assignment *domain.Assignment) ([]*domain.User, error) {
	pool, err := uc.users.GetQualifiedUsers(ctx, assignment.AreaID, assignment.RoleID)
	if err != nil {
		return nil, domain.ErrReadModelUnavailable
	}
	blocked, err := uc.availability.GetBlockedUsers(ctx, schedule.StartsAt, schedule.ShiftSlot)
	if err != nil {
		return nil, domain.ErrReadModelUnavailable
	}
	assigned, err := uc.schedules.GetAssignedUserIDs(ctx, schedule.ID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.User, 0, len(pool))
	for _, user := range pool {
		if user.ID == assignment.UserID || assigned[user.ID] || blocked[user.ID] {
			continue
		}
		candidates = append(candidates, user)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})
	return candidates, nil
}

// getScheduleAssignment возвращает назначение, проверяя принадлежность
// расписанию и то, что расписание еще принимает мутации.
func (uc *SwapWorkflow) getScheduleAssignment(ctx context.Context, scheduleID, assignmentID string) (*domain.Assignment, error) {
	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.AcceptsMutations(schedule.Status) {
		return nil, domain.ErrScheduleImmutable
	}

	assignment, err := uc.schedules.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.ScheduleID != scheduleID {
		return nil, domain.ErrAssignmentNotFound
	}
	return assignment, nil
}
