package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roster-service/internal/domain"
	"roster-service/internal/generator"
	"roster-service/internal/lifecycle"
)

// ScheduleCoordinator реализует шлюз мутаций расписаний: единственная точка
// входа для внешних подсистем. Мутации одного расписания сериализуются через
// ScheduleLocker, чтения идут мимо критической секции и видят либо состояние
// до мутации, либо полностью после нее.
type ScheduleCoordinator struct {
	schedules    domain.ScheduleRepository
	users        domain.UserRepository
	areas        domain.AreaRepository
	availability domain.AvailabilityRepository
	history      domain.HistoryRepository
	engine       *generator.Engine
	locks        *ScheduleLocker
	now          func() time.Time
}

// NewScheduleCoordinator создает новый экземпляр ScheduleCoordinator.
func NewScheduleCoordinator(
	schedules domain.ScheduleRepository,
	users domain.UserRepository,
	areas domain.AreaRepository,
	availability domain.AvailabilityRepository,
	history domain.HistoryRepository,
	engine *generator.Engine,
	locks *ScheduleLocker,
	now func() time.Time,
) domain.ScheduleUseCase {
	if now == nil {
		now = time.Now
	}
	return &ScheduleCoordinator{
		schedules:    schedules,
		users:        users,
		areas:        areas,
		availability: availability,
		history:      history,
		engine:       engine,
		locks:        locks,
		now:          now,
	}
}

// CreateSchedule создает расписание в статусе DRAFT.
func (uc *ScheduleCoordinator) CreateSchedule(ctx context.Context, input domain.CreateScheduleInput) (*domain.Schedule, error) {
	// Валидация входных данных
	if input.Name == "" {
		return nil, domain.ErrInvalidScheduleName
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.EndsAt.After(input.StartsAt) {
		return nil, domain.ErrInvalidDateRange
	}
	if input.ShiftSlot == "" {
		return nil, domain.ErrInvalidShiftSlot
	}

	schedule := &domain.Schedule{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Local:       input.Local,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		ShiftSlot:   input.ShiftSlot,
		Status:      domain.ScheduleDraft,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   uc.now(),
	}

	if err := uc.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListSchedules возвращает неудаленные расписания.
func (uc *ScheduleCoordinator) ListSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	return uc.schedules.List(ctx)
}

// GetSnapshot возвращает согласованный срез расписания. Чтение не берет
// критическую секцию: согласованность обеспечивает транзакция хранилища.
func (uc *ScheduleCoordinator) GetSnapshot(ctx context.Context, scheduleID string) (*domain.ScheduleSnapshot, error) {
	if scheduleID == "" {
		return nil, domain.ErrInvalidScheduleID
	}
	snapshot, err := uc.schedules.GetSnapshot(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	// Запись удаленного расписания хранится для аудита, но его назначения
	// логически сняты и в срез не попадают.
	if snapshot.Schedule.Status == domain.ScheduleDeleted {
		snapshot.Assignments = nil
		snapshot.OpenSwaps = nil
	}
	return snapshot, nil
}

// Generate запускает генерацию состава для пустого черновика.
// При существующих назначениях требуется Regenerate с подтверждением.
func (uc *ScheduleCoordinator) Generate(ctx context.Context, scheduleID string, quotas []domain.Quota) (*domain.ScheduleSnapshot, []domain.Deficiency, error) {
	if err := uc.validateQuotas(ctx, quotas); err != nil {
		return nil, nil, err
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.requireDraft(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}

	count, err := uc.schedules.CountAssignments(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, domain.ErrAssignmentsExist
	}

	return uc.runGeneration(ctx, schedule, quotas)
}

// Regenerate сбрасывает существующие назначения и запускает генерацию заново.
// Операция разрушительна: при непустом составе требуется явный confirm,
// подтверждение никогда не выводится из состояния UI или тайминга.
func (uc *ScheduleCoordinator) Regenerate(ctx context.Context, scheduleID string, quotas []domain.Quota, confirm bool) (*domain.ScheduleSnapshot, []domain.Deficiency, error) {
	if err := uc.validateQuotas(ctx, quotas); err != nil {
		return nil, nil, err
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.requireDraft(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}

	count, err := uc.schedules.CountAssignments(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	if count > 0 && !confirm {
		return nil, nil, domain.ErrConfirmationRequired
	}

	return uc.runGeneration(ctx, schedule, quotas)
}

// runGeneration выполняет общую часть generate/regenerate под уже взятой
// критической секцией. Все чтения read-моделей выполняются до запуска
// движка; их сбой прерывает попытку целиком, прежний состав не меняется.
func (uc *ScheduleCoordinator) runGeneration(ctx context.Context, schedule *domain.Schedule, quotas []domain.Quota) (*domain.ScheduleSnapshot, []domain.Deficiency, error) {
	// 1. Пулы допущенных участников по уникальным парам (область, роль).
	pools := make(map[domain.Qualification][]*domain.User)
	userIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, quota := range quotas {
		key := domain.Qualification{AreaID: quota.AreaID, RoleID: quota.RoleID}
		if _, ok := pools[key]; ok {
			continue
		}
		pool, err := uc.users.GetQualifiedUsers(ctx, quota.AreaID, quota.RoleID)
		if err != nil {
			return nil, nil, domain.ErrReadModelUnavailable
		}
		pools[key] = pool
		for _, user := range pool {
			if !seen[user.ID] {
				seen[user.ID] = true
				userIDs = append(userIDs, user.ID)
			}
		}
	}

	// 2. Блокировки доступности на дату и смену расписания.
	blocked, err := uc.availability.GetBlockedUsers(ctx, schedule.StartsAt, schedule.ShiftSlot)
	if err != nil {
		return nil, nil, domain.ErrReadModelUnavailable
	}

	// 3. История назначений в окне, покрывающем месячный лимит и
	// минимальный интервал.
	horizon := uc.historyHorizon()
	histories, err := uc.history.GetUserHistories(ctx, userIDs, schedule.StartsAt.Add(-horizon), schedule.StartsAt.Add(horizon))
	if err != nil {
		return nil, nil, domain.ErrReadModelUnavailable
	}

	// 4. Синхронный запуск движка над собранными данными.
	result := uc.engine.Generate(generator.Input{
		ScheduleID: schedule.ID,
		StartsAt:   schedule.StartsAt,
		EndsAt:     schedule.EndsAt,
		ShiftSlot:  schedule.ShiftSlot,
		Quotas:     quotas,
		Pools:      pools,
		Blocked:    blocked,
		Histories:  histories,
	})

	for _, assignment := range result.Assignments {
		assignment.ID = uuid.NewString()
	}

	// 5. Атомарная замена состава: прежние назначения и новые в одной
	// транзакции хранилища.
	if err := uc.schedules.ReplaceAssignments(ctx, schedule.ID, result.Assignments); err != nil {
		return nil, nil, err
	}

	snapshot, err := uc.schedules.GetSnapshot(ctx, schedule.ID)
	if err != nil {
		return nil, nil, err
	}
	return snapshot, result.Deficiencies, nil
}

// AddParticipants вручную добавляет участников на роль. Участник занимает
// в расписании не более одного назначения независимо от роли — то же
// правило, по которому работают генератор и подбор замен; уникальность
// пары (участник, роль) дополнительно закреплена ограничением схемы.
func (uc *ScheduleCoordinator) AddParticipants(ctx context.Context, scheduleID string, userIDs []string, areaID, roleID string) (*domain.ScheduleSnapshot, error) {
	if len(userIDs) == 0 {
		return nil, domain.ErrInvalidUserID
	}
	belongs, err := uc.areas.RoleBelongsToArea(ctx, areaID, roleID)
	if err != nil {
		return nil, err
	}
	if !belongs {
		return nil, domain.ErrRoleNotInArea
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.requireMutable(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	assignedUsers, err := uc.schedules.GetAssignedUserIDs(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	assignments := make([]*domain.Assignment, 0, len(userIDs))
	for i, userID := range userIDs {
		if userID == "" {
			return nil, domain.ErrInvalidUserID
		}
		if assignedUsers[userID] {
			return nil, domain.ErrDuplicateAssignment
		}
		qualified, err := uc.users.IsQualified(ctx, userID, areaID, roleID)
		if err != nil {
			return nil, err
		}
		if !qualified {
			return nil, domain.ErrReplacementNotEligible
		}
		assignments = append(assignments, &domain.Assignment{
			ID:         uuid.NewString(),
			ScheduleID: scheduleID,
			UserID:     userID,
			AreaID:     areaID,
			RoleID:     roleID,
			Status:     domain.AssignmentPending,
			Position:   i,
		})
	}

	if err := uc.schedules.AddAssignments(ctx, scheduleID, assignments); err != nil {
		return nil, err
	}
	return uc.schedules.GetSnapshot(ctx, schedule.ID)
}

// RemoveParticipants удаляет назначения по идентификаторам.
func (uc *ScheduleCoordinator) RemoveParticipants(ctx context.Context, scheduleID string, assignmentIDs []string) (*domain.ScheduleSnapshot, error) {
	if len(assignmentIDs) == 0 {
		return nil, domain.ErrInvalidAssignmentID
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.requireMutable(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if err := uc.schedules.RemoveAssignments(ctx, scheduleID, assignmentIDs); err != nil {
		return nil, err
	}
	return uc.schedules.GetSnapshot(ctx, schedule.ID)
}

// Publish переводит расписание DRAFT → ACTIVE. После публикации
// регенерация невозможна.
func (uc *ScheduleCoordinator) Publish(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateTransition(schedule.Status, domain.ScheduleActive); err != nil {
		return nil, err
	}

	count, err := uc.schedules.CountAssignments(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.ErrScheduleEmpty
	}

	if err := uc.schedules.UpdateStatus(ctx, scheduleID, domain.ScheduleActive); err != nil {
		return nil, err
	}
	schedule.Status = domain.ScheduleActive
	schedule.Approved = true
	return schedule, nil
}

// Complete переводит расписание ACTIVE → COMPLETE после его окончания.
// Может вызываться административно или внешним временным sweep'ом.
func (uc *ScheduleCoordinator) Complete(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateTransition(schedule.Status, domain.ScheduleComplete); err != nil {
		return nil, err
	}
	if uc.now().Before(schedule.EndsAt) {
		return nil, domain.ErrScheduleNotEnded
	}

	if err := uc.schedules.UpdateStatus(ctx, scheduleID, domain.ScheduleComplete); err != nil {
		return nil, err
	}
	schedule.Status = domain.ScheduleComplete
	return schedule, nil
}

// Delete мягко удаляет расписание: запись сохраняется для аудита,
// назначения логически сняты, дальнейшие мутации не принимаются.
func (uc *ScheduleCoordinator) Delete(ctx context.Context, scheduleID string) error {
	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return err
	}
	defer uc.locks.Unlock(scheduleID)

	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if err := lifecycle.ValidateTransition(schedule.Status, domain.ScheduleDeleted); err != nil {
		return err
	}

	return uc.schedules.SoftDelete(ctx, scheduleID)
}

// ConfirmPresence подтверждает присутствие участника; повторное
// подтверждение идемпотентно.
func (uc *ScheduleCoordinator) ConfirmPresence(ctx context.Context, scheduleID, assignmentID string) (*domain.Assignment, error) {
	if assignmentID == "" {
		return nil, domain.ErrInvalidAssignmentID
	}

	if err := uc.locks.Lock(ctx, scheduleID); err != nil {
		return nil, err
	}
	defer uc.locks.Unlock(scheduleID)

	if _, err := uc.requireMutable(ctx, scheduleID); err != nil {
		return nil, err
	}

	assignment, err := uc.schedules.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.ScheduleID != scheduleID {
		return nil, domain.ErrAssignmentNotFound
	}

	next, err := lifecycle.ConfirmPresence(assignment.Status)
	if err != nil {
		return nil, err
	}
	if next != assignment.Status {
		if err := uc.schedules.UpdateAssignmentStatus(ctx, assignmentID, next); err != nil {
			return nil, err
		}
	}
	assignment.Status = next
	return assignment, nil
}

// requireDraft возвращает расписание, если оно в статусе DRAFT.
func (uc *ScheduleCoordinator) requireDraft(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status != domain.ScheduleDraft {
		return nil, domain.ErrScheduleNotDraft
	}
	return schedule, nil
}

// requireMutable возвращает расписание, если оно принимает изменения состава.
func (uc *ScheduleCoordinator) requireMutable(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	schedule, err := uc.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.AcceptsMutations(schedule.Status) {
		return nil, domain.ErrScheduleImmutable
	}
	return schedule, nil
}

// validateQuotas проверяет форму квот и принадлежность ролей областям.
func (uc *ScheduleCoordinator) validateQuotas(ctx context.Context, quotas []domain.Quota) error {
	if len(quotas) == 0 {
		return domain.ErrInvalidQuota
	}
	for _, quota := range quotas {
		if quota.AreaID == "" || quota.RoleID == "" || quota.Count <= 0 {
			return domain.ErrInvalidQuota
		}
		belongs, err := uc.areas.RoleBelongsToArea(ctx, quota.AreaID, quota.RoleID)
		if err != nil {
			return err
		}
		if !belongs {
			return domain.ErrRoleNotInArea
		}
	}
	return nil
}

func (uc *ScheduleCoordinator) historyHorizon() time.Duration {
	days := 30
	if uc.engine != nil {
		if min := uc.engine.Config().MinDaysBetweenAssignments; min > days {
			days = min
		}
	}
	return time.Duration(days) * 24 * time.Hour
}
