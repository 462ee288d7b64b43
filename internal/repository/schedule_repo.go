package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roster-service/internal/domain"
)

// ScheduleRepository реализует хранилище расписаний и назначений в PostgreSQL.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository создает новый экземпляр ScheduleRepository.
func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create сохраняет новое расписание.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedules (schedule_id, name, description, local, starts_at, ends_at, shift_slot, status, created_by, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schedule.ID, schedule.Name, schedule.Description, schedule.Local,
		schedule.StartsAt, schedule.EndsAt, schedule.ShiftSlot,
		string(schedule.Status), schedule.CreatedBy, schedule.Approved, schedule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

const scheduleColumns = `schedule_id, name, description, local, starts_at, ends_at, shift_slot, status, created_by, approved, created_at`

func scanSchedule(row interface{ Scan(...any) error }) (*domain.Schedule, error) {
	var s domain.Schedule
	var status string
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Local, &s.StartsAt, &s.EndsAt,
		&s.ShiftSlot, &status, &s.CreatedBy, &s.Approved, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = domain.ScheduleStatus(status)
	return &s, nil
}

// GetByID возвращает расписание по ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE schedule_id = $1`, scheduleID)
	schedule, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return schedule, nil
}

// List возвращает неудаленные расписания, новые первыми.
func (r *ScheduleRepository) List(ctx context.Context) ([]*domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE status <> 'DELETED' ORDER BY starts_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	return schedules, rows.Err()
}

// GetSnapshot возвращает согласованный срез расписания: метаданные,
// назначения и открытые запросы на замену читаются в одной read-only
// транзакции, частично записанный состав наружу не виден.
func (r *ScheduleRepository) GetSnapshot(ctx context.Context, scheduleID string) (*domain.ScheduleSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE schedule_id = $1`, scheduleID)
	schedule, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT assignment_id, schedule_id, user_id, area_id, role_id, status, position
		FROM assignments WHERE schedule_id = $1 ORDER BY position`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	swapRows, err := tx.QueryContext(ctx, `
		SELECT sw.swap_id, sw.assignment_id, sw.requested_at, sw.resolution
		FROM swap_requests sw
		JOIN assignments a ON a.assignment_id = sw.assignment_id
		WHERE a.schedule_id = $1 AND sw.resolution = 'OPEN'
		ORDER BY sw.requested_at`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open swaps: %w", err)
	}
	defer swapRows.Close()

	swaps := make([]*domain.SwapRequest, 0)
	for swapRows.Next() {
		var swap domain.SwapRequest
		var resolution string
		if err := swapRows.Scan(&swap.ID, &swap.AssignmentID, &swap.RequestedAt, &resolution); err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		swap.Resolution = domain.SwapResolution(resolution)
		swaps = append(swaps, &swap)
	}
	if err := swapRows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &domain.ScheduleSnapshot{
		Schedule:    schedule,
		Assignments: assignments,
		OpenSwaps:   swaps,
	}, nil
}

// UpdateStatus изменяет статус расписания. Публикация дополнительно
// помечает расписание одобренным.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, scheduleID string, status domain.ScheduleStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedules SET status = $1, approved = approved OR $1 = 'ACTIVE' WHERE schedule_id = $2`,
		string(status), scheduleID)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

// SoftDelete помечает расписание удаленным. Строки назначений сохраняются
// для аудита; из агрегатов истории их исключает фильтр по статусу расписания.
func (r *ScheduleRepository) SoftDelete(ctx context.Context, scheduleID string) error {
	return r.UpdateStatus(ctx, scheduleID, domain.ScheduleDeleted)
}

// CountAssignments возвращает число назначений расписания.
func (r *ScheduleRepository) CountAssignments(ctx context.Context, scheduleID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assignments WHERE schedule_id = $1`, scheduleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return count, nil
}

func scanAssignment(row interface{ Scan(...any) error }) (*domain.Assignment, error) {
	var a domain.Assignment
	var status string
	err := row.Scan(&a.ID, &a.ScheduleID, &a.UserID, &a.AreaID, &a.RoleID, &status, &a.Position)
	if err != nil {
		return nil, err
	}
	a.Status = domain.AssignmentStatus(status)
	return &a, nil
}

// GetAssignment возвращает назначение по ID.
func (r *ScheduleRepository) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT assignment_id, schedule_id, user_id, area_id, role_id, status, position
		FROM assignments WHERE assignment_id = $1`, assignmentID)
	assignment, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

// GetAssignedUserIDs возвращает множество участников, уже назначенных в расписание.
func (r *ScheduleRepository) GetAssignedUserIDs(ctx context.Context, scheduleID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM assignments WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned users: %w", err)
	}
	defer rows.Close()

	assigned := make(map[string]bool)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		assigned[userID] = true
	}
	return assigned, rows.Err()
}

// ReplaceAssignments атомарно заменяет состав расписания: удаление прежних
// назначений и вставка новых выполняются в одной транзакции, сбой оставляет
// прежний состав нетронутым.
func (r *ScheduleRepository) ReplaceAssignments(ctx context.Context, scheduleID string, assignments []*domain.Assignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `DELETE FROM assignments WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to discard assignments: %w", err)
	}

	for _, assignment := range assignments {
		err = insertAssignment(ctx, tx, assignment)
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddAssignments вставляет назначения в одной транзакции.
func (r *ScheduleRepository) AddAssignments(ctx context.Context, scheduleID string, assignments []*domain.Assignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, assignment := range assignments {
		err = insertAssignment(ctx, tx, assignment)
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertAssignment(ctx context.Context, tx *sql.Tx, assignment *domain.Assignment) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO assignments (assignment_id, schedule_id, user_id, area_id, role_id, status, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		assignment.ID, assignment.ScheduleID, assignment.UserID,
		assignment.AreaID, assignment.RoleID, string(assignment.Status), assignment.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment %s: %w", assignment.ID, err)
	}
	return nil
}

// RemoveAssignments удаляет назначения расписания по идентификаторам.
// Чужой или неизвестный идентификатор — ошибка, состав не меняется.
func (r *ScheduleRepository) RemoveAssignments(ctx context.Context, scheduleID string, assignmentIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `DELETE FROM assignments WHERE schedule_id = $1 AND assignment_id IN (` + placeholders(2, len(assignmentIDs)) + `)`
	args := make([]any, 0, len(assignmentIDs)+1)
	args = append(args, scheduleID)
	for _, id := range assignmentIDs {
		args = append(args, id)
	}

	res, execErr := tx.ExecContext(ctx, query, args...)
	if execErr != nil {
		err = fmt.Errorf("failed to remove assignments: %w", execErr)
		return err
	}
	affected, raErr := res.RowsAffected()
	if raErr != nil {
		err = raErr
		return err
	}
	if affected != int64(len(assignmentIDs)) {
		err = domain.ErrAssignmentNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateAssignmentStatus изменяет статус участия.
func (r *ScheduleRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assignments SET status = $1 WHERE assignment_id = $2`, string(status), assignmentID)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
