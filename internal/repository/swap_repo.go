package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roster-service/internal/domain"
)

// SwapRepository реализует хранилище запросов на замену в PostgreSQL.
// Частичный уникальный индекс по (assignment_id) WHERE resolution = 'OPEN'
// дублирует инвариант "не более одного открытого запроса" на уровне схемы.
type SwapRepository struct {
	db *sql.DB
}

// NewSwapRepository создает новый экземпляр SwapRepository.
func NewSwapRepository(db *sql.DB) domain.SwapRepository {
	return &SwapRepository{db: db}
}

// Open сохраняет запрос и переводит назначение в новый статус в одной
// транзакции: сбой любой из записей откатывает обе.
func (r *SwapRepository) Open(ctx context.Context, swap *domain.SwapRequest, assignmentStatus domain.AssignmentStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO swap_requests (swap_id, assignment_id, requested_at, resolution)
		VALUES ($1, $2, $3, $4)`,
		swap.ID, swap.AssignmentID, swap.RequestedAt, string(swap.Resolution))
	if err != nil {
		return fmt.Errorf("failed to create swap request: %w", err)
	}

	err = updateAssignmentHolder(ctx, tx, swap.AssignmentID, "", assignmentStatus)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetOpenByAssignment возвращает открытый запрос назначения либо (nil, nil).
func (r *SwapRepository) GetOpenByAssignment(ctx context.Context, assignmentID string) (*domain.SwapRequest, error) {
	var swap domain.SwapRequest
	var resolution string
	err := r.db.QueryRowContext(ctx, `
		SELECT swap_id, assignment_id, requested_at, resolution
		FROM swap_requests WHERE assignment_id = $1 AND resolution = 'OPEN'`, assignmentID).
		Scan(&swap.ID, &swap.AssignmentID, &swap.RequestedAt, &resolution)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open swap request: %w", err)
	}
	swap.Resolution = domain.SwapResolution(resolution)
	return &swap, nil
}

// Close закрывает запрос с итоговым исходом и передает назначение участнику
// holderID с новым статусом. Обе записи выполняются в одной транзакции.
func (r *SwapRepository) Close(ctx context.Context, swapID string, resolution domain.SwapResolution, assignmentID, holderID string, assignmentStatus domain.AssignmentStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`UPDATE swap_requests SET resolution = $1 WHERE swap_id = $2 AND resolution = 'OPEN'`,
		string(resolution), swapID)
	if err != nil {
		return fmt.Errorf("failed to resolve swap request: %w", err)
	}
	var affected int64
	affected, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		err = domain.ErrNoOpenSwap
		return err
	}

	err = updateAssignmentHolder(ctx, tx, assignmentID, holderID, assignmentStatus)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// updateAssignmentHolder изменяет статус назначения и, при непустом holderID,
// его участника в рамках переданной транзакции.
func updateAssignmentHolder(ctx context.Context, tx *sql.Tx, assignmentID, holderID string, status domain.AssignmentStatus) error {
	var res sql.Result
	var err error
	if holderID == "" {
		res, err = tx.ExecContext(ctx,
			`UPDATE assignments SET status = $1 WHERE assignment_id = $2`,
			string(status), assignmentID)
	} else {
		res, err = tx.ExecContext(ctx,
			`UPDATE assignments SET user_id = $1, status = $2 WHERE assignment_id = $3`,
			holderID, string(status), assignmentID)
	}
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
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
