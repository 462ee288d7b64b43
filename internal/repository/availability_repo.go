package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roster-service/internal/domain"
)

// AvailabilityRepository реализует чтение исключений доступности.
// Исключения создаются и удаляются участниками вне этого ядра.
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository создает новый экземпляр AvailabilityRepository.
func NewAvailabilityRepository(db *sql.DB) domain.AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// GetBlockedUsers возвращает участников, заблокированных на дату и смену.
// UNBLOCK на ту же дату/смену перекрывает BLOCK того же участника.
func (r *AvailabilityRepository) GetBlockedUsers(ctx context.Context, date time.Time, shiftSlot string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, kind FROM availability_exceptions
		WHERE date = $1::date AND shift_slot = $2`, date, shiftSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability exceptions: %w", err)
	}
	defer rows.Close()

	blocked := make(map[string]bool)
	unblocked := make(map[string]bool)
	for rows.Next() {
		var userID, kind string
		if err := rows.Scan(&userID, &kind); err != nil {
			return nil, err
		}
		switch domain.ExceptionKind(kind) {
		case domain.ExceptionBlock:
			blocked[userID] = true
		case domain.ExceptionUnblock:
			unblocked[userID] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for userID := range unblocked {
		delete(blocked, userID)
	}
	return blocked, nil
}
