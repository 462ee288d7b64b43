package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roster-service/internal/domain"
)

// HistoryRepository реализует read-модель истории назначений. В агрегаты
// попадают только расписания ACTIVE и COMPLETE: черновики (в том числе под
// активной регенерацией) и удаленные расписания не должны влиять на подсчет
// месячной нагрузки и интервалов для других расписаний.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository создает новый экземпляр HistoryRepository.
func NewHistoryRepository(db *sql.DB) domain.HistoryRepository {
	return &HistoryRepository{db: db}
}

// GetUserHistories возвращает агрегаты истории для участников: даты начала
// назначений внутри окна и дату окончания последнего известного назначения.
func (r *HistoryRepository) GetUserHistories(ctx context.Context, userIDs []string, windowStart, windowEnd time.Time) (map[string]*domain.UserHistory, error) {
	histories := make(map[string]*domain.UserHistory, len(userIDs))
	if len(userIDs) == 0 {
		return histories, nil
	}

	args := make([]any, 0, len(userIDs)+2)
	args = append(args, windowStart, windowEnd)
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT a.user_id, s.starts_at, s.ends_at
		FROM assignments a
		JOIN schedules s ON s.schedule_id = a.schedule_id
		WHERE s.status IN ('ACTIVE', 'COMPLETE')
		  AND s.starts_at >= $1 AND s.starts_at <= $2
		  AND a.user_id IN (`+placeholders(3, len(userIDs))+`)
		ORDER BY a.user_id, s.starts_at`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var startsAt, endsAt time.Time
		if err := rows.Scan(&userID, &startsAt, &endsAt); err != nil {
			return nil, err
		}
		history, ok := histories[userID]
		if !ok {
			history = &domain.UserHistory{UserID: userID}
			histories[userID] = history
		}
		history.AssignmentStarts = append(history.AssignmentStarts, startsAt)
		if endsAt.After(history.LastAssignmentEnd) {
			history.LastAssignmentEnd = endsAt
		}
	}
	return histories, rows.Err()
}
