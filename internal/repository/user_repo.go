package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roster-service/internal/domain"
)

// UserRepository реализует read-only доступ к справочнику участников.
// Учетные записи принадлежат подсистеме идентификации, здесь они не меняются.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// GetByID возвращает участника вместе с его допусками.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, display_name, status FROM users WHERE user_id = $1`, userID).
		Scan(&user.ID, &user.DisplayName, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Status = domain.UserStatus(status)

	rows, err := r.db.QueryContext(ctx,
		`SELECT area_id, role_id FROM user_roles WHERE user_id = $1 ORDER BY area_id, role_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get qualifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q domain.Qualification
		if err := rows.Scan(&q.AreaID, &q.RoleID); err != nil {
			return nil, err
		}
		user.Qualifications = append(user.Qualifications, q)
	}
	return &user, rows.Err()
}

// GetQualifiedUsers возвращает активных участников с допуском к роли,
// отсортированных по идентификатору для детерминированной генерации.
func (r *UserRepository) GetQualifiedUsers(ctx context.Context, areaID, roleID string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.user_id, u.display_name, u.status
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.user_id
		WHERE ur.area_id = $1 AND ur.role_id = $2 AND u.status = 'ACTIVE'
		ORDER BY u.user_id`, areaID, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get qualified users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		var status string
		if err := rows.Scan(&user.ID, &user.DisplayName, &status); err != nil {
			return nil, err
		}
		user.Status = domain.UserStatus(status)
		users = append(users, &user)
	}
	return users, rows.Err()
}

// IsQualified сообщает, допущен ли активный участник к роли в области.
func (r *UserRepository) IsQualified(ctx context.Context, userID, areaID, roleID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_roles ur
			JOIN users u ON u.user_id = ur.user_id
			WHERE ur.user_id = $1 AND ur.area_id = $2 AND ur.role_id = $3 AND u.status = 'ACTIVE'
		)`, userID, areaID, roleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check qualification: %w", err)
	}
	return exists, nil
}
