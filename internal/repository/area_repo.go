package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roster-service/internal/domain"
)

// AreaRepository реализует read-only доступ к справочнику областей и ролей.
type AreaRepository struct {
	db *sql.DB
}

// NewAreaRepository создает новый экземпляр AreaRepository.
func NewAreaRepository(db *sql.DB) domain.AreaRepository {
	return &AreaRepository{db: db}
}

// GetByID возвращает область вместе с ее ролями.
func (r *AreaRepository) GetByID(ctx context.Context, areaID string) (*domain.Area, error) {
	var area domain.Area
	err := r.db.QueryRowContext(ctx,
		`SELECT area_id, name FROM areas WHERE area_id = $1`, areaID).
		Scan(&area.ID, &area.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAreaNotFound
		}
		return nil, fmt.Errorf("failed to get area: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT role_id, area_id, name FROM roles WHERE area_id = $1 ORDER BY role_id`, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.AreaID, &role.Name); err != nil {
			return nil, err
		}
		area.Roles = append(area.Roles, role)
	}
	return &area, rows.Err()
}

// RoleBelongsToArea проверяет принадлежность роли области.
func (r *AreaRepository) RoleBelongsToArea(ctx context.Context, areaID, roleID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE role_id = $1 AND area_id = $2)`,
		roleID, areaID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check role membership: %w", err)
	}
	return exists, nil
}
