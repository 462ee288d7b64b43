package domain

import "context"

// Area — область служения, группирующая роли и участников.
// Справочные данные, неизменяемые для ядра.
type Area struct {
	ID    string
	Name  string
	Roles []Role
}

// Role — роль (позиция) внутри области служения.
type Role struct {
	ID     string
	AreaID string
	Name   string
}

// AreaRepository определяет контракт справочника областей и ролей (read-only).
type AreaRepository interface {
	GetByID(ctx context.Context, areaID string) (*Area, error)
	RoleBelongsToArea(ctx context.Context, areaID, roleID string) (bool, error)
}
