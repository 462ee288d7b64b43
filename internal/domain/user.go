package domain

import "context"

// UserStatus — статус учетной записи участника.
type UserStatus string

const (
	UserActive           UserStatus = "ACTIVE"
	UserInactive         UserStatus = "INACTIVE"
	UserAwaitingApproval UserStatus = "AWAITING_APPROVAL"
)

// User представляет участника служения. Учетная запись принадлежит
// подсистеме идентификации: ядро только читает её, никогда не изменяет.
type User struct {
	ID             string
	DisplayName    string
	Status         UserStatus
	Qualifications []Qualification
}

// Qualification — допуск участника к роли внутри области служения.
type Qualification struct {
	AreaID string
	RoleID string
}

// UserRepository определяет контракт справочника участников (read-only).
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	GetQualifiedUsers(ctx context.Context, areaID, roleID string) ([]*User, error)
	IsQualified(ctx context.Context, userID, areaID, roleID string) (bool, error)
}
