package domain

import (
	"context"
	"time"
)

// ExceptionKind — тип датированного исключения доступности.
type ExceptionKind string

const (
	ExceptionBlock   ExceptionKind = "BLOCK"
	ExceptionUnblock ExceptionKind = "UNBLOCK"
)

// AvailabilityException — разовая блокировка или разблокировка участника
// на конкретную дату и смену. Создается самим участником, ядро только читает.
type AvailabilityException struct {
	UserID    string
	Date      time.Time
	ShiftSlot string
	Kind      ExceptionKind
	Reason    string
}

// AvailabilityRepository определяет контракт чтения исключений доступности.
type AvailabilityRepository interface {
	// GetBlockedUsers возвращает множество участников, заблокированных
	// на дату и смену (BLOCK без перекрывающего UNBLOCK).
	GetBlockedUsers(ctx context.Context, date time.Time, shiftSlot string) (map[string]bool, error)
}
