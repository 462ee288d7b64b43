package domain

import (
	"context"
	"time"
)

// UserHistory — агрегат истории назначений одного участника, используемый
// генератором для подсчета месячной нагрузки и давности последнего служения.
// Учитываются только расписания в статусах ACTIVE и COMPLETE: черновики под
// активной регенерацией не должны влиять на другие запуски генерации.
type UserHistory struct {
	UserID string
	// AssignmentStarts — даты начала известных назначений в пределах окна выборки.
	AssignmentStarts []time.Time
	// LastAssignmentEnd — дата окончания самого позднего назначения;
	// нулевое значение — участник еще не служил.
	LastAssignmentEnd time.Time
}

// HistoryRepository определяет контракт read-модели истории назначений.
type HistoryRepository interface {
	GetUserHistories(ctx context.Context, userIDs []string, windowStart, windowEnd time.Time) (map[string]*UserHistory, error)
}
