package usecase

import (
	"context"
	"sync"
)

// ScheduleLocker сериализует мутации по идентификатору расписания:
// одновременно для одного расписания выполняется не более одной мутации,
// расписания с разными идентификаторами обрабатываются параллельно.
// Записи со счетчиком ссылок удаляются, когда ожидающих не осталось.
type ScheduleLocker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func NewScheduleLocker() *ScheduleLocker {
	return &ScheduleLocker{locks: make(map[string]*lockEntry)}
}

// Lock захватывает эксклюзивную секцию для расписания. Отмена контекста
// снимает ожидающего с очереди, не затрагивая текущего держателя.
// Собственного таймаута захват не имеет: зависшая мутация — операционный
// инцидент, а не повод молча отбросить запрос.
func (l *ScheduleLocker) Lock(ctx context.Context, scheduleID string) error {
	entry := l.acquireEntry(scheduleID)

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(scheduleID)
		return ctx.Err()
	}

	// Секция могла освободиться одновременно с отменой контекста;
	// отмененный вызывающий мутацию не выполняет.
	if err := ctx.Err(); err != nil {
		l.Unlock(scheduleID)
		return err
	}
	return nil
}

// Unlock освобождает секцию и удаляет запись, если ожидающих больше нет.
func (l *ScheduleLocker) Unlock(scheduleID string) {
	l.mu.Lock()
	entry, ok := l.locks[scheduleID]
	l.mu.Unlock()
	if !ok {
		return
	}

	<-entry.sem
	l.releaseEntry(scheduleID)
}

func (l *ScheduleLocker) acquireEntry(scheduleID string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[scheduleID]
	if !ok {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		l.locks[scheduleID] = entry
	}
	entry.refs++
	return entry
}

func (l *ScheduleLocker) releaseEntry(scheduleID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[scheduleID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, scheduleID)
	}
}
