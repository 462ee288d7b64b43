package domain

import (
	"context"
	"time"
)

// ScheduleStatus — статус жизненного цикла расписания.
type ScheduleStatus string

const (
	ScheduleDraft    ScheduleStatus = "DRAFT"
	ScheduleActive   ScheduleStatus = "ACTIVE"
	ScheduleComplete ScheduleStatus = "COMPLETE"
	ScheduleDeleted  ScheduleStatus = "DELETED"
)

// AssignmentStatus — статус участия в рамках расписания.
type AssignmentStatus string

const (
	AssignmentPending       AssignmentStatus = "PENDING"
	AssignmentConfirmed     AssignmentStatus = "CONFIRMED"
	AssignmentSwapRequested AssignmentStatus = "SWAP_REQUESTED"
)

// SwapResolution — исход запроса на замену.
type SwapResolution string

const (
	SwapOpen      SwapResolution = "OPEN"
	SwapAccepted  SwapResolution = "ACCEPTED"
	SwapCancelled SwapResolution = "CANCELLED"
)

// Schedule представляет расписание служения. Создается в статусе DRAFT;
// удаление мягкое — запись сохраняется для аудита.
type Schedule struct {
	ID          string
	Name        string
	Description string
	Local       string
	StartsAt    time.Time
	EndsAt      time.Time
	ShiftSlot   string
	Status      ScheduleStatus
	CreatedBy   string
	Approved    bool
	CreatedAt   time.Time
}

// Assignment — размещение участника в роли внутри расписания.
// Уникально по (schedule, user, role); изменяется только через
// жизненный цикл участия и workflow замены.
type Assignment struct {
	ID         string
	ScheduleID string
	UserID     string
	AreaID     string
	RoleID     string
	Status     AssignmentStatus
	// Position — порядковый номер в выдаче генератора; сохраняет
	// стабильный порядок между повторными запусками.
	Position int
}

// SwapRequest — запрос на передачу назначения другому участнику.
// На одно назначение допускается не более одного OPEN-запроса.
type SwapRequest struct {
	ID           string
	AssignmentID string
	RequestedAt  time.Time
	Resolution   SwapResolution
}

// Quota — запрошенное количество участников для пары (область, роль).
// Входные данные генерации, не хранится.
type Quota struct {
	AreaID string
	RoleID string
	Count  int
}

// Deficiency — недобор по одной квоте после генерации.
type Deficiency struct {
	AreaID    string
	RoleID    string
	Requested int
	Fulfilled int
}

// ScheduleSnapshot — согласованный срез расписания для опрашивающих клиентов:
// либо состояние до мутации, либо полностью после, никогда промежуточное.
type ScheduleSnapshot struct {
	Schedule    *Schedule
	Assignments []*Assignment
	OpenSwaps   []*SwapRequest
}

// ScheduleRepository определяет контракт хранилища расписаний и назначений.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, scheduleID string) (*Schedule, error)
	List(ctx context.Context) ([]*Schedule, error)
	GetSnapshot(ctx context.Context, scheduleID string) (*ScheduleSnapshot, error)
	UpdateStatus(ctx context.Context, scheduleID string, status ScheduleStatus) error
	SoftDelete(ctx context.Context, scheduleID string) error

	CountAssignments(ctx context.Context, scheduleID string) (int, error)
	GetAssignment(ctx context.Context, assignmentID string) (*Assignment, error)
	GetAssignedUserIDs(ctx context.Context, scheduleID string) (map[string]bool, error)
	ReplaceAssignments(ctx context.Context, scheduleID string, assignments []*Assignment) error
	AddAssignments(ctx context.Context, scheduleID string, assignments []*Assignment) error
	RemoveAssignments(ctx context.Context, scheduleID string, assignmentIDs []string) error
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status AssignmentStatus) error
}

// SwapRepository определяет контракт хранилища запросов на замену.
// Open и Close изменяют запрос и связанное назначение в одной транзакции:
// частичная запись оставила бы назначение в состоянии, из которого замена
// недостижима.
type SwapRepository interface {
	// Open сохраняет запрос и переводит назначение в новый статус.
	Open(ctx context.Context, swap *SwapRequest, assignmentStatus AssignmentStatus) error
	// GetOpenByAssignment возвращает (nil, nil), когда открытого запроса нет.
	GetOpenByAssignment(ctx context.Context, assignmentID string) (*SwapRequest, error)
	// Close закрывает запрос с итоговым исходом и передает назначение
	// участнику holderID с новым статусом.
	Close(ctx context.Context, swapID string, resolution SwapResolution, assignmentID, holderID string, assignmentStatus AssignmentStatus) error
}
