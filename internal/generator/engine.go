package generator

import (
	"sort"
	"time"

	"roster-service/internal/domain"
)

// rollingMonth — окно скользящего месяца для лимита назначений.
const rollingMonth = 30 * 24 * time.Hour

// Config — числовые ограничения справедливости генерации.
type Config struct {
	MaxAssignmentsPerMonth    int
	MinDaysBetweenAssignments int
}

// Input — входные данные одного запуска генерации. Все чтения
// (доступность, история) выполняются вызывающей стороной заранее:
// сама генерация — ограниченное синхронное вычисление без I/O.
type Input struct {
	ScheduleID string
	StartsAt   time.Time
	EndsAt     time.Time
	ShiftSlot  string
	// Quotas обрабатываются строго в заданном порядке.
	Quotas []domain.Quota
	// Pools — допущенные участники по паре (область, роль).
	Pools map[domain.Qualification][]*domain.User
	// Blocked — участники с блокирующим исключением на дату/смену расписания.
	Blocked map[string]bool
	// Histories — агрегаты истории по участникам из Pools.
	Histories map[string]*domain.UserHistory
}

// Result — упорядоченный список назначений и отчет о недоборе.
// Недобор не является ошибкой: решение о неполном составе за вызывающим.
type Result struct {
	Assignments  []*domain.Assignment
	Deficiencies []domain.Deficiency
}

// Engine — детерминированный генератор состава: одинаковые входные данные
// всегда дают одинаковый упорядоченный список назначений.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config возвращает действующие ограничения генерации.
func (e *Engine) Config() Config {
	return e.cfg
}

// Generate выполняет эвристику подбора: для каждой квоты по порядку строит
// множество кандидатов, ранжирует его и выбирает до закрытия квоты.
func (e *Engine) Generate(in Input) Result {
	result := Result{
		Assignments:  make([]*domain.Assignment, 0),
		Deficiencies: make([]domain.Deficiency, 0),
	}

	// Участники, уже получившие назначение в этом запуске.
	assigned := make(map[string]bool)
	position := 0

	for _, quota := range in.Quotas {
		pool := in.Pools[domain.Qualification{AreaID: quota.AreaID, RoleID: quota.RoleID}]

		// 1. Множество кандидатов: допущенные минус заблокированные
		// минус уже назначенные в этом запуске.
		candidates := make([]*domain.User, 0, len(pool))
		for _, user := range pool {
			if in.Blocked[user.ID] || assigned[user.ID] {
				continue
			}
			candidates = append(candidates, user)
		}

		// 2. Ранжирование: месячная нагрузка, затем давность последнего
		// служения (давнее — приоритетнее), затем идентификатор.
		e.rank(candidates, in.Histories, in.StartsAt)

		// 3. Выбор до закрытия квоты с пропуском нарушающих ограничения.
		fulfilled := 0
		for _, user := range candidates {
			if fulfilled >= quota.Count {
				break
			}
			if !e.withinConstraints(in.Histories[user.ID], in.StartsAt) {
				continue
			}
			result.Assignments = append(result.Assignments, &domain.Assignment{
				ScheduleID: in.ScheduleID,
				UserID:     user.ID,
				AreaID:     quota.AreaID,
				RoleID:     quota.RoleID,
				Status:     domain.AssignmentPending,
				Position:   position,
			})
			assigned[user.ID] = true
			position++
			fulfilled++
		}

		// 4. Недобор фиксируется в отчете, запуск не прерывается.
		if fulfilled < quota.Count {
			result.Deficiencies = append(result.Deficiencies, domain.Deficiency{
				AreaID:    quota.AreaID,
				RoleID:    quota.RoleID,
				Requested: quota.Count,
				Fulfilled: fulfilled,
			})
		}
	}

	return result
}

// rank сортирует кандидатов по возрастанию месячной нагрузки, затем по
// возрастанию даты окончания последнего назначения (нулевая дата — участник
// еще не служил — идет первым), затем по идентификатору для стабильности.
func (e *Engine) rank(candidates []*domain.User, histories map[string]*domain.UserHistory, scheduleStart time.Time) {
	sort.SliceStable(candidates, func(i, j int) bool {
		hi, hj := histories[candidates[i].ID], histories[candidates[j].ID]

		ci, cj := monthlyCount(hi, scheduleStart), monthlyCount(hj, scheduleStart)
		if ci != cj {
			return ci < cj
		}

		li, lj := lastEnd(hi), lastEnd(hj)
		if !li.Equal(lj) {
			return li.Before(lj)
		}

		return candidates[i].ID < candidates[j].ID
	})
}

// withinConstraints проверяет, не нарушит ли новое назначение лимит
// назначений в месяц и минимальный интервал между служениями.
func (e *Engine) withinConstraints(history *domain.UserHistory, scheduleStart time.Time) bool {
	if history == nil {
		return true
	}

	if e.cfg.MaxAssignmentsPerMonth > 0 &&
		monthlyCount(history, scheduleStart)+1 > e.cfg.MaxAssignmentsPerMonth {
		return false
	}

	if e.cfg.MinDaysBetweenAssignments > 0 {
		minGap := time.Duration(e.cfg.MinDaysBetweenAssignments) * 24 * time.Hour
		for _, start := range history.AssignmentStarts {
			gap := scheduleStart.Sub(start)
			if gap < 0 {
				gap = -gap
			}
			if gap < minGap {
				return false
			}
		}
	}

	return true
}

// monthlyCount — число известных назначений в пределах скользящего месяца
// вокруг даты расписания.
func monthlyCount(history *domain.UserHistory, scheduleStart time.Time) int {
	if history == nil {
		return 0
	}
	count := 0
	for _, start := range history.AssignmentStarts {
		gap := scheduleStart.Sub(start)
		if gap < 0 {
			gap = -gap
		}
		if gap < rollingMonth {
			count++
		}
	}
	return count
}

func lastEnd(history *domain.UserHistory) time.Time {
	if history == nil {
		return time.Time{}
	}
	return history.LastAssignmentEnd
}
