package lifecycle

import "roster-service/internal/domain"

// Допустимые переходы жизненного цикла расписания:
// DRAFT → ACTIVE → COMPLETE; DRAFT|ACTIVE → DELETED.
// COMPLETE и DELETED — терминальные состояния.
var scheduleTransitions = map[domain.ScheduleStatus][]domain.ScheduleStatus{
	domain.ScheduleDraft:  {domain.ScheduleActive, domain.ScheduleDeleted},
	domain.ScheduleActive: {domain.ScheduleComplete, domain.ScheduleDeleted},
}

// CanTransition сообщает, разрешен ли переход расписания из from в to.
func CanTransition(from, to domain.ScheduleStatus) bool {
	for _, allowed := range scheduleTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает ErrInvalidTransition для запрещенного перехода.
func ValidateTransition(from, to domain.ScheduleStatus) error {
	if !CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// AcceptsMutations сообщает, принимает ли расписание изменения состава.
// COMPLETE и DELETED расписания неизменяемы.
func AcceptsMutations(status domain.ScheduleStatus) bool {
	return status == domain.ScheduleDraft || status == domain.ScheduleActive
}
