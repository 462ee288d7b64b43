package lifecycle

import "roster-service/internal/domain"

// Жизненный цикл участия: PENDING → CONFIRMED;
// PENDING|CONFIRMED → SWAP_REQUESTED → CONFIRMED (отказ/отмена)
// или → PENDING (замена принята, назначение передано новому участнику).

// ConfirmPresence возвращает статус после подтверждения присутствия.
// Повторное подтверждение идемпотентно.
func ConfirmPresence(current domain.AssignmentStatus) (domain.AssignmentStatus, error) {
	switch current {
	case domain.AssignmentPending, domain.AssignmentConfirmed:
		return domain.AssignmentConfirmed, nil
	default:
		return "", domain.ErrInvalidTransition
	}
}

// RequestSwap возвращает статус после открытия запроса на замену.
// Повторный запрос при уже открытой замене — конфликт состояния.
func RequestSwap(current domain.AssignmentStatus) (domain.AssignmentStatus, error) {
	switch current {
	case domain.AssignmentPending, domain.AssignmentConfirmed:
		return domain.AssignmentSwapRequested, nil
	case domain.AssignmentSwapRequested:
		return "", domain.ErrSwapAlreadyOpen
	default:
		return "", domain.ErrInvalidTransition
	}
}

// ResolveSwap возвращает статус после разрешения запроса на замену.
// Принятая замена сбрасывает назначение в PENDING для нового участника,
// отклоненная возвращает исходного участника в CONFIRMED.
func ResolveSwap(current domain.AssignmentStatus, accepted bool) (domain.AssignmentStatus, error) {
	if current != domain.AssignmentSwapRequested {
		return "", domain.ErrNoOpenSwap
	}
	if accepted {
		return domain.AssignmentPending, nil
	}
	return domain.AssignmentConfirmed, nil
}
