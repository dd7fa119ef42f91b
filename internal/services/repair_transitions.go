package services

import "repair-system/pkg/constants"

// allowedTransitions - допустимые переходы статуса заявки (по ключам).
// Из финальных статусов переходов нет.
var allowedTransitions = map[string][]string{
	constants.RepairStatusRequested:    {constants.RepairStatusApproved, constants.RepairStatusCanceled},
	constants.RepairStatusApproved:     {constants.RepairStatusInProgress, constants.RepairStatusCanceled},
	constants.RepairStatusInProgress:   {constants.RepairStatusPendingParts, constants.RepairStatusCompleted, constants.RepairStatusCanceled},
	constants.RepairStatusPendingParts: {constants.RepairStatusInProgress, constants.RepairStatusCompleted, constants.RepairStatusCanceled},
	constants.RepairStatusCompleted:    {},
	constants.RepairStatusCanceled:     {},
}

// TransitionPolicy решает, можно ли сменить статус from на to.
// При Strict == false разрешено все.
type TransitionPolicy struct {
	Strict bool
}

func NewTransitionPolicy(strict bool) TransitionPolicy {
	return TransitionPolicy{Strict: strict}
}

func (p TransitionPolicy) Allows(from, to string) bool {
	if !p.Strict {
		return true
	}
	if from == to {
		// повторная установка того же статуса - только для незавершенной заявки
		return !constants.IsFinalRepairStatus(from)
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowsInitial - с каким статусом можно создать заявку. В строгом режиме
// заявка всегда начинается с requested.
func (p TransitionPolicy) AllowsInitial(status string) bool {
	return !p.Strict || status == constants.RepairStatusRequested
}

// NextStatuses - куда можно перейти из from (для подсказок клиенту).
func (p TransitionPolicy) NextStatuses(from string, all []string) []string {
	result := make([]string, 0, len(all))
	for _, to := range all {
		if to != from && p.Allows(from, to) {
			result = append(result, to)
		}
	}
	return result
}
