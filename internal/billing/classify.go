/**
 * @description
 * Billing state classifier. Given a client, the payments already
 * recorded for the period being evaluated and today's date, it decides
 * whether the client is inactive, paid, due today, overdue or upcoming.
 * Pure function: no storage access, no clock access, same inputs always
 * produce the same state.
 */
package billing

import (
	"github.com/ferchoitu/led1-billing/internal/domain"
)

// State is the billing state of a client for the evaluated period.
type State string

// The five mutually exclusive billing states.
const (
	StateInactive State = "inactive"
	StatePaid     State = "paid"
	StateDueToday State = "due_today"
	StateOverdue  State = "overdue"
	StateUpcoming State = "upcoming"
)

// ClassifiedClient pairs a client with its computed billing state.
type ClassifiedClient struct {
	Client domain.Client `json:"client"`
	State  State         `json:"state"`
}

// Classify determines the billing state of a client for the period
// today falls in. paymentsForPeriod must already be filtered to that
// period by the caller; payments belonging to other clients are
// ignored, so passing the whole period's payment list is fine.
//
// The check order is fixed: lifecycle first, then payment, then the
// billing day comparison. A paused or ended client is never due, and a
// client who paid early is never shown as due again this period.
// BillingDay is validated into [1,28] at the API boundary, so the
// day-of-month comparison is unambiguous in every month.
func Classify(c domain.Client, paymentsForPeriod []domain.Payment, today Date) State {
	if c.Status != domain.ClientStatusActive {
		return StateInactive
	}

	if c.EndDate != nil && DateOf(*c.EndDate).Before(today) {
		return StateInactive
	}

	for _, p := range paymentsForPeriod {
		if p.ClientID == c.ID {
			return StatePaid
		}
	}

	switch {
	case c.BillingDay == today.Day:
		return StateDueToday
	case c.BillingDay < today.Day:
		return StateOverdue
	default:
		return StateUpcoming
	}
}

// ClassifyAll classifies every client in the list against the same
// payment set and date.
func ClassifyAll(clients []domain.Client, paymentsForPeriod []domain.Payment, today Date) []ClassifiedClient {
	classified := make([]ClassifiedClient, 0, len(clients))
	for _, c := range clients {
		classified = append(classified, ClassifiedClient{
			Client: c,
			State:  Classify(c, paymentsForPeriod, today),
		})
	}
	return classified
}
