/**
 * @description
 * Payment domain model. A payment settles exactly one billing period
 * (year, month) for a client; the database enforces at most one payment
 * per (client_id, period_year, period_month).
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a recorded payment for a billing period.
// The period is the month the payment pays for, not the month it was
// recorded in.
type Payment struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	PeriodYear  int             `json:"period_year"`
	PeriodMonth int             `json:"period_month"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAt      time.Time       `json:"paid_at"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
