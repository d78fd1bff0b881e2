/**
 * @description
 * Expense domain model for operating cost tracking (electricity, rent,
 * screen maintenance and so on).
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single operating expense entry.
type Expense struct {
	ID        string          `json:"id"`
	Concept   string          `json:"concept"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	SpentAt   time.Time       `json:"spent_at"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
