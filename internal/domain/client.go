/**
 * @description
 * This file defines the core domain models for client records.
 * A client rents a slot on the LED screen and is billed monthly on a
 * fixed day of the month.
 */
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client status values.
const (
	ClientStatusActive = "active"
	ClientStatusPaused = "paused"
	ClientStatusEnded  = "ended"
)

// Billing frequency values.
const (
	BillingFrequencyMonthly = "monthly"
	BillingFrequencyCustom  = "custom"
)

// Client represents a client record as stored in the database.
// BillingDay is capped at 28 so every month has the billing day.
type Client struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	BusinessName     *string         `json:"business_name,omitempty"`
	PhoneE164        string          `json:"phone_e164"`
	WhatsAppOptIn    bool            `json:"whatsapp_opt_in"`
	Status           string          `json:"status"` // 'active', 'paused', 'ended'
	StartDate        time.Time       `json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	TicketAmount     decimal.Decimal `json:"ticket_amount"`
	Currency         string          `json:"currency"`
	BillingFrequency string          `json:"billing_frequency"` // 'monthly', 'custom'
	BillingDay       int             `json:"billing_day"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
