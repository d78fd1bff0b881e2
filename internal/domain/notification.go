/**
 * @description
 * Notification log domain model. Every WhatsApp reminder attempt is
 * recorded as an append-only log row; a new attempt always produces a
 * new row, never an update.
 */
package domain

import "time"

// Notification log statuses.
const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// NotificationLog is one reminder send attempt for a client.
type NotificationLog struct {
	ID                string    `json:"id"`
	ClientID          string    `json:"client_id"`
	SentAt            time.Time `json:"sent_at"`
	Status            string    `json:"status"` // 'sent', 'failed', 'pending'
	ProviderMessageID *string   `json:"provider_message_id,omitempty"`
	MessageBody       string    `json:"message_body"`
	ErrorMessage      *string   `json:"error_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
