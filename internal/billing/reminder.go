/**
 * @description
 * Reminder dispatch gate. Decides whether a WhatsApp reminder may be
 * sent to a client, performs the single send call through the injected
 * sender and produces the append-only log entry for the attempt.
 * Persistence of the entry belongs to the caller; retries, if wanted,
 * belong to the caller too.
 */
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/ferchoitu/led1-billing/internal/domain"
)

// ErrOptedOut is returned when a reminder is requested for a client
// that has not opted in to WhatsApp messages. The refusal is explicit:
// the sender is never called and no log entry is produced.
var ErrOptedOut = errors.New("client has not opted in to whatsapp reminders")

// Sender delivers a text message to a phone number and returns the
// provider-assigned message id.
type Sender interface {
	Send(ctx context.Context, phoneE164, body string) (providerMessageID string, err error)
}

// AttemptReminder sends a single reminder to the client through sender.
//
// On a successful send the returned entry has status "sent" and carries
// the provider message id. On a send failure the entry has status
// "failed" with the error text, and the send error is returned
// alongside so the caller can both persist the entry and surface the
// failure. Exactly one send is attempted; there is no retry.
func AttemptReminder(ctx context.Context, c domain.Client, body string, sender Sender) (domain.NotificationLog, error) {
	if !c.WhatsAppOptIn {
		return domain.NotificationLog{}, ErrOptedOut
	}

	entry := domain.NotificationLog{
		ClientID:    c.ID,
		SentAt:      time.Now().UTC(),
		Status:      domain.NotificationStatusPending,
		MessageBody: body,
	}

	providerID, err := sender.Send(ctx, c.PhoneE164, body)
	if err != nil {
		msg := err.Error()
		entry.Status = domain.NotificationStatusFailed
		entry.ErrorMessage = &msg
		return entry, err
	}

	entry.Status = domain.NotificationStatusSent
	if providerID != "" {
		entry.ProviderMessageID = &providerID
	}
	return entry, nil
}
