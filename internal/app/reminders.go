/**
 * @description
 * Reminder orchestration: the single manual send and the batch run the
 * scheduler triggers. The batch isolates per-client failures so one
 * broken phone number never stops the rest of the run, mirroring the
 * behaviour of the original scheduled function.
 */
package app

import (
	"context"
	"errors"
	"time"

	"github.com/ferchoitu/led1-billing/internal/billing"
	"github.com/ferchoitu/led1-billing/internal/domain"
	"github.com/ferchoitu/led1-billing/internal/store"
	"github.com/ferchoitu/led1-billing/pkg/whatsapp"
)

// ReminderOutcome is the per-client result of a batch run.
type ReminderOutcome struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// ReminderRunResult summarizes a batch reminder run.
type ReminderRunResult struct {
	Processed     int               `json:"processed"`
	Sent          int               `json:"sent"`
	Failed        int               `json:"failed"`
	SkippedPaid   int               `json:"skipped_paid"`
	SkippedOptOut int               `json:"skipped_opt_out"`
	Details       []ReminderOutcome `json:"details"`
}

// SendReminder sends a single WhatsApp reminder to one client.
//
// The client is classified first: already-paid and inactive clients are
// refused before any send. An opted-out client returns
// billing.ErrOptedOut without a log row. A provider failure returns
// both the persisted "failed" log entry and the send error so the API
// layer can surface the failure alongside the audit row.
func (s *Service) SendReminder(ctx context.Context, clientID string) (*domain.NotificationLog, error) {
	client, err := s.clients.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	today := s.cal.Today(s.now())
	period := today.Period()

	payments, err := s.payments.ListPayments(ctx, store.PaymentFilter{
		ClientID:    client.ID,
		PeriodYear:  period.Year,
		PeriodMonth: period.Month,
	})
	if err != nil {
		return nil, err
	}

	switch billing.Classify(*client, payments, today) {
	case billing.StatePaid:
		return nil, ErrAlreadyPaid
	case billing.StateInactive:
		return nil, ErrClientInactive
	}

	body := whatsapp.ReminderMessage(client.Name, client.TicketAmount, client.Currency)
	entry, sendErr := billing.AttemptReminder(ctx, *client, body, s.sender)
	if errors.Is(sendErr, billing.ErrOptedOut) {
		return nil, sendErr
	}

	stored, insErr := s.notifications.InsertLog(ctx, &entry)
	if insErr != nil {
		s.logger.Error("failed to persist notification log", "client_id", client.ID, "error", insErr)
		stored = &entry
	}

	if sendErr != nil {
		return stored, sendErr
	}
	return stored, nil
}

// RunReminders sends reminders to every client due today or overdue
// who has not paid the current period. Failures are recorded per
// client and never abort the run.
func (s *Service) RunReminders(ctx context.Context) (*ReminderRunResult, error) {
	today := s.cal.Today(s.now())
	period := today.Period()

	clients, err := s.clients.ListActiveClients(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListPaymentsForPeriod(ctx, period.Year, period.Month)
	if err != nil {
		return nil, err
	}

	result := &ReminderRunResult{Details: []ReminderOutcome{}}

	for _, client := range clients {
		state := billing.Classify(client, payments, today)
		if state != billing.StateDueToday && state != billing.StateOverdue {
			if state == billing.StatePaid {
				result.SkippedPaid++
			}
			continue
		}

		result.Processed++

		if !client.WhatsAppOptIn {
			result.SkippedOptOut++
			result.Details = append(result.Details, ReminderOutcome{
				ClientID: client.ID,
				Name:     client.Name,
				Status:   "skipped_opt_out",
			})
			continue
		}

		body := whatsapp.ReminderMessage(client.Name, client.TicketAmount, client.Currency)
		entry, sendErr := billing.AttemptReminder(ctx, client, body, s.sender)

		if _, insErr := s.notifications.InsertLog(ctx, &entry); insErr != nil {
			s.logger.Error("failed to persist notification log", "client_id", client.ID, "error", insErr)
		}

		outcome := ReminderOutcome{ClientID: client.ID, Name: client.Name, Status: entry.Status}
		if sendErr != nil {
			result.Failed++
			outcome.Error = sendErr.Error()
			s.logger.Error("reminder send failed", "client_id", client.ID, "error", sendErr)
		} else {
			result.Sent++
		}
		result.Details = append(result.Details, outcome)

		// Pace sends to stay under the provider rate limit.
		if s.sendDelay > 0 {
			time.Sleep(s.sendDelay)
		}
	}

	s.logger.Info("reminder run finished",
		"processed", result.Processed,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped_paid", result.SkippedPaid,
		"skipped_opt_out", result.SkippedOptOut,
	)
	return result, nil
}
