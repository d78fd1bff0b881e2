/**
 * @description
 * Core business logic for the LED1 billing backend. The Service layer
 * fetches records through the repository interfaces, runs them through
 * the billing engine (internal/billing) and shapes the results for the
 * API layer. All classification happens here on snapshots the
 * repositories return; the billing engine itself never touches storage.
 */
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ferchoitu/led1-billing/internal/billing"
	"github.com/ferchoitu/led1-billing/internal/domain"
	"github.com/ferchoitu/led1-billing/internal/store"
)

var (
	// ErrAlreadyPaid is returned when a reminder is requested for a
	// client that already paid the current period.
	ErrAlreadyPaid = errors.New("client already paid the current period")

	// ErrClientInactive is returned when a reminder is requested for a
	// paused or ended client.
	ErrClientInactive = errors.New("client is not active")
)

// ClientRepository defines the client database operations the service needs.
type ClientRepository interface {
	ListClients(ctx context.Context, status, search string) ([]domain.Client, error)
	ListActiveClients(ctx context.Context) ([]domain.Client, error)
	ListActiveClientsByBillingDays(ctx context.Context, days []int) ([]domain.Client, error)
	GetClientByID(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, c *domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

// PaymentRepository defines the payment database operations the service needs.
type PaymentRepository interface {
	ListPayments(ctx context.Context, f store.PaymentFilter) ([]domain.Payment, error)
	ListPaymentsForPeriod(ctx context.Context, year, month int) ([]domain.Payment, error)
	CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	CollectedTotalForPeriod(ctx context.Context, year, month int) (decimal.Decimal, error)
}

// NotificationRepository defines the notifications log operations the service needs.
type NotificationRepository interface {
	InsertLog(ctx context.Context, n *domain.NotificationLog) (*domain.NotificationLog, error)
	ListRecentLogs(ctx context.Context, limit int) ([]domain.NotificationLog, error)
}

// ExpenseRepository defines the expense database operations the service needs.
type ExpenseRepository interface {
	ListExpenses(ctx context.Context, year, month int) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	TotalForPeriod(ctx context.Context, year, month int) (decimal.Decimal, error)
}

// Service provides the business logic for the billing backend.
type Service struct {
	clients       ClientRepository
	payments      PaymentRepository
	notifications NotificationRepository
	expenses      ExpenseRepository
	sender        billing.Sender
	cal           billing.Calendar
	logger        *slog.Logger
	sendDelay     time.Duration
	now           func() time.Time
}

// NewService creates a new billing service.
func NewService(
	clients ClientRepository,
	payments PaymentRepository,
	notifications NotificationRepository,
	expenses ExpenseRepository,
	sender billing.Sender,
	cal billing.Calendar,
	logger *slog.Logger,
	sendDelay time.Duration,
) *Service {
	return &Service{
		clients:       clients,
		payments:      payments,
		notifications: notifications,
		expenses:      expenses,
		sender:        sender,
		cal:           cal,
		logger:        logger,
		sendDelay:     sendDelay,
		now:           time.Now,
	}
}

// DashboardData is everything the dashboard page renders: KPI summary
// plus the client lists behind the "collect today" and "overdue" cards.
type DashboardData struct {
	Period   billing.Period  `json:"period"`
	Today    billing.Date    `json:"today"`
	KPIs     domain.KPIs     `json:"kpis"`
	DueToday []domain.Client `json:"due_today"`
	Overdue  []domain.Client `json:"overdue"`
}

// Dashboard classifies every active client against the current period
// and aggregates the collection KPIs.
func (s *Service) Dashboard(ctx context.Context) (*DashboardData, error) {
	now := s.now()
	today := s.cal.Today(now)
	period := today.Period()

	clients, err := s.clients.ListActiveClients(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListPaymentsForPeriod(ctx, period.Year, period.Month)
	if err != nil {
		return nil, err
	}

	classified := billing.ClassifyAll(clients, payments, today)

	data := &DashboardData{
		Period:   period,
		Today:    today,
		KPIs:     billing.Aggregate(classified),
		DueToday: []domain.Client{},
		Overdue:  []domain.Client{},
	}
	for _, cc := range classified {
		switch cc.State {
		case billing.StateDueToday:
			data.DueToday = append(data.DueToday, cc.Client)
		case billing.StateOverdue:
			data.Overdue = append(data.Overdue, cc.Client)
		}
	}
	return data, nil
}

// CurrentPeriod exposes the business-local current billing period.
func (s *Service) CurrentPeriod() billing.Period {
	return s.cal.CurrentPeriod(s.now())
}

// ListClients returns clients filtered by status and search term.
func (s *Service) ListClients(ctx context.Context, status, search string) ([]domain.Client, error) {
	return s.clients.ListClients(ctx, status, search)
}

// GetClient returns a single client by id.
func (s *Service) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetClientByID(ctx, id)
}

// CreateClient registers a new client.
func (s *Service) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	return s.clients.CreateClient(ctx, c)
}

// UpdateClient updates a client record.
func (s *Service) UpdateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	return s.clients.UpdateClient(ctx, c)
}

// DeleteClient removes a client; clients with recorded payments are
// rejected by the store's referential guard.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	return s.clients.DeleteClient(ctx, id)
}

// ListPayments returns payments matching the filter.
func (s *Service) ListPayments(ctx context.Context, f store.PaymentFilter) ([]domain.Payment, error) {
	return s.payments.ListPayments(ctx, f)
}

// RecordPayment logs a payment for a billing period. A duplicate
// (client, period) surfaces as store.ErrDuplicatePayment.
func (s *Service) RecordPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if p.PaidAt.IsZero() {
		p.PaidAt = s.now()
	}
	return s.payments.CreatePayment(ctx, p)
}

// DeletePayment removes an erroneously recorded payment.
func (s *Service) DeletePayment(ctx context.Context, id string) error {
	return s.payments.DeletePayment(ctx, id)
}

// ListExpenses returns expenses, optionally for one month.
func (s *Service) ListExpenses(ctx context.Context, year, month int) ([]domain.Expense, error) {
	return s.expenses.ListExpenses(ctx, year, month)
}

// RecordExpense logs an operating expense.
func (s *Service) RecordExpense(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	if e.SpentAt.IsZero() {
		e.SpentAt = s.now()
	}
	return s.expenses.CreateExpense(ctx, e)
}

// DeleteExpense removes an expense entry.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return s.expenses.DeleteExpense(ctx, id)
}

// ListNotifications returns the recent reminder log, newest first.
func (s *Service) ListNotifications(ctx context.Context, limit int) ([]domain.NotificationLog, error) {
	return s.notifications.ListRecentLogs(ctx, limit)
}
