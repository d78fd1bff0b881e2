/**
 * @description
 * Data access layer for payments. The unique constraint on
 * (client_id, period_year, period_month) is the source of truth for
 * the one-payment-per-period invariant; this layer only translates the
 * violation into ErrDuplicatePayment.
 */
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ferchoitu/led1-billing/internal/domain"
)

const paymentColumns = `
    id, client_id, period_year, period_month, amount, paid_at, notes, created_at
`

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	ClientID    string
	PeriodYear  int
	PeriodMonth int
}

// PaymentRepository handles database operations for payments.
type PaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID,
		&p.ClientID,
		&p.PeriodYear,
		&p.PeriodMonth,
		&p.Amount,
		&p.PaidAt,
		&p.Notes,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPayments returns payments matching the filter, most recent first.
func (r *PaymentRepository) ListPayments(ctx context.Context, f PaymentFilter) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}

	if f.ClientID != "" {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.PeriodYear != 0 {
		args = append(args, f.PeriodYear)
		query += fmt.Sprintf(" AND period_year = $%d", len(args))
	}
	if f.PeriodMonth != 0 {
		args = append(args, f.PeriodMonth)
		query += fmt.Sprintf(" AND period_month = $%d", len(args))
	}
	query += " ORDER BY paid_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// ListPaymentsForPeriod returns every payment recorded against the
// given billing period. This is the payment set the classifier runs on.
func (r *PaymentRepository) ListPaymentsForPeriod(ctx context.Context, year, month int) ([]domain.Payment, error) {
	return r.ListPayments(ctx, PaymentFilter{PeriodYear: year, PeriodMonth: month})
}

// CreatePayment inserts a payment and returns the stored row.
func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	query := `
        INSERT INTO payments (client_id, period_year, period_month, amount, paid_at, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + paymentColumns
	created, err := scanPayment(r.db.QueryRow(ctx, query,
		p.ClientID,
		p.PeriodYear,
		p.PeriodMonth,
		p.Amount,
		p.PaidAt,
		p.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "payments_client_period_key") {
			return nil, ErrDuplicatePayment
		}
		if isForeignKeyViolation(err) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return created, nil
}

// DeletePayment removes a payment entry.
func (r *PaymentRepository) DeletePayment(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// CollectedTotalForPeriod sums the payments recorded for a period.
func (r *PaymentRepository) CollectedTotalForPeriod(ctx context.Context, year, month int) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM payments
        WHERE period_year = $1 AND period_month = $2
    `
	if err := r.db.QueryRow(ctx, query, year, month).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
