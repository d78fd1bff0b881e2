/**
 * @description
 * Data access layer for operating expenses.
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

const expenseColumns = `
    id, concept, amount, currency, spent_at, notes, created_at
`

// ExpenseRepository handles database operations for expenses.
type ExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ID,
		&e.Concept,
		&e.Amount,
		&e.Currency,
		&e.SpentAt,
		&e.Notes,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListExpenses returns expenses, optionally restricted to one month,
// most recent first.
func (r *ExpenseRepository) ListExpenses(ctx context.Context, year, month int) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []interface{}{}

	if year != 0 {
		args = append(args, year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM spent_at) = $%d", len(args))
	}
	if month != 0 {
		args = append(args, month)
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM spent_at) = $%d", len(args))
	}
	query += " ORDER BY spent_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// CreateExpense inserts an expense and returns the stored row.
func (r *ExpenseRepository) CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	query := `
        INSERT INTO expenses (concept, amount, currency, spent_at, notes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + expenseColumns
	return scanExpense(r.db.QueryRow(ctx, query,
		e.Concept,
		e.Amount,
		e.Currency,
		e.SpentAt,
		e.Notes,
	))
}

// DeleteExpense removes an expense entry.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// TotalForPeriod sums the expenses recorded in a calendar month.
func (r *ExpenseRepository) TotalForPeriod(ctx context.Context, year, month int) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM expenses
        WHERE EXTRACT(YEAR FROM spent_at) = $1 AND EXTRACT(MONTH FROM spent_at) = $2
    `
	if err := r.db.QueryRow(ctx, query, year, month).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
