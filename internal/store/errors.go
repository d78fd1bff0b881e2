/**
 * @description
 * Sentinel errors and Postgres error-code mapping shared by the
 * repositories. The payment-period uniqueness and the client/payment
 * referential guard are enforced by database constraints; this file
 * translates those violations into errors the service layer can test
 * with errors.Is.
 */
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrClientNotFound is returned when a client id resolves to no row.
	ErrClientNotFound = errors.New("client not found")

	// ErrPaymentNotFound is returned when a payment id resolves to no row.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrExpenseNotFound is returned when an expense id resolves to no row.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrDuplicatePhone is returned when a client with the same
	// phone_e164 already exists.
	ErrDuplicatePhone = errors.New("a client with this phone number already exists")

	// ErrDuplicatePayment is returned when a payment already exists for
	// the (client, period_year, period_month) combination.
	ErrDuplicatePayment = errors.New("a payment for this client and period already exists")

	// ErrClientHasPayments is returned when deleting a client that still
	// has recorded payments.
	ErrClientHasPayments = errors.New("client has recorded payments and cannot be deleted")
)

// Postgres error codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
