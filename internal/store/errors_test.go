package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dupPayment := &pgconn.PgError{Code: "23505", ConstraintName: "payments_client_period_key"}

	if !isUniqueViolation(dupPayment, "payments_client_period_key") {
		t.Fatal("expected a match on code and constraint name")
	}
	if isUniqueViolation(dupPayment, "clients_phone_e164_key") {
		t.Fatal("expected no match for a different constraint")
	}
	if !isUniqueViolation(dupPayment, "") {
		t.Fatal("empty constraint should match any unique violation")
	}

	wrapped := fmt.Errorf("insert failed: %w", dupPayment)
	if !isUniqueViolation(wrapped, "payments_client_period_key") {
		t.Fatal("expected wrapped errors to match")
	}

	if isUniqueViolation(errors.New("plain error"), "") {
		t.Fatal("non-pg errors must not match")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "payments_client_id_fkey"}

	if !isForeignKeyViolation(fk) {
		t.Fatal("expected foreign key violation to match")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation is not a foreign key violation")
	}
	if isForeignKeyViolation(errors.New("plain error")) {
		t.Fatal("non-pg errors must not match")
	}
}
