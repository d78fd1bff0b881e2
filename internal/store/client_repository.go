/**
 * @description
 * Data access layer for client records. All SQL touching the clients
 * table lives here; the schema is managed by Supabase migrations.
 */
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferchoitu/led1-billing/internal/domain"
)

const clientColumns = `
    id, name, business_name, phone_e164, whatsapp_opt_in, status,
    start_date, end_date, ticket_amount, currency, billing_frequency,
    billing_day, notes, created_at, updated_at
`

// ClientRepository handles database operations for clients.
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository creates a new client repository.
func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.BusinessName,
		&c.PhoneE164,
		&c.WhatsAppOptIn,
		&c.Status,
		&c.StartDate,
		&c.EndDate,
		&c.TicketAmount,
		&c.Currency,
		&c.BillingFrequency,
		&c.BillingDay,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns clients, newest first, optionally filtered by
// status and by a search term matched against name, business name and
// phone number.
func (r *ClientRepository) ListClients(ctx context.Context, status, search string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	args := []interface{}{}

	if status != "" && status != "all" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR business_name ILIKE $%d OR phone_e164 ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClients(rows)
}

// ListActiveClients returns every client with status 'active'.
func (r *ClientRepository) ListActiveClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE status = 'active' ORDER BY billing_day, name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClients(rows)
}

// ListActiveClientsByBillingDays returns active clients whose billing
// day is one of the given days. Used by the upcoming-collections report.
func (r *ClientRepository) ListActiveClientsByBillingDays(ctx context.Context, days []int) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE status = 'active' AND billing_day = ANY($1) ORDER BY billing_day, name`
	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClients(rows)
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// GetClientByID retrieves a single client.
func (r *ClientRepository) GetClientByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// CreateClient inserts a new client and returns the stored row.
func (r *ClientRepository) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	query := `
        INSERT INTO clients (
            name, business_name, phone_e164, whatsapp_opt_in, status,
            start_date, end_date, ticket_amount, currency,
            billing_frequency, billing_day, notes
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + clientColumns
	created, err := scanClient(r.db.QueryRow(ctx, query,
		c.Name,
		c.BusinessName,
		c.PhoneE164,
		c.WhatsAppOptIn,
		c.Status,
		c.StartDate,
		c.EndDate,
		c.TicketAmount,
		c.Currency,
		c.BillingFrequency,
		c.BillingDay,
		c.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "clients_phone_e164_key") {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}
	return created, nil
}

// UpdateClient updates an existing client and returns the stored row.
func (r *ClientRepository) UpdateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	query := `
        UPDATE clients SET
            name = $2,
            business_name = $3,
            phone_e164 = $4,
            whatsapp_opt_in = $5,
            status = $6,
            start_date = $7,
            end_date = $8,
            ticket_amount = $9,
            currency = $10,
            billing_frequency = $11,
            billing_day = $12,
            notes = $13,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + clientColumns
	updated, err := scanClient(r.db.QueryRow(ctx, query,
		c.ID,
		c.Name,
		c.BusinessName,
		c.PhoneE164,
		c.WhatsAppOptIn,
		c.Status,
		c.StartDate,
		c.EndDate,
		c.TicketAmount,
		c.Currency,
		c.BillingFrequency,
		c.BillingDay,
		c.Notes,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrClientNotFound
		}
		if isUniqueViolation(err, "clients_phone_e164_key") {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}
	return updated, nil
}

// DeleteClient removes a client. The payments foreign key restricts
// deletion while payments exist; that violation surfaces as
// ErrClientHasPayments.
func (r *ClientRepository) DeleteClient(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrClientHasPayments
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}
