/**
 * @description
 * Data access layer for the WhatsApp notifications log. Rows are
 * append-only: attempts are inserted and listed, never updated.
 */
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferchoitu/led1-billing/internal/domain"
)

const notificationColumns = `
    id, client_id, sent_at, status, provider_message_id, message_body, error_message, created_at
`

// NotificationRepository handles database operations for the
// notifications log.
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func scanNotification(row pgx.Row) (*domain.NotificationLog, error) {
	var n domain.NotificationLog
	err := row.Scan(
		&n.ID,
		&n.ClientID,
		&n.SentAt,
		&n.Status,
		&n.ProviderMessageID,
		&n.MessageBody,
		&n.ErrorMessage,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// InsertLog appends a reminder attempt and returns the stored row.
func (r *NotificationRepository) InsertLog(ctx context.Context, n *domain.NotificationLog) (*domain.NotificationLog, error) {
	query := `
        INSERT INTO notifications_log (client_id, sent_at, status, provider_message_id, message_body, error_message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + notificationColumns
	created, err := scanNotification(r.db.QueryRow(ctx, query,
		n.ClientID,
		n.SentAt,
		n.Status,
		n.ProviderMessageID,
		n.MessageBody,
		n.ErrorMessage,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return created, nil
}

// ListRecentLogs returns the latest reminder attempts, newest first.
func (r *NotificationRepository) ListRecentLogs(ctx context.Context, limit int) ([]domain.NotificationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications_log ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.NotificationLog{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *n)
	}
	return logs, rows.Err()
}
