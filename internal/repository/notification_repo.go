package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"evcharge/internal/models"
)

// ErrNotificationNotFound represents missing notification rows.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository handles persistence of notifications.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository returns repository instance.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, recipient_nic, title, message, type, priority, is_read, related_entity_id, metadata, created_at, read_at`

func scanNotification(row interface{ Scan(...interface{}) error }) (*models.Notification, error) {
	var n models.Notification
	var relatedID sql.NullString
	var metadata []byte
	var readAt sql.NullTime
	err := row.Scan(
		&n.ID,
		&n.RecipientNIC,
		&n.Title,
		&n.Message,
		&n.Type,
		&n.Priority,
		&n.IsRead,
		&relatedID,
		&metadata,
		&n.CreatedAt,
		&readAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	n.RelatedEntityID = relatedID.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
			return nil, err
		}
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return &n, nil
}

// Create inserts a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	var metadata []byte
	if len(n.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(n.Metadata)
		if err != nil {
			return err
		}
	}
	const query = `
		INSERT INTO notifications (id, recipient_nic, title, message, type, priority, is_read, related_entity_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NULLIF($7, ''), $8)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		n.ID,
		n.RecipientNIC,
		n.Title,
		n.Message,
		n.Type,
		n.Priority,
		n.RelatedEntityID,
		metadata,
	).Scan(&n.CreatedAt)
}

// GetByRecipient returns a recipient's feed, newest first.
func (r *NotificationRepository) GetByRecipient(ctx context.Context, nic string, includeRead bool, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_nic = $1`
	if !includeRead {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, nic, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

// ReminderExists reports whether a reminder for the booking was already
// sent to the recipient. Keeps the reminder worker idempotent across ticks.
func (r *NotificationRepository) ReminderExists(ctx context.Context, nic, bookingID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE recipient_nic = $1 AND related_entity_id = $2 AND type = $3
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, nic, bookingID, models.NotifyBookingReminder).Scan(&exists)
	return exists, err
}

// DeleteExpired removes read notifications created before the cutoff and
// returns how many rows went away.
func (r *NotificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	const query = `DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// GetByID fetches one notification.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1 LIMIT 1`
	return scanNotification(r.db.QueryRowContext(ctx, query, id))
}

// MarkRead flags the given notifications read for one recipient and
// returns how many rows changed.
func (r *NotificationRepository) MarkRead(ctx context.Context, nic string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const query = `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_nic = $1 AND is_read = FALSE AND id = ANY($2)
	`
	result, err := r.db.ExecContext(ctx, query, nic, ids)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
