package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	model "auction-hub/internal/models"
)

var errNotificationNotFound = errors.New("notification not found")

func scanNotification(row rowScanner) (model.Notification, error) {
	var (
		n         model.Notification
		createdAt int64
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.Link, &n.IsRead, &createdAt); err != nil {
		return model.Notification{}, err
	}
	n.CreatedAt = fromNanos(createdAt)
	return n, nil
}

// CreateNotification inserts an unread notification and sets its ID
func (r *SQLiteRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, message, link, is_read, created_at) VALUES (?, ?, ?, 0, ?)`,
		n.UserID, n.Message, n.Link, toNanos(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("create notification for user %d: %w", n.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create notification for user %d: %w", n.UserID, err)
	}
	n.ID = id
	n.IsRead = false
	return nil
}

// GetNotification returns the notification with id
func (r *SQLiteRepo) GetNotification(ctx context.Context, id int64) (model.Notification, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, message, link, is_read, created_at FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Notification{}, fmt.Errorf("get notification %d: %w", id, errNotificationNotFound)
	}
	if err != nil {
		return model.Notification{}, fmt.Errorf("get notification %d: %w", id, err)
	}
	return n, nil
}

// CountUnread returns how many unread notifications a user has
func (r *SQLiteRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread for user %d: %w", userID, err)
	}
	return count, nil
}

// ListRecentNotifications returns the user's latest notifications, newest first
func (r *SQLiteRepo) ListRecentNotifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, message, link, is_read, created_at FROM notifications
         WHERE user_id = ?
         ORDER BY created_at DESC, id DESC
         LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("list notifications for user %d: %w", userID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkAllRead marks every unread notification of the user as read and returns how many changed
func (r *SQLiteRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read for user %d: %w", userID, err)
	}
	return n, nil
}
