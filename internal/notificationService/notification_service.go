package notification

import (
	"context"
	"fmt"
	"strings"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/metrics"
	"auction-hub/internal/models"
	"auction-hub/internal/realtime"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// RecentLimit is how many notifications the bell dropdown shows.
const RecentLimit = 10

// Broadcaster pushes an event to every connection in a room
type Broadcaster interface {
	Emit(ctx context.Context, room string, ev realtime.Event) error
}

// NotificationService stores per-user notifications and pushes them live
type NotificationService struct {
	store repository.NotificationDB
	live  Broadcaster
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(store repository.NotificationDB, live Broadcaster) *NotificationService {
	return &NotificationService{store: store, live: live}
}

// Notify stores a notification for userID and pushes it to the user's room.
// The stored row is returned; a failed push is only logged.
func (s *NotificationService) Notify(ctx context.Context, userID int64, message, link string) (models.Notification, error) {
	if userID <= 0 || strings.TrimSpace(message) == "" {
		return models.Notification{}, fmt.Errorf("service: %w - notification needs a user and a message", biddingerrors.ErrMissingFields)
	}

	n := models.Notification{UserID: userID, Message: message, Link: link}
	if err := s.store.CreateNotification(ctx, &n); err != nil {
		return models.Notification{}, utils.ServiceError(fmt.Sprintf("create notification for user %d", userID), err)
	}
	stored, err := s.store.GetNotification(ctx, n.ID)
	if err != nil {
		return models.Notification{}, utils.ServiceError(fmt.Sprintf("reload notification %d", n.ID), err)
	}
	metrics.NotificationsTotal.Inc()

	ev := realtime.Event{Name: realtime.EventNewNotification, Data: stored}
	if err := s.live.Emit(ctx, realtime.UserRoom(userID), ev); err != nil {
		utils.Warn("notification push failed", map[string]any{
			"user_id":         userID,
			"notification_id": stored.ID,
			"error":           err.Error(),
		})
	}
	return stored, nil
}

// Summary returns the caller's unread count and latest notifications
func (s *NotificationService) Summary(ctx context.Context, caller models.Caller) (models.NotificationSummary, error) {
	if !caller.Authenticated() {
		return models.NotificationSummary{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	unread, err := s.store.CountUnread(ctx, caller.UserID)
	if err != nil {
		return models.NotificationSummary{}, utils.ServiceError("count unread notifications", err)
	}
	recent, err := s.store.ListRecentNotifications(ctx, caller.UserID, RecentLimit)
	if err != nil {
		return models.NotificationSummary{}, utils.ServiceError("list recent notifications", err)
	}
	return models.NotificationSummary{UnreadCount: unread, Notifications: recent}, nil
}

// MarkAllRead marks every notification of the caller as read
func (s *NotificationService) MarkAllRead(ctx context.Context, caller models.Caller) error {
	if !caller.Authenticated() {
		return fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	n, err := s.store.MarkAllRead(ctx, caller.UserID)
	if err != nil {
		return utils.ServiceError("mark notifications read", err)
	}
	utils.Debug("notifications marked read", map[string]any{"user_id": caller.UserID, "count": n})
	return nil
}
