package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

// Pusher delivers an event to a connected user in realtime. Delivery is
// best-effort: an offline user simply misses the push and reads the
// persisted notification later.
type Pusher interface {
	Push(userID uuid.UUID, event string, payload interface{})
}

// NopPusher satisfies Pusher without delivering anything.
type NopPusher struct{}

func (NopPusher) Push(uuid.UUID, string, interface{}) {}

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	pusher           Pusher
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, pusher Pusher) *NotificationUseCase {
	if pusher == nil {
		pusher = NopPusher{}
	}
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

// ListResponse is a page of notifications with counters.
type ListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
}

// Notify persists a notification and pushes it to the user's live
// connections. Push failures are invisible to the caller.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID uuid.UUID, kind domain.NotificationType, title, body string, data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode notification data: %w", err)
	}

	n := &domain.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
		Data:   raw,
	}
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	uc.pusher.Push(userID, "notification", n)
	return nil
}

// NotifyAsync runs Notify off the request path and logs any failure.
func (uc *NotificationUseCase) NotifyAsync(userID uuid.UUID, kind domain.NotificationType, title, body string, data map[string]interface{}) {
	go func() {
		if err := uc.Notify(context.Background(), userID, kind, title, body, data); err != nil {
			log.Error().Err(err).
				Str("user_id", userID.String()).
				Str("type", string(kind)).
				Msg("notification delivery failed")
		}
	}()
}

func (uc *NotificationUseCase) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*ListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, total, err := uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := uc.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return &ListResponse{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return uc.notificationRepo.MarkRead(ctx, id, userID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}
