package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationNewLike     NotificationType = "NEW_LIKE"
	NotificationMutualMatch NotificationType = "MUTUAL_MATCH"
	NotificationNewMessage  NotificationType = "NEW_MESSAGE"
	NotificationAccountBan  NotificationType = "ACCOUNT_BANNED"
	NotificationSystem      NotificationType = "SYSTEM"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Body      string           `json:"body" db:"body"`
	Data      json.RawMessage  `json:"data" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
