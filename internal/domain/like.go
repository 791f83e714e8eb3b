package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like is a directed edge from liker to liked user. When both directions
// exist, both rows carry IsMutual=true; the like usecase keeps them in sync.
type Like struct {
	ID          uuid.UUID `json:"id" db:"id"`
	LikerID     uuid.UUID `json:"liker_id" db:"liker_id"`
	LikedUserID uuid.UUID `json:"liked_user_id" db:"liked_user_id"`
	IsMutual    bool      `json:"is_mutual" db:"is_mutual"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
