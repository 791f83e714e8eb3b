package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

// LikeStats aggregates a user's like counters.
type LikeStats struct {
	Sent     int `json:"sent"`
	Received int `json:"received"`
	Mutual   int `json:"mutual"`
}

type LikeRepository interface {
	// Create inserts the directed edge; the unique (liker, liked) index
	// is the source of truth against concurrent duplicates and surfaces
	// as domain.ErrLikeAlreadyExists.
	Create(ctx context.Context, like *domain.Like) error
	GetByUsers(ctx context.Context, likerID, likedUserID uuid.UUID) (*domain.Like, error)
	SetMutual(ctx context.Context, likerID, likedUserID uuid.UUID, mutual bool) error
	// HasMutualLike reports whether a mutual like exists in either direction.
	HasMutualLike(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	ListSent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error)
	ListReceived(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error)
	ListMutual(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error)
	Stats(ctx context.Context, userID uuid.UUID) (*LikeStats, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
