package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) error
	Get(ctx context.Context, blockerID, blockedUserID uuid.UUID) (*domain.Block, error)
	// Exists reports whether either user has blocked the other.
	Exists(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	Delete(ctx context.Context, blockerID, blockedUserID uuid.UUID) error
}
