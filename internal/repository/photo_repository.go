package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Photo, error)
	SetPrimary(ctx context.Context, profileID, photoID uuid.UUID) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	ListUnverified(ctx context.Context, limit, offset int) ([]*domain.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
