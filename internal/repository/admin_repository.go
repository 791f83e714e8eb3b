package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
