package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

// UserFilters narrows admin user listings.
type UserFilters struct {
	Email    string
	IsBanned *bool
	IsActive *bool
	Limit    int
	Offset   int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	SetOnline(ctx context.Context, id uuid.UUID, online bool) error
	List(ctx context.Context, filters UserFilters) ([]*domain.User, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
