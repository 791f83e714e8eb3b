package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

// ProfileSearch holds the filters applied when listing candidate profiles.
// Zero values mean "no constraint".
type ProfileSearch struct {
	ExcludeUserID uuid.UUID
	Gender        domain.Gender
	AgeMin        int
	AgeMax        int
	States        []string
	Religions     []string
	Educations    []string
	Country       string
	State         string
	City          string
	VerifiedOnly  bool
	Limit         int
	Offset        int
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Search(ctx context.Context, search ProfileSearch) ([]*domain.Profile, error)
	AdjustLikeCount(ctx context.Context, userID uuid.UUID, delta int) error
	SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
