package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type PreferencesRepository interface {
	// Upsert creates the row on first save and replaces it afterwards;
	// there is at most one preference set per user.
	Upsert(ctx context.Context, prefs *domain.MatchPreferences) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.MatchPreferences, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
