package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type ConversationRepository interface {
	// CreateForPair inserts a conversation for the canonical user pair,
	// guarded by the unique pair index. When a concurrent create wins the
	// race the existing row is returned and created is false.
	CreateForPair(ctx context.Context, user1ID, user2ID uuid.UUID, hasIntro bool) (conv *domain.Conversation, created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// GetByUsers accepts the pair in any order and returns nil without
	// error when no conversation exists.
	GetByUsers(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error)
	// ClaimIntro atomically flips has_intro_message from false to true and
	// reports whether this call won the flip. A false return means the
	// one-shot intro allowance was already consumed.
	ClaimIntro(ctx context.Context, id uuid.UUID) (bool, error)
	ClearIntro(ctx context.Context, id uuid.UUID) error
	Touch(ctx context.Context, id uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Conversation, error)

	GetParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*domain.ConversationParticipant, error)
	IncrementUnread(ctx context.Context, conversationID, userID uuid.UUID) error
	ResetUnread(ctx context.Context, conversationID, userID uuid.UUID) error
	TotalUnread(ctx context.Context, userID uuid.UUID) (total int, conversations int, err error)
}
