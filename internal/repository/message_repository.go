package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	// ListByConversation returns messages in chronological order.
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*domain.Message, error)
	// MarkConversationRead stamps every unread message addressed to userID.
	MarkConversationRead(ctx context.Context, conversationID, userID uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*domain.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
