package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) CreateForPair(ctx context.Context, user1ID, user2ID uuid.UUID, hasIntro bool) (*domain.Conversation, bool, error) {
	user1ID, user2ID = domain.OrderUserPair(user1ID, user2ID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var conv domain.Conversation
	insert := `
		INSERT INTO conversations (user1_id, user2_id, has_intro_message)
		VALUES ($1, $2, $3)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING *
	`
	err = tx.GetContext(ctx, &conv, insert, user1ID, user2ID, hasIntro)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race to a concurrent insert; hand back the winner's row.
		existing := `SELECT * FROM conversations WHERE user1_id = $1 AND user2_id = $2`
		if err := tx.GetContext(ctx, &conv, existing, user1ID, user2ID); err != nil {
			return nil, false, err
		}
		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return &conv, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	participants := `
		INSERT INTO conversation_participants (conversation_id, user_id)
		VALUES ($1, $2), ($1, $3)
	`
	if _, err := tx.ExecContext(ctx, participants, conv.ID, user1ID, user2ID); err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &conv, true, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE id = $1`
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByUsers(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error) {
	user1ID, user2ID := domain.OrderUserPair(userA, userB)
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE user1_id = $1 AND user2_id = $2`
	if err := r.db.GetContext(ctx, &conv, query, user1ID, user2ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ClaimIntro(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE conversations
		SET has_intro_message = TRUE, updated_at = now()
		WHERE id = $1 AND has_intro_message = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *conversationRepository) ClearIntro(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE conversations SET has_intro_message = FALSE, updated_at = now() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

func (r *conversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE conversations SET updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	query := `
		SELECT * FROM conversations
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &convs, query, userID, limit, offset)
	return convs, err
}

func (r *conversationRepository) GetParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*domain.ConversationParticipant, error) {
	var participant domain.ConversationParticipant
	query := `SELECT * FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &participant, query, conversationID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotParticipant
		}
		return nil, err
	}
	return &participant, nil
}

func (r *conversationRepository) IncrementUnread(ctx context.Context, conversationID, userID uuid.UUID) error {
	query := `
		UPDATE conversation_participants SET unread_count = unread_count + 1
		WHERE conversation_id = $1 AND user_id = $2
	`
	_, err := r.db.ExecContext(ctx, query, conversationID, userID)
	return err
}

func (r *conversationRepository) ResetUnread(ctx context.Context, conversationID, userID uuid.UUID) error {
	query := `
		UPDATE conversation_participants SET unread_count = 0
		WHERE conversation_id = $1 AND user_id = $2
	`
	_, err := r.db.ExecContext(ctx, query, conversationID, userID)
	return err
}

func (r *conversationRepository) TotalUnread(ctx context.Context, userID uuid.UUID) (int, int, error) {
	var total, conversations int
	query := `
		SELECT coalesce(sum(unread_count), 0), count(*) FILTER (WHERE unread_count > 0)
		FROM conversation_participants
		WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&total, &conversations)
	return total, conversations, err
}
