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

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *domain.Block) error {
	query := `
		INSERT INTO blocks (blocker_id, blocked_user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		block.BlockerID, block.BlockedUserID,
	).Scan(&block.ID, &block.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyBlocked
	}
	return err
}

func (r *blockRepository) Get(ctx context.Context, blockerID, blockedUserID uuid.UUID) (*domain.Block, error) {
	var block domain.Block
	query := `SELECT * FROM blocks WHERE blocker_id = $1 AND blocked_user_id = $2`
	if err := r.db.GetContext(ctx, &block, query, blockerID, blockedUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotBlocked
		}
		return nil, err
	}
	return &block, nil
}

func (r *blockRepository) Exists(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_user_id = $2)
			   OR (blocker_id = $2 AND blocked_user_id = $1)
		)
	`
	err := r.db.GetContext(ctx, &exists, query, userA, userB)
	return exists, err
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedUserID uuid.UUID) error {
	query := `DELETE FROM blocks WHERE blocker_id = $1 AND blocked_user_id = $2`
	result, err := r.db.ExecContext(ctx, query, blockerID, blockedUserID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotBlocked
	}
	return nil
}
