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

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	query := `
		INSERT INTO likes (liker_id, liked_user_id, is_mutual)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		like.LikerID, like.LikedUserID, like.IsMutual,
	).Scan(&like.ID, &like.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrLikeAlreadyExists
	}
	return err
}

func (r *likeRepository) GetByUsers(ctx context.Context, likerID, likedUserID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	query := `SELECT * FROM likes WHERE liker_id = $1 AND liked_user_id = $2`
	if err := r.db.GetContext(ctx, &like, query, likerID, likedUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) SetMutual(ctx context.Context, likerID, likedUserID uuid.UUID, mutual bool) error {
	query := `
		UPDATE likes SET is_mutual = $1
		WHERE (liker_id = $2 AND liked_user_id = $3)
		   OR (liker_id = $3 AND liked_user_id = $2)
	`
	_, err := r.db.ExecContext(ctx, query, mutual, likerID, likedUserID)
	return err
}

func (r *likeRepository) HasMutualLike(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM likes
			WHERE is_mutual
			  AND ((liker_id = $1 AND liked_user_id = $2)
			    OR (liker_id = $2 AND liked_user_id = $1))
		)
	`
	err := r.db.GetContext(ctx, &exists, query, userA, userB)
	return exists, err
}

func (r *likeRepository) ListSent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error) {
	var likes []*domain.Like
	query := `
		SELECT * FROM likes WHERE liker_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &likes, query, userID, limit, offset)
	return likes, err
}

func (r *likeRepository) ListReceived(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error) {
	var likes []*domain.Like
	query := `
		SELECT * FROM likes WHERE liked_user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &likes, query, userID, limit, offset)
	return likes, err
}

func (r *likeRepository) ListMutual(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error) {
	var likes []*domain.Like
	query := `
		SELECT * FROM likes WHERE liker_id = $1 AND is_mutual
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &likes, query, userID, limit, offset)
	return likes, err
}

func (r *likeRepository) Stats(ctx context.Context, userID uuid.UUID) (*repository.LikeStats, error) {
	var stats repository.LikeStats
	query := `
		SELECT
			count(*) FILTER (WHERE liker_id = $1)                    AS sent,
			count(*) FILTER (WHERE liked_user_id = $1)               AS received,
			count(*) FILTER (WHERE liker_id = $1 AND is_mutual)      AS mutual
		FROM likes
		WHERE liker_id = $1 OR liked_user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.Sent, &stats.Received, &stats.Mutual)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *likeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}
