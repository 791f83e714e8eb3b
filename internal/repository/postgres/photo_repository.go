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

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (profile_id, url, storage_key, is_primary, is_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		photo.ProfileID, photo.URL, photo.StorageKey, photo.IsPrimary, photo.IsVerified,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT * FROM photos WHERE id = $1`
	if err := r.db.GetContext(ctx, &photo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	query := `SELECT * FROM photos WHERE profile_id = $1 ORDER BY is_primary DESC, created_at`
	err := r.db.SelectContext(ctx, &photos, query, profileID)
	return photos, err
}

func (r *photoRepository) SetPrimary(ctx context.Context, profileID, photoID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE photos SET is_primary = FALSE WHERE profile_id = $1`, profileID); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE photos SET is_primary = TRUE WHERE id = $1 AND profile_id = $2`, photoID, profileID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return tx.Commit()
}

func (r *photoRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE photos SET is_verified = $1 WHERE id = $2`, verified, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *photoRepository) ListUnverified(ctx context.Context, limit, offset int) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	query := `
		SELECT * FROM photos
		WHERE NOT is_verified
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &photos, query, limit, offset)
	return photos, err
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}
