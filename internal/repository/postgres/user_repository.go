package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, phone_number, password_hash, is_email_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PhoneNumber, user.PasswordHash, user.IsEmailVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrEmailAlreadyTaken
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE lower(email) = lower($1)`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`
	return r.execExpectingRow(ctx, query, domain.ErrUserNotFound, passwordHash, id)
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET is_email_verified = TRUE, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, domain.ErrUserNotFound, id)
}

func (r *userRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	query := `UPDATE users SET is_online = $1, last_active = now(), updated_at = now() WHERE id = $2`
	return r.execExpectingRow(ctx, query, domain.ErrUserNotFound, online, id)
}

func (r *userRepository) List(ctx context.Context, filters repository.UserFilters) ([]*domain.User, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.Email != "" {
		where += fmt.Sprintf(" AND email ILIKE $%d", argCount)
		args = append(args, "%"+filters.Email+"%")
		argCount++
	}
	if filters.IsBanned != nil {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM profiles p WHERE p.user_id = users.id AND p.is_banned = $%d)", argCount)
		args = append(args, *filters.IsBanned)
		argCount++
	}
	if filters.IsActive != nil {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM profiles p WHERE p.user_id = users.id AND p.is_active = $%d)", argCount)
		args = append(args, *filters.IsActive)
		argCount++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM users`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM users` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filters.Limit, filters.Offset)

	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	return r.execExpectingRow(ctx, query, domain.ErrUserNotFound, id)
}

func (r *userRepository) execExpectingRow(ctx context.Context, query string, notFound error, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
