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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, first_name, last_name, date_of_birth, age, gender,
			about_me, country, state, city, religion, zodiac_sign,
			genotype, blood_group, body_type, height_cm,
			has_tattoos, has_piercings, education, work_status, drinking_status,
			profile_completeness
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.FirstName, profile.LastName, profile.DateOfBirth,
		profile.Age, profile.Gender, profile.AboutMe, profile.Country,
		profile.State, profile.City, profile.Religion, profile.ZodiacSign,
		profile.Genotype, profile.BloodGroup, profile.BodyType, profile.HeightCm,
		profile.HasTattoos, profile.HasPiercings, profile.Education,
		profile.WorkStatus, profile.DrinkingStatus, profile.Completeness,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrProfileExists
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, date_of_birth = $3, age = $4,
		    about_me = $5, country = $6, state = $7, city = $8, religion = $9,
		    zodiac_sign = $10, genotype = $11, blood_group = $12, body_type = $13,
		    height_cm = $14, has_tattoos = $15, has_piercings = $16,
		    education = $17, work_status = $18, drinking_status = $19,
		    profile_completeness = $20, is_active = $21,
		    updated_at = now()
		WHERE user_id = $22
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.FirstName, profile.LastName, profile.DateOfBirth, profile.Age,
		profile.AboutMe, profile.Country, profile.State, profile.City,
		profile.Religion, profile.ZodiacSign, profile.Genotype, profile.BloodGroup,
		profile.BodyType, profile.HeightCm, profile.HasTattoos, profile.HasPiercings,
		profile.Education, profile.WorkStatus, profile.DrinkingStatus,
		profile.Completeness, profile.IsActive, profile.UserID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) Search(ctx context.Context, search repository.ProfileSearch) ([]*domain.Profile, error) {
	query := `
		SELECT profiles.* FROM profiles
		JOIN users ON users.id = profiles.user_id
		WHERE profiles.is_active AND NOT profiles.is_banned
	`
	args := []interface{}{}
	argCount := 1

	add := func(clause string, value interface{}) {
		query += fmt.Sprintf(" AND "+clause, argCount)
		args = append(args, value)
		argCount++
	}

	if search.ExcludeUserID != uuid.Nil {
		add("profiles.user_id <> $%d", search.ExcludeUserID)
	}
	if search.Gender != "" {
		add("profiles.gender = $%d", search.Gender)
	}
	if search.AgeMin > 0 {
		add("profiles.age >= $%d", search.AgeMin)
	}
	if search.AgeMax > 0 {
		add("profiles.age <= $%d", search.AgeMax)
	}
	if len(search.States) > 0 {
		add("profiles.state = ANY($%d)", pq.Array(search.States))
	}
	if len(search.Religions) > 0 {
		add("profiles.religion = ANY($%d)", pq.Array(search.Religions))
	}
	if len(search.Educations) > 0 {
		add("profiles.education = ANY($%d)", pq.Array(search.Educations))
	}
	if search.Country != "" {
		add("profiles.country = $%d", search.Country)
	}
	if search.State != "" {
		add("profiles.state = $%d", search.State)
	}
	if search.City != "" {
		add("profiles.city = $%d", search.City)
	}
	if search.VerifiedOnly {
		query += " AND users.is_email_verified"
	}

	// Premium and recently active profiles surface first.
	query += fmt.Sprintf(`
		ORDER BY users.is_premium DESC, users.is_online DESC, profiles.updated_at DESC
		LIMIT $%d OFFSET $%d`, argCount, argCount+1)
	args = append(args, search.Limit, search.Offset)

	var profiles []*domain.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) AdjustLikeCount(ctx context.Context, userID uuid.UUID, delta int) error {
	query := `UPDATE profiles SET like_count = greatest(like_count + $1, 0) WHERE user_id = $2`
	_, err := r.db.ExecContext(ctx, query, delta, userID)
	return err
}

func (r *profileRepository) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	query := `UPDATE profiles SET is_banned = $1, updated_at = now() WHERE user_id = $2`
	result, err := r.db.ExecContext(ctx, query, banned, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
