package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

type preferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) repository.PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *domain.MatchPreferences) error {
	query := `
		INSERT INTO match_preferences (
			user_id, age_min, age_max, age_is_deal_breaker,
			location_states, location_is_deal_breaker,
			religion, religion_is_deal_breaker,
			zodiac, zodiac_is_deal_breaker,
			genotype, genotype_is_deal_breaker,
			blood_group, blood_group_is_deal_breaker,
			body_type, body_type_is_deal_breaker,
			tattoos_acceptable, tattoos_is_deal_breaker,
			piercings_acceptable, piercings_is_deal_breaker
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (user_id) DO UPDATE SET
			age_min = EXCLUDED.age_min,
			age_max = EXCLUDED.age_max,
			age_is_deal_breaker = EXCLUDED.age_is_deal_breaker,
			location_states = EXCLUDED.location_states,
			location_is_deal_breaker = EXCLUDED.location_is_deal_breaker,
			religion = EXCLUDED.religion,
			religion_is_deal_breaker = EXCLUDED.religion_is_deal_breaker,
			zodiac = EXCLUDED.zodiac,
			zodiac_is_deal_breaker = EXCLUDED.zodiac_is_deal_breaker,
			genotype = EXCLUDED.genotype,
			genotype_is_deal_breaker = EXCLUDED.genotype_is_deal_breaker,
			blood_group = EXCLUDED.blood_group,
			blood_group_is_deal_breaker = EXCLUDED.blood_group_is_deal_breaker,
			body_type = EXCLUDED.body_type,
			body_type_is_deal_breaker = EXCLUDED.body_type_is_deal_breaker,
			tattoos_acceptable = EXCLUDED.tattoos_acceptable,
			tattoos_is_deal_breaker = EXCLUDED.tattoos_is_deal_breaker,
			piercings_acceptable = EXCLUDED.piercings_acceptable,
			piercings_is_deal_breaker = EXCLUDED.piercings_is_deal_breaker,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		prefs.UserID, prefs.AgeMin, prefs.AgeMax, prefs.AgeIsDealBreaker,
		pq.Array(prefs.LocationStates), prefs.LocationIsDealBreaker,
		pq.Array(prefs.Religion), prefs.ReligionIsDealBreaker,
		pq.Array(prefs.Zodiac), prefs.ZodiacIsDealBreaker,
		pq.Array(prefs.Genotype), prefs.GenotypeIsDealBreaker,
		pq.Array(prefs.BloodGroup), prefs.BloodGroupIsDealBreaker,
		pq.Array(prefs.BodyType), prefs.BodyTypeIsDealBreaker,
		prefs.TattoosAcceptable, prefs.TattoosIsDealBreaker,
		prefs.PiercingsAcceptable, prefs.PiercingsIsDealBreaker,
	).Scan(&prefs.ID, &prefs.CreatedAt, &prefs.UpdatedAt)
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.MatchPreferences, error) {
	var prefs domain.MatchPreferences
	query := `
		SELECT id, user_id, age_min, age_max, age_is_deal_breaker,
		       location_states, location_is_deal_breaker,
		       religion, religion_is_deal_breaker,
		       zodiac, zodiac_is_deal_breaker,
		       genotype, genotype_is_deal_breaker,
		       blood_group, blood_group_is_deal_breaker,
		       body_type, body_type_is_deal_breaker,
		       tattoos_acceptable, tattoos_is_deal_breaker,
		       piercings_acceptable, piercings_is_deal_breaker,
		       created_at, updated_at
		FROM match_preferences WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID, &prefs.AgeMin, &prefs.AgeMax, &prefs.AgeIsDealBreaker,
		pq.Array(&prefs.LocationStates), &prefs.LocationIsDealBreaker,
		pq.Array(&prefs.Religion), &prefs.ReligionIsDealBreaker,
		pq.Array(&prefs.Zodiac), &prefs.ZodiacIsDealBreaker,
		pq.Array(&prefs.Genotype), &prefs.GenotypeIsDealBreaker,
		pq.Array(&prefs.BloodGroup), &prefs.BloodGroupIsDealBreaker,
		pq.Array(&prefs.BodyType), &prefs.BodyTypeIsDealBreaker,
		&prefs.TattoosAcceptable, &prefs.TattoosIsDealBreaker,
		&prefs.PiercingsAcceptable, &prefs.PiercingsIsDealBreaker,
		&prefs.CreatedAt, &prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM match_preferences WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPreferencesNotFound
	}
	return nil
}
