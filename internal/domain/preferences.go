package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchPreferences stores a user's partner criteria. Every category has a
// companion deal-breaker flag; an empty acceptable set means the category
// is unconstrained and never contributes to or breaks a match.
type MatchPreferences struct {
	ID                      uuid.UUID `json:"id" db:"id"`
	UserID                  uuid.UUID `json:"user_id" db:"user_id"`
	AgeMin                  int       `json:"age_min" db:"age_min"`
	AgeMax                  int       `json:"age_max" db:"age_max"`
	AgeIsDealBreaker        bool      `json:"age_is_deal_breaker" db:"age_is_deal_breaker"`
	LocationStates          []string  `json:"location_states" db:"location_states"`
	LocationIsDealBreaker   bool      `json:"location_is_deal_breaker" db:"location_is_deal_breaker"`
	Religion                []string  `json:"religion" db:"religion"`
	ReligionIsDealBreaker   bool      `json:"religion_is_deal_breaker" db:"religion_is_deal_breaker"`
	Zodiac                  []string  `json:"zodiac" db:"zodiac"`
	ZodiacIsDealBreaker     bool      `json:"zodiac_is_deal_breaker" db:"zodiac_is_deal_breaker"`
	Genotype                []string  `json:"genotype" db:"genotype"`
	GenotypeIsDealBreaker   bool      `json:"genotype_is_deal_breaker" db:"genotype_is_deal_breaker"`
	BloodGroup              []string  `json:"blood_group" db:"blood_group"`
	BloodGroupIsDealBreaker bool      `json:"blood_group_is_deal_breaker" db:"blood_group_is_deal_breaker"`
	BodyType                []string  `json:"body_type" db:"body_type"`
	BodyTypeIsDealBreaker   bool      `json:"body_type_is_deal_breaker" db:"body_type_is_deal_breaker"`
	TattoosAcceptable       *bool     `json:"tattoos_acceptable" db:"tattoos_acceptable"`
	TattoosIsDealBreaker    bool      `json:"tattoos_is_deal_breaker" db:"tattoos_is_deal_breaker"`
	PiercingsAcceptable     *bool     `json:"piercings_acceptable" db:"piercings_acceptable"`
	PiercingsIsDealBreaker  bool      `json:"piercings_is_deal_breaker" db:"piercings_is_deal_breaker"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}
