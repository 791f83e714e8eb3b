package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Opposite returns the gender a user's feed is built from.
func (g Gender) Opposite() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

type Profile struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	DateOfBirth    time.Time `json:"date_of_birth" db:"date_of_birth"`
	Age            int       `json:"age" db:"age"`
	Gender         Gender    `json:"gender" db:"gender"`
	AboutMe        *string   `json:"about_me" db:"about_me"`
	Country        *string   `json:"country" db:"country"`
	State          *string   `json:"state" db:"state"`
	City           *string   `json:"city" db:"city"`
	Religion       *string   `json:"religion" db:"religion"`
	ZodiacSign     string    `json:"zodiac_sign" db:"zodiac_sign"`
	Genotype       *string   `json:"genotype" db:"genotype"`
	BloodGroup     *string   `json:"blood_group" db:"blood_group"`
	BodyType       *string   `json:"body_type" db:"body_type"`
	HeightCm       *int      `json:"height_cm" db:"height_cm"`
	HasTattoos     bool      `json:"has_tattoos" db:"has_tattoos"`
	HasPiercings   bool      `json:"has_piercings" db:"has_piercings"`
	Education      *string   `json:"education" db:"education"`
	WorkStatus     *string   `json:"work_status" db:"work_status"`
	DrinkingStatus *string   `json:"drinking_status" db:"drinking_status"`
	LikeCount      int       `json:"like_count" db:"like_count"`
	Completeness   int       `json:"profile_completeness" db:"profile_completeness"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsBanned       bool      `json:"is_banned" db:"is_banned"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Available reports whether the profile may be shown to other users.
func (p *Profile) Available() bool {
	return p.IsActive && !p.IsBanned
}

type Photo struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProfileID  uuid.UUID `json:"profile_id" db:"profile_id"`
	URL        string    `json:"url" db:"url"`
	StorageKey string    `json:"-" db:"storage_key"`
	IsPrimary  bool      `json:"is_primary" db:"is_primary"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AgeAt computes full years between the date of birth and now.
func (p *Profile) AgeAt(now time.Time) int {
	age := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}

// ZodiacFor derives the western zodiac sign from a date of birth.
func ZodiacFor(dob time.Time) string {
	// Each entry is the first day of the sign's period.
	ranges := []struct {
		sign       string
		month, day int
	}{
		{"Capricorn", 12, 22},
		{"Sagittarius", 11, 22},
		{"Scorpio", 10, 23},
		{"Libra", 9, 23},
		{"Virgo", 8, 23},
		{"Leo", 7, 23},
		{"Cancer", 6, 21},
		{"Gemini", 5, 21},
		{"Taurus", 4, 20},
		{"Aries", 3, 21},
		{"Pisces", 2, 19},
		{"Aquarius", 1, 20},
	}

	month, day := int(dob.Month()), dob.Day()
	for _, r := range ranges {
		if month > r.month || (month == r.month && day >= r.day) {
			return r.sign
		}
	}
	// January 1-19 wraps back to Capricorn.
	return "Capricorn"
}

// CompletenessPercent scores how many of the profile's descriptive fields
// are filled in, as an integer percentage.
func (p *Profile) CompletenessPercent() int {
	fields := []bool{
		p.FirstName != "",
		p.LastName != "",
		!p.DateOfBirth.IsZero(),
		p.Gender != "",
		p.AboutMe != nil && *p.AboutMe != "",
		p.City != nil && *p.City != "",
		p.State != nil && *p.State != "",
		p.Country != nil && *p.Country != "",
		p.HeightCm != nil,
		p.BodyType != nil && *p.BodyType != "",
		p.Education != nil && *p.Education != "",
		p.WorkStatus != nil && *p.WorkStatus != "",
		p.Religion != nil && *p.Religion != "",
	}

	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return int(float64(filled)/float64(len(fields))*100 + 0.5)
}
