package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestGenderOpposite(t *testing.T) {
	assert.Equal(t, GenderFemale, GenderMale.Opposite())
	assert.Equal(t, GenderMale, GenderFemale.Opposite())
}

func TestProfileAvailable(t *testing.T) {
	p := &Profile{IsActive: true}
	assert.True(t, p.Available())

	p.IsBanned = true
	assert.False(t, p.Available())

	p = &Profile{IsActive: false}
	assert.False(t, p.Available())
}

func TestAgeAt(t *testing.T) {
	p := &Profile{DateOfBirth: date(1995, 6, 15)}

	assert.Equal(t, 30, p.AgeAt(date(2025, 6, 15)))
	assert.Equal(t, 29, p.AgeAt(date(2025, 6, 14)))
	assert.Equal(t, 30, p.AgeAt(date(2025, 12, 31)))
	assert.Equal(t, 29, p.AgeAt(date(2025, 1, 1)))
}

func TestZodiacFor(t *testing.T) {
	cases := []struct {
		dob  time.Time
		sign string
	}{
		{date(1990, 3, 21), "Aries"},
		{date(1990, 4, 19), "Aries"},
		{date(1990, 4, 20), "Taurus"},
		{date(1990, 7, 23), "Leo"},
		{date(1990, 8, 22), "Leo"},
		{date(1990, 8, 23), "Virgo"},
		{date(1990, 12, 21), "Sagittarius"},
		{date(1990, 12, 22), "Capricorn"},
		{date(1990, 12, 31), "Capricorn"},
		// January wraps back to Capricorn before Aquarius starts.
		{date(1990, 1, 1), "Capricorn"},
		{date(1990, 1, 19), "Capricorn"},
		{date(1990, 1, 20), "Aquarius"},
		{date(1990, 2, 18), "Aquarius"},
		{date(1990, 2, 19), "Pisces"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.sign, ZodiacFor(tc.dob), "dob %s", tc.dob.Format("2006-01-02"))
	}
}

func TestCompletenessPercent(t *testing.T) {
	empty := &Profile{}
	assert.Equal(t, 0, empty.CompletenessPercent())

	about := "hello"
	city, state, country := "Lagos", "Lagos", "Nigeria"
	height := 180
	body, edu, work, religion := "athletic", "bachelors", "employed", "Christianity"
	full := &Profile{
		FirstName:   "Ada",
		LastName:    "Obi",
		DateOfBirth: date(1995, 6, 15),
		Gender:      GenderFemale,
		AboutMe:     &about,
		City:        &city,
		State:       &state,
		Country:     &country,
		HeightCm:    &height,
		BodyType:    &body,
		Education:   &edu,
		WorkStatus:  &work,
		Religion:    &religion,
	}
	assert.Equal(t, 100, full.CompletenessPercent())

	// 4 of 13 required basics filled, rounded to the nearest percent.
	basic := &Profile{
		FirstName:   "Ada",
		LastName:    "Obi",
		DateOfBirth: date(1995, 6, 15),
		Gender:      GenderFemale,
	}
	assert.Equal(t, 31, basic.CompletenessPercent())

	// Empty strings behind pointers do not count.
	blank := ""
	basic.AboutMe = &blank
	assert.Equal(t, 31, basic.CompletenessPercent())
}
