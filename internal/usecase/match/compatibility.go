package match

import (
	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

// Category weights. Order matters: the first violated deal-breaker
// short-circuits the whole evaluation.
const (
	weightAge        = 15
	weightLocation   = 10
	weightReligion   = 15
	weightZodiac     = 10
	weightGenotype   = 10
	weightBloodGroup = 5
	weightBodyType   = 10
	weightTattoos    = 5
	weightPiercings  = 5

	bonusEducation = 10
	bonusLifestyle = 5

	maxScore = 100

	// Score reported when the viewer never set any preferences.
	defaultScore = 50
)

// CompatibilityResult is the outcome of scoring one candidate against a
// viewer's preferences.
type CompatibilityResult struct {
	Score        int      `json:"score"`
	Matches      []string `json:"matches"`
	DealBreakers []string `json:"deal_breakers"`
}

// Compatibility scores candidate against the viewer's preferences.
// prefs may be nil, meaning the viewer never saved preferences; the
// candidate then gets the neutral default score.
//
// Categories are evaluated in a fixed order. A matching category adds
// its weight; a mismatching category marked as a deal-breaker stops the
// evaluation immediately with a zero score, the matches collected so far
// and that single category in DealBreakers. A mismatch that is not a
// deal-breaker simply earns no points. Categories with an empty
// acceptable set are skipped entirely.
func Compatibility(viewer *domain.Profile, prefs *domain.MatchPreferences, candidate *domain.Profile) CompatibilityResult {
	if prefs == nil {
		return CompatibilityResult{Score: defaultScore, Matches: []string{}, DealBreakers: []string{}}
	}

	result := CompatibilityResult{Matches: []string{}, DealBreakers: []string{}}
	score := 0

	broke := func(category string) CompatibilityResult {
		result.Score = 0
		result.DealBreakers = append(result.DealBreakers, category)
		return result
	}

	// Age
	if candidate.Age >= prefs.AgeMin && candidate.Age <= prefs.AgeMax {
		score += weightAge
		result.Matches = append(result.Matches, "age")
	} else if prefs.AgeIsDealBreaker {
		return broke("age")
	}

	// Location
	if len(prefs.LocationStates) > 0 {
		if candidate.State != nil && contains(prefs.LocationStates, *candidate.State) {
			score += weightLocation
			result.Matches = append(result.Matches, "location")
		} else if prefs.LocationIsDealBreaker {
			return broke("location")
		}
	}

	// Religion
	if len(prefs.Religion) > 0 {
		if candidate.Religion != nil && contains(prefs.Religion, *candidate.Religion) {
			score += weightReligion
			result.Matches = append(result.Matches, "religion")
		} else if prefs.ReligionIsDealBreaker {
			return broke("religion")
		}
	}

	// Zodiac
	if len(prefs.Zodiac) > 0 {
		if contains(prefs.Zodiac, candidate.ZodiacSign) {
			score += weightZodiac
			result.Matches = append(result.Matches, "zodiac")
		} else if prefs.ZodiacIsDealBreaker {
			return broke("zodiac")
		}
	}

	// Genotype
	if len(prefs.Genotype) > 0 {
		if candidate.Genotype != nil && contains(prefs.Genotype, *candidate.Genotype) {
			score += weightGenotype
			result.Matches = append(result.Matches, "genotype")
		} else if prefs.GenotypeIsDealBreaker {
			return broke("genotype")
		}
	}

	// Blood group
	if len(prefs.BloodGroup) > 0 {
		if candidate.BloodGroup != nil && contains(prefs.BloodGroup, *candidate.BloodGroup) {
			score += weightBloodGroup
			result.Matches = append(result.Matches, "bloodGroup")
		} else if prefs.BloodGroupIsDealBreaker {
			return broke("bloodGroup")
		}
	}

	// Body type
	if len(prefs.BodyType) > 0 {
		if candidate.BodyType != nil && contains(prefs.BodyType, *candidate.BodyType) {
			score += weightBodyType
			result.Matches = append(result.Matches, "bodyType")
		} else if prefs.BodyTypeIsDealBreaker {
			return broke("bodyType")
		}
	}

	// Tattoos
	if prefs.TattoosAcceptable != nil {
		if *prefs.TattoosAcceptable == candidate.HasTattoos {
			score += weightTattoos
			result.Matches = append(result.Matches, "tattoos")
		} else if prefs.TattoosIsDealBreaker {
			return broke("tattoos")
		}
	}

	// Piercings
	if prefs.PiercingsAcceptable != nil {
		if *prefs.PiercingsAcceptable == candidate.HasPiercings {
			score += weightPiercings
			result.Matches = append(result.Matches, "piercings")
		} else if prefs.PiercingsIsDealBreaker {
			return broke("piercings")
		}
	}

	// Same education level earns bonus points.
	if viewer.Education != nil && candidate.Education != nil && *viewer.Education == *candidate.Education {
		score += bonusEducation
		result.Matches = append(result.Matches, "education")
	}

	// Matching drinking habits count as a lifestyle bonus.
	if viewer.DrinkingStatus != nil && candidate.DrinkingStatus != nil && *viewer.DrinkingStatus == *candidate.DrinkingStatus {
		score += bonusLifestyle
		result.Matches = append(result.Matches, "lifestyle")
	}

	if score > maxScore {
		score = maxScore
	}
	result.Score = score
	return result
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
