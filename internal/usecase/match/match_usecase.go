package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

type MatchUseCase struct {
	profileRepo repository.ProfileRepository
	prefsRepo   repository.PreferencesRepository
	photoRepo   repository.PhotoRepository
}

func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	prefsRepo repository.PreferencesRepository,
	photoRepo repository.PhotoRepository,
) *MatchUseCase {
	return &MatchUseCase{
		profileRepo: profileRepo,
		prefsRepo:   prefsRepo,
		photoRepo:   photoRepo,
	}
}

// ScoredProfile is a candidate profile together with its compatibility
// against the requesting user.
type ScoredProfile struct {
	Profile       *domain.Profile     `json:"profile"`
	PrimaryPhoto  *domain.Photo       `json:"primary_photo,omitempty"`
	Compatibility CompatibilityResult `json:"compatibility"`
}

// PreferencesRequest carries a full replacement of the user's match criteria.
type PreferencesRequest struct {
	AgeMin                  int      `json:"age_min" binding:"required,gte=18"`
	AgeMax                  int      `json:"age_max" binding:"required,gte=18"`
	AgeIsDealBreaker        bool     `json:"age_is_deal_breaker"`
	LocationStates          []string `json:"location_states"`
	LocationIsDealBreaker   bool     `json:"location_is_deal_breaker"`
	Religion                []string `json:"religion"`
	ReligionIsDealBreaker   bool     `json:"religion_is_deal_breaker"`
	Zodiac                  []string `json:"zodiac"`
	ZodiacIsDealBreaker     bool     `json:"zodiac_is_deal_breaker"`
	Genotype                []string `json:"genotype"`
	GenotypeIsDealBreaker   bool     `json:"genotype_is_deal_breaker"`
	BloodGroup              []string `json:"blood_group"`
	BloodGroupIsDealBreaker bool     `json:"blood_group_is_deal_breaker"`
	BodyType                []string `json:"body_type"`
	BodyTypeIsDealBreaker   bool     `json:"body_type_is_deal_breaker"`
	TattoosAcceptable       *bool    `json:"tattoos_acceptable"`
	TattoosIsDealBreaker    bool     `json:"tattoos_is_deal_breaker"`
	PiercingsAcceptable     *bool    `json:"piercings_acceptable"`
	PiercingsIsDealBreaker  bool     `json:"piercings_is_deal_breaker"`
}

// FilterRequest narrows the candidate feed with ad-hoc criteria instead of
// the saved preferences.
type FilterRequest struct {
	Gender    domain.Gender `json:"gender"`
	AgeMin    int           `json:"age_min"`
	AgeMax    int           `json:"age_max"`
	Country   string        `json:"country"`
	State     string        `json:"state"`
	City      string        `json:"city"`
	Religion  []string      `json:"religion"`
	Education []string      `json:"education"`
	Limit     int           `json:"limit"`
	Offset    int           `json:"offset"`
}

// Score computes the compatibility of targetUserID against userID's saved
// preferences.
func (uc *MatchUseCase) Score(ctx context.Context, userID, targetUserID uuid.UUID) (*CompatibilityResult, error) {
	viewer, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	candidate, err := uc.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	prefs, err := uc.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := Compatibility(viewer, prefs, candidate)
	return &result, nil
}

// GetMatches builds the scored candidate feed for userID: opposite gender,
// available verified profiles narrowed by the saved preferences, scored,
// deal-breakers dropped and sorted by score.
func (uc *MatchUseCase) GetMatches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ScoredProfile, error) {
	viewer, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs, err := uc.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	search := repository.ProfileSearch{
		ExcludeUserID: userID,
		Gender:        viewer.Gender.Opposite(),
		VerifiedOnly:  true,
		Limit:         normalizeLimit(limit),
		Offset:        offset,
	}
	if prefs != nil {
		search.AgeMin = prefs.AgeMin
		search.AgeMax = prefs.AgeMax
		search.States = prefs.LocationStates
		search.Religions = prefs.Religion
	}

	candidates, err := uc.profileRepo.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	return uc.scoreAndRank(ctx, viewer, prefs, candidates)
}

// FilterMatches runs an ad-hoc candidate search. Saved preferences still
// drive the scoring, but not the filtering.
func (uc *MatchUseCase) FilterMatches(ctx context.Context, userID uuid.UUID, req *FilterRequest) ([]*ScoredProfile, error) {
	viewer, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	gender := req.Gender
	if gender == "" {
		gender = viewer.Gender.Opposite()
	}

	search := repository.ProfileSearch{
		ExcludeUserID: userID,
		Gender:        gender,
		AgeMin:        req.AgeMin,
		AgeMax:        req.AgeMax,
		Country:       req.Country,
		State:         req.State,
		City:          req.City,
		Religions:     req.Religion,
		Educations:    req.Education,
		Limit:         normalizeLimit(req.Limit),
		Offset:        req.Offset,
	}

	candidates, err := uc.profileRepo.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	prefs, err := uc.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	return uc.scoreAndRank(ctx, viewer, prefs, candidates)
}

// SavePreferences replaces the user's match criteria.
func (uc *MatchUseCase) SavePreferences(ctx context.Context, userID uuid.UUID, req *PreferencesRequest) (*domain.MatchPreferences, error) {
	if req.AgeMin > req.AgeMax {
		return nil, domain.ErrInvalidAgeRange
	}

	prefs := &domain.MatchPreferences{
		UserID:                  userID,
		AgeMin:                  req.AgeMin,
		AgeMax:                  req.AgeMax,
		AgeIsDealBreaker:        req.AgeIsDealBreaker,
		LocationStates:          req.LocationStates,
		LocationIsDealBreaker:   req.LocationIsDealBreaker,
		Religion:                req.Religion,
		ReligionIsDealBreaker:   req.ReligionIsDealBreaker,
		Zodiac:                  req.Zodiac,
		ZodiacIsDealBreaker:     req.ZodiacIsDealBreaker,
		Genotype:                req.Genotype,
		GenotypeIsDealBreaker:   req.GenotypeIsDealBreaker,
		BloodGroup:              req.BloodGroup,
		BloodGroupIsDealBreaker: req.BloodGroupIsDealBreaker,
		BodyType:                req.BodyType,
		BodyTypeIsDealBreaker:   req.BodyTypeIsDealBreaker,
		TattoosAcceptable:       req.TattoosAcceptable,
		TattoosIsDealBreaker:    req.TattoosIsDealBreaker,
		PiercingsAcceptable:     req.PiercingsAcceptable,
		PiercingsIsDealBreaker:  req.PiercingsIsDealBreaker,
	}

	if err := uc.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return prefs, nil
}

func (uc *MatchUseCase) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.MatchPreferences, error) {
	return uc.prefsRepo.GetByUserID(ctx, userID)
}

func (uc *MatchUseCase) DeletePreferences(ctx context.Context, userID uuid.UUID) error {
	return uc.prefsRepo.Delete(ctx, userID)
}

func (uc *MatchUseCase) loadPreferences(ctx context.Context, userID uuid.UUID) (*domain.MatchPreferences, error) {
	prefs, err := uc.prefsRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (uc *MatchUseCase) scoreAndRank(ctx context.Context, viewer *domain.Profile, prefs *domain.MatchPreferences, candidates []*domain.Profile) ([]*ScoredProfile, error) {
	scored := make([]*ScoredProfile, 0, len(candidates))
	for _, candidate := range candidates {
		result := Compatibility(viewer, prefs, candidate)
		if len(result.DealBreakers) > 0 {
			continue
		}
		scored = append(scored, &ScoredProfile{
			Profile:       candidate,
			PrimaryPhoto:  uc.primaryPhoto(ctx, candidate.ID),
			Compatibility: result,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Compatibility.Score > scored[j].Compatibility.Score
	})
	return scored, nil
}

// primaryPhoto is best-effort; a feed entry without a photo is still served.
func (uc *MatchUseCase) primaryPhoto(ctx context.Context, profileID uuid.UUID) *domain.Photo {
	photos, err := uc.photoRepo.ListByProfile(ctx, profileID)
	if err != nil || len(photos) == 0 {
		return nil
	}
	for _, photo := range photos {
		if photo.IsPrimary && photo.IsVerified {
			return photo
		}
	}
	return photos[0]
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
