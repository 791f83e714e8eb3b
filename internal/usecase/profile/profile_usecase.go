package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

const maxPhotosPerProfile = 6

// BlobStorage stores photo binaries. Backed by S3 in production.
type BlobStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, key string) error
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	photoRepo   repository.PhotoRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	storage     BlobStorage
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	photoRepo repository.PhotoRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	storage BlobStorage,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		photoRepo:   photoRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		storage:     storage,
	}
}

// CreateProfileRequest carries the initial profile fields. Age and zodiac
// sign are derived from the date of birth, never taken from the client.
type CreateProfileRequest struct {
	FirstName      string        `json:"first_name" binding:"required,max=50"`
	LastName       string        `json:"last_name" binding:"required,max=50"`
	DateOfBirth    time.Time     `json:"date_of_birth" binding:"required"`
	Gender         domain.Gender `json:"gender" binding:"required,oneof=MALE FEMALE"`
	AboutMe        *string       `json:"about_me" binding:"omitempty,max=500"`
	Country        *string       `json:"country"`
	State          *string       `json:"state"`
	City           *string       `json:"city"`
	Religion       *string       `json:"religion"`
	Genotype       *string       `json:"genotype"`
	BloodGroup     *string       `json:"blood_group"`
	BodyType       *string       `json:"body_type"`
	HeightCm       *int          `json:"height_cm" binding:"omitempty,gte=100,lte=250"`
	HasTattoos     bool          `json:"has_tattoos"`
	HasPiercings   bool          `json:"has_piercings"`
	Education      *string       `json:"education"`
	WorkStatus     *string       `json:"work_status"`
	DrinkingStatus *string       `json:"drinking_status"`
}

// UpdateProfileRequest updates mutable profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,max=50"`
	LastName       *string `json:"last_name" binding:"omitempty,max=50"`
	AboutMe        *string `json:"about_me" binding:"omitempty,max=500"`
	Country        *string `json:"country"`
	State          *string `json:"state"`
	City           *string `json:"city"`
	Religion       *string `json:"religion"`
	Genotype       *string `json:"genotype"`
	BloodGroup     *string `json:"blood_group"`
	BodyType       *string `json:"body_type"`
	HeightCm       *int    `json:"height_cm" binding:"omitempty,gte=100,lte=250"`
	HasTattoos     *bool   `json:"has_tattoos"`
	HasPiercings   *bool   `json:"has_piercings"`
	Education      *string `json:"education"`
	WorkStatus     *string `json:"work_status"`
	DrinkingStatus *string `json:"drinking_status"`
	IsActive       *bool   `json:"is_active"`
}

// ProfileResponse bundles a profile with its photos.
type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
	Photos  []*domain.Photo `json:"photos"`
}

// StatsResponse summarizes a profile's reach.
type StatsResponse struct {
	LikesSent     int `json:"likes_sent"`
	LikesReceived int `json:"likes_received"`
	Matches       int `json:"matches"`
	Completeness  int `json:"profile_completeness"`
	PhotoCount    int `json:"photo_count"`
}

const minAge = 18

// Create builds the user's profile.
func (uc *ProfileUseCase) Create(ctx context.Context, userID uuid.UUID, req *CreateProfileRequest) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:         userID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		AboutMe:        req.AboutMe,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		Religion:       req.Religion,
		Genotype:       req.Genotype,
		BloodGroup:     req.BloodGroup,
		BodyType:       req.BodyType,
		HeightCm:       req.HeightCm,
		HasTattoos:     req.HasTattoos,
		HasPiercings:   req.HasPiercings,
		Education:      req.Education,
		WorkStatus:     req.WorkStatus,
		DrinkingStatus: req.DrinkingStatus,
		IsActive:       true,
	}

	profile.Age = profile.AgeAt(time.Now())
	if profile.Age < minAge {
		return nil, domain.ErrUnderage
	}
	profile.ZodiacSign = domain.ZodiacFor(req.DateOfBirth)
	profile.Completeness = profile.CompletenessPercent()

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetOwn returns the caller's profile regardless of its visibility state.
func (uc *ProfileUseCase) GetOwn(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.withPhotos(ctx, profile), nil
}

// GetByUserID returns another user's profile. Deactivated and banned
// profiles are hidden.
func (uc *ProfileUseCase) GetByUserID(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.Available() {
		return nil, domain.ErrProfileUnavailable
	}
	return uc.withPhotos(ctx, profile), nil
}

// Update applies the provided fields, recomputing completeness.
func (uc *ProfileUseCase) Update(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.AboutMe != nil {
		profile.AboutMe = req.AboutMe
	}
	if req.Country != nil {
		profile.Country = req.Country
	}
	if req.State != nil {
		profile.State = req.State
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.Religion != nil {
		profile.Religion = req.Religion
	}
	if req.Genotype != nil {
		profile.Genotype = req.Genotype
	}
	if req.BloodGroup != nil {
		profile.BloodGroup = req.BloodGroup
	}
	if req.BodyType != nil {
		profile.BodyType = req.BodyType
	}
	if req.HeightCm != nil {
		profile.HeightCm = req.HeightCm
	}
	if req.HasTattoos != nil {
		profile.HasTattoos = *req.HasTattoos
	}
	if req.HasPiercings != nil {
		profile.HasPiercings = *req.HasPiercings
	}
	if req.Education != nil {
		profile.Education = req.Education
	}
	if req.WorkStatus != nil {
		profile.WorkStatus = req.WorkStatus
	}
	if req.DrinkingStatus != nil {
		profile.DrinkingStatus = req.DrinkingStatus
	}
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}

	profile.Age = profile.AgeAt(time.Now())
	profile.Completeness = profile.CompletenessPercent()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadPhoto stores the binary and records the photo row. The first
// photo of a profile becomes primary automatically.
func (uc *ProfileUseCase) UploadPhoto(ctx context.Context, userID uuid.UUID, filename, contentType string, body io.Reader) (*domain.Photo, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photos, err := uc.photoRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	if len(photos) >= maxPhotosPerProfile {
		return nil, domain.ErrPhotoLimitReached
	}

	key := fmt.Sprintf("photos/%s/%s%s", profile.ID, uuid.NewString(), path.Ext(filename))
	url, err := uc.storage.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	photo := &domain.Photo{
		ProfileID:  profile.ID,
		URL:        url,
		StorageKey: key,
		IsPrimary:  len(photos) == 0,
	}
	if err := uc.photoRepo.Create(ctx, photo); err != nil {
		if delErr := uc.storage.Delete(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("failed to delete orphaned photo blob")
		}
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}
	return photo, nil
}

// DeletePhoto removes a photo the caller owns, blob included.
func (uc *ProfileUseCase) DeletePhoto(ctx context.Context, userID, photoID uuid.UUID) error {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	photo, err := uc.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.ProfileID != profile.ID {
		return domain.ErrForbidden
	}

	if err := uc.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, photo.StorageKey); err != nil {
		log.Error().Err(err).Str("key", photo.StorageKey).Msg("failed to delete photo blob")
	}
	return nil
}

// SetPrimaryPhoto makes one of the caller's photos the primary one.
func (uc *ProfileUseCase) SetPrimaryPhoto(ctx context.Context, userID, photoID uuid.UUID) error {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return uc.photoRepo.SetPrimary(ctx, profile.ID, photoID)
}

// Stats summarizes the caller's profile reach.
func (uc *ProfileUseCase) Stats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	likeStats, err := uc.likeRepo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load like stats: %w", err)
	}
	photos, err := uc.photoRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	return &StatsResponse{
		LikesSent:     likeStats.Sent,
		LikesReceived: likeStats.Received,
		Matches:       likeStats.Mutual,
		Completeness:  profile.Completeness,
		PhotoCount:    len(photos),
	}, nil
}

// DeleteAccount removes the user and everything hanging off it; photo
// blobs are cleaned up best-effort first.
func (uc *ProfileUseCase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}

	if profile != nil {
		photos, err := uc.photoRepo.ListByProfile(ctx, profile.ID)
		if err == nil {
			for _, photo := range photos {
				if err := uc.storage.Delete(ctx, photo.StorageKey); err != nil {
					log.Error().Err(err).Str("key", photo.StorageKey).Msg("failed to delete photo blob")
				}
			}
		}
	}

	// Rows cascade from the users table.
	return uc.userRepo.Delete(ctx, userID)
}

func (uc *ProfileUseCase) withPhotos(ctx context.Context, profile *domain.Profile) *ProfileResponse {
	photos, err := uc.photoRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		log.Error().Err(err).Str("profile_id", profile.ID.String()).Msg("failed to list photos")
		photos = nil
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return &ProfileResponse{Profile: profile, Photos: photos}
}
