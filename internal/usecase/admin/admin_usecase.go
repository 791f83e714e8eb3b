package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/auth"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/notification"
)

type AdminUseCase struct {
	adminRepo     repository.AdminRepository
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	photoRepo     repository.PhotoRepository
	reportRepo    repository.ReportRepository
	tokens        *auth.TokenService
	notifications *notification.NotificationUseCase
}

func NewAdminUseCase(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	photoRepo repository.PhotoRepository,
	reportRepo repository.ReportRepository,
	tokens *auth.TokenService,
	notifications *notification.NotificationUseCase,
) *AdminUseCase {
	return &AdminUseCase{
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		photoRepo:     photoRepo,
		reportRepo:    reportRepo,
		tokens:        tokens,
		notifications: notifications,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *domain.Admin `json:"admin"`
}

type BanRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ReviewReportRequest resolves a report. Action is one of dismiss, warn
// or ban; warn and ban both mark the report actioned.
type ReviewReportRequest struct {
	Action string `json:"action" binding:"required,oneof=dismiss warn ban"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type UserDetail struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

type UserListResponse struct {
	Users []*domain.User `json:"users"`
	Total int            `json:"total"`
}

// Login authenticates an admin. Admin tokens use their own secret.
func (uc *AdminUseCase) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	admin, err := uc.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.GenerateAdminToken(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, filters repository.UserFilters) (*UserListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	users, total, err := uc.userRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return &UserListResponse{Users: users, Total: total}, nil
}

func (uc *AdminUseCase) GetUser(ctx context.Context, userID uuid.UUID) (*UserDetail, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	detail := &UserDetail{User: user}
	if profile, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil {
		detail.Profile = profile
	}
	return detail, nil
}

// BanUser hides the user's profile and tells them why.
func (uc *AdminUseCase) BanUser(ctx context.Context, userID uuid.UUID, req *BanRequest) error {
	if err := uc.profileRepo.SetBanned(ctx, userID, true); err != nil {
		return err
	}
	uc.notifications.NotifyAsync(userID, domain.NotificationAccountBan,
		"Account Banned", "Your account has been banned: "+req.Reason,
		map[string]interface{}{"reason": req.Reason})
	return nil
}

func (uc *AdminUseCase) UnbanUser(ctx context.Context, userID uuid.UUID) error {
	return uc.profileRepo.SetBanned(ctx, userID, false)
}

func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return uc.userRepo.Delete(ctx, userID)
}

// ReportUser files a report against another user.
func (uc *AdminUseCase) ReportUser(ctx context.Context, reporterID, reportedUserID uuid.UUID, reason string, details *string) (*domain.Report, error) {
	if reporterID == reportedUserID {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.userRepo.GetByID(ctx, reportedUserID); err != nil {
		return nil, err
	}

	report := &domain.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         reason,
		Details:        details,
		Status:         domain.ReportStatusPending,
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func (uc *AdminUseCase) ListReports(ctx context.Context, status domain.ReportStatus, limit, offset int) ([]*domain.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	reports, err := uc.reportRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if reports == nil {
		reports = []*domain.Report{}
	}
	return reports, nil
}

// ReviewReport closes a pending report. A ban action also bans the
// reported user.
func (uc *AdminUseCase) ReviewReport(ctx context.Context, reportID, adminID uuid.UUID, req *ReviewReportRequest) (*domain.Report, error) {
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportStatusPending {
		return nil, domain.ErrReportAlreadyClosed
	}

	now := time.Now()
	report.ReviewedBy = &adminID
	report.ReviewedAt = &now

	switch req.Action {
	case "dismiss":
		report.Status = domain.ReportStatusDismissed
	case "warn":
		report.Status = domain.ReportStatusActioned
		uc.notifications.NotifyAsync(report.ReportedUserID, domain.NotificationSystem,
			"Warning", "Your behavior was reported and reviewed. Further violations may lead to a ban.",
			map[string]interface{}{"report_id": report.ID})
	case "ban":
		report.Status = domain.ReportStatusActioned
		reason := req.Reason
		if reason == "" {
			reason = report.Reason
		}
		if err := uc.BanUser(ctx, report.ReportedUserID, &BanRequest{Reason: reason}); err != nil {
			return nil, err
		}
	}

	if err := uc.reportRepo.Review(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// UnverifiedPhotos pages the moderation queue.
func (uc *AdminUseCase) UnverifiedPhotos(ctx context.Context, limit, offset int) ([]*domain.Photo, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	photos, err := uc.photoRepo.ListUnverified(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list unverified photos: %w", err)
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return photos, nil
}

func (uc *AdminUseCase) VerifyPhoto(ctx context.Context, photoID uuid.UUID, verified bool) error {
	if verified {
		return uc.photoRepo.SetVerified(ctx, photoID, true)
	}
	// Rejected photos are removed from the profile.
	return uc.photoRepo.Delete(ctx, photoID)
}
