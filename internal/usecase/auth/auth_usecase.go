package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

const (
	otpLength = 6
	otpTTL    = 15 * time.Minute

	// OTP purposes namespace the codes in the session store.
	purposeVerifyEmail   = "verify_email"
	purposeResetPassword = "reset_password"
)

// SessionStore tracks issued refresh tokens and short-lived OTP codes.
// Backed by redis in production.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	RefreshTokenValid(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error

	SaveOTP(ctx context.Context, purpose, email, code string, ttl time.Duration) error
	ConsumeOTP(ctx context.Context, purpose, email, code string) (bool, error)
}

// Mailer sends transactional mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokens      *TokenService
	sessions    SessionStore
	mailer      Mailer
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokens *TokenService,
	sessions SessionStore,
	mailer Mailer,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		sessions:    sessions,
		mailer:      mailer,
	}
}

// RegisterRequest carries a new account's credentials.
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	PhoneNumber *string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AuthResponse is the token pair returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         *domain.User `json:"user"`
}

// Register creates the account, mails a verification code and signs the
// first token pair.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.sendOTPAsync(purposeVerifyEmail, user.Email, "Verify your email",
		"Your verification code is %s. It expires in 15 minutes.")

	return uc.issueTokens(ctx, user)
}

// Login verifies credentials. Banned profiles cannot sign in.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	if profile != nil && profile.IsBanned {
		return nil, domain.ErrUserBanned
	}

	return uc.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token must still be on
// the allow-list, and it is revoked as the new pair is issued.
func (uc *AuthUseCase) Refresh(ctx context.Context, req *RefreshRequest) (*AuthResponse, error) {
	userID, tokenID, err := uc.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	valid, err := uc.sessions.RefreshTokenValid(ctx, userID, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidToken
	}
	if err := uc.sessions.RevokeRefreshToken(ctx, userID, tokenID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token and flips the user offline.
func (uc *AuthUseCase) Logout(ctx context.Context, req *RefreshRequest) error {
	userID, tokenID, err := uc.tokens.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return err
	}
	if err := uc.sessions.RevokeRefreshToken(ctx, userID, tokenID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if err := uc.userRepo.SetOnline(ctx, userID, false); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to mark user offline")
	}
	return nil
}

// VerifyEmail consumes the emailed code and marks the account verified.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, req *VerifyEmailRequest) error {
	ok, err := uc.sessions.ConsumeOTP(ctx, purposeVerifyEmail, req.Email, req.Code)
	if err != nil {
		return fmt.Errorf("failed to check code: %w", err)
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	return uc.userRepo.MarkEmailVerified(ctx, user.ID)
}

// ForgotPassword mails a reset code. Unknown emails get the same answer
// as known ones so the endpoint cannot be used to probe accounts.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if _, err := uc.userRepo.GetByEmail(ctx, req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	uc.sendOTPAsync(purposeResetPassword, req.Email, "Reset your password",
		"Your password reset code is %s. It expires in 15 minutes.")
	return nil
}

// ResetPassword consumes the reset code, replaces the password and kills
// every open session.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	ok, err := uc.sessions.ConsumeOTP(ctx, purposeResetPassword, req.Email, req.Code)
	if err != nil {
		return fmt.Errorf("failed to check code: %w", err)
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return uc.sessions.RevokeAllRefreshTokens(ctx, user.ID)
}

// EmailExists reports whether an account already uses the email.
func (uc *AuthUseCase) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) issueTokens(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	access, expiresAt, err := uc.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refresh, _, err := uc.tokens.GenerateRefreshToken(user.ID, tokenID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.SaveRefreshToken(ctx, user.ID, tokenID, uc.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

// sendOTPAsync generates, stores and mails a code off the request path.
func (uc *AuthUseCase) sendOTPAsync(purpose, email, subject, bodyFormat string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		code, err := generateOTP()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate OTP")
			return
		}
		if err := uc.sessions.SaveOTP(ctx, purpose, email, code, otpTTL); err != nil {
			log.Error().Err(err).Str("purpose", purpose).Msg("failed to store OTP")
			return
		}
		if err := uc.mailer.Send(ctx, email, subject, fmt.Sprintf(bodyFormat, code)); err != nil {
			log.Error().Err(err).Str("purpose", purpose).Msg("failed to send OTP mail")
		}
	}()
}

func generateOTP() (string, error) {
	code := ""
	for i := 0; i < otpLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}
	return code, nil
}
