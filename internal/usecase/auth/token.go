package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartlinkapp/heartlink-backend/internal/config"
	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeAdmin   = "admin"
)

// Claims is the JWT payload shared by user and admin tokens.
type Claims struct {
	TokenType string           `json:"token_type"`
	Role      domain.AdminRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the three token kinds. Admin tokens
// are signed with a separate secret so a user token can never pass the
// admin middleware.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	adminSecret   []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		adminSecret:   []byte(cfg.AdminSecret),
		accessTTL:     time.Duration(cfg.AccessExpiryMin) * time.Minute,
		refreshTTL:    time.Duration(cfg.RefreshExpiryDay) * 24 * time.Hour,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// GenerateAccessToken signs a short-lived access token for a user.
func (s *TokenService) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	return s.sign(s.accessSecret, TokenTypeAccess, userID.String(), "", s.accessTTL, "")
}

// GenerateRefreshToken signs a refresh token carrying tokenID as its JTI,
// which the session store tracks for revocation.
func (s *TokenService) GenerateRefreshToken(userID uuid.UUID, tokenID string) (string, time.Time, error) {
	return s.sign(s.refreshSecret, TokenTypeRefresh, userID.String(), tokenID, s.refreshTTL, "")
}

// GenerateAdminToken signs an access token for the admin console.
func (s *TokenService) GenerateAdminToken(adminID uuid.UUID, role domain.AdminRole) (string, time.Time, error) {
	return s.sign(s.adminSecret, TokenTypeAdmin, adminID.String(), "", s.accessTTL, role)
}

func (s *TokenService) sign(secret []byte, tokenType, subject, jti string, ttl time.Duration, role domain.AdminRole) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		TokenType: tokenType,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// ParseAccessToken verifies a user access token and returns the user ID.
func (s *TokenService) ParseAccessToken(token string) (uuid.UUID, error) {
	claims, err := s.parse(token, s.accessSecret, TokenTypeAccess)
	if err != nil {
		return uuid.Nil, err
	}
	return parseSubject(claims)
}

// ParseRefreshToken verifies a refresh token and returns the user ID and JTI.
func (s *TokenService) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	claims, err := s.parse(token, s.refreshSecret, TokenTypeRefresh)
	if err != nil {
		return uuid.Nil, "", err
	}
	userID, err := parseSubject(claims)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, claims.ID, nil
}

// ParseAdminToken verifies an admin token and returns the admin ID and role.
func (s *TokenService) ParseAdminToken(token string) (uuid.UUID, domain.AdminRole, error) {
	claims, err := s.parse(token, s.adminSecret, TokenTypeAdmin)
	if err != nil {
		return uuid.Nil, "", err
	}
	adminID, err := parseSubject(claims)
	if err != nil {
		return uuid.Nil, "", err
	}
	return adminID, claims.Role, nil
}

func (s *TokenService) parse(token string, secret []byte, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.TokenType != wantType {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func parseSubject(claims *Claims) (uuid.UUID, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}
