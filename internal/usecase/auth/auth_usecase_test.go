package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.IsEmailVerified = true
	return nil
}

func (r *fakeUserRepo) SetOnline(_ context.Context, id uuid.UUID, online bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.IsOnline = online
	return nil
}

func (r *fakeUserRepo) List(context.Context, repository.UserFilters) ([]*domain.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) Update(context.Context, *domain.Profile) error { return nil }
func (r *fakeProfileRepo) Search(context.Context, repository.ProfileSearch) ([]*domain.Profile, error) {
	return nil, nil
}
func (r *fakeProfileRepo) AdjustLikeCount(context.Context, uuid.UUID, int) error { return nil }
func (r *fakeProfileRepo) SetBanned(context.Context, uuid.UUID, bool) error { return nil }
func (r *fakeProfileRepo) Delete(context.Context, uuid.UUID) error { return nil }

// fakeSessionStore mirrors the redis-backed store with plain maps.
type fakeSessionStore struct {
	mu      sync.Mutex
	refresh map[string]bool
	otps    map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		refresh: make(map[string]bool),
		otps:    make(map[string]string),
	}
}

func refreshKey(userID uuid.UUID, tokenID string) string {
	return userID.String() + ":" + tokenID
}

func (s *fakeSessionStore) SaveRefreshToken(_ context.Context, userID uuid.UUID, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[refreshKey(userID, tokenID)] = true
	return nil
}

func (s *fakeSessionStore) RefreshTokenValid(_ context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh[refreshKey(userID, tokenID)], nil
}

func (s *fakeSessionStore) RevokeRefreshToken(_ context.Context, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, refreshKey(userID, tokenID))
	return nil
}

func (s *fakeSessionStore) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := userID.String() + ":"
	for key := range s.refresh {
		if strings.HasPrefix(key, prefix) {
			delete(s.refresh, key)
		}
	}
	return nil
}

func (s *fakeSessionStore) SaveOTP(_ context.Context, purpose, email, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[purpose+":"+email] = code
	return nil
}

func (s *fakeSessionStore) ConsumeOTP(_ context.Context, purpose, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := purpose + ":" + email
	if s.otps[key] != code || code == "" {
		return false, nil
	}
	delete(s.otps, key)
	return true, nil
}

func (s *fakeSessionStore) storedOTP(purpose, email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[purpose+":"+email]
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

type authFixture struct {
	uc       *AuthUseCase
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	sessions *fakeSessionStore
	mailer   *fakeMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    newFakeUserRepo(),
		profiles: newFakeProfileRepo(),
		sessions: newFakeSessionStore(),
		mailer:   &fakeMailer{},
	}
	f.uc = NewAuthUseCase(f.users, f.profiles, newTestTokenService(), f.sessions, f.mailer)
	return f
}

func (f *authFixture) register(t *testing.T, email, password string) *AuthResponse {
	t.Helper()
	resp, err := f.uc.Register(context.Background(), &RegisterRequest{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	f := newAuthFixture(t)

	resp := f.register(t, "ada@example.com", "supersecret")

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEqual(t, "supersecret", resp.User.PasswordHash)

	// The refresh token is on the allow-list straight away.
	userID, jti, err := f.uc.tokens.ParseRefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	valid, err := f.sessions.RefreshTokenValid(context.Background(), userID, jti)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "supersecret")

	_, err := f.uc.Register(context.Background(), &RegisterRequest{
		Email:    "ada@example.com",
		Password: "anotherpass",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyTaken)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "supersecret")

	resp, err := f.uc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "supersecret")

	_, err := f.uc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmailMasked(t *testing.T) {
	f := newAuthFixture(t)

	// Unknown accounts get the same error as a bad password.
	_, err := f.uc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginBannedProfile(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.register(t, "ada@example.com", "supersecret")

	f.profiles.profiles[resp.User.ID] = &domain.Profile{
		UserID:   resp.User.ID,
		IsActive: true,
		IsBanned: true,
	}

	_, err := f.uc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrUserBanned)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.register(t, "ada@example.com", "supersecret")

	rotated, err := f.uc.Refresh(context.Background(), &RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	// The old refresh token is burned.
	_, err = f.uc.Refresh(context.Background(), &RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// The new one works.
	_, err = f.uc.Refresh(context.Background(), &RefreshRequest{RefreshToken: rotated.RefreshToken})
	assert.NoError(t, err)
}

func TestLogoutRevokesAndGoesOffline(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.register(t, "ada@example.com", "supersecret")
	f.users.users[resp.User.ID].IsOnline = true

	require.NoError(t, f.uc.Logout(context.Background(), &RefreshRequest{RefreshToken: resp.RefreshToken}))

	_, err := f.uc.Refresh(context.Background(), &RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.False(t, f.users.users[resp.User.ID].IsOnline)
}

func TestVerifyEmailConsumesCode(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.register(t, "ada@example.com", "supersecret")

	// Registration stores the code asynchronously.
	require.Eventually(t, func() bool {
		return f.sessions.storedOTP(purposeVerifyEmail, "ada@example.com") != ""
	}, time.Second, 10*time.Millisecond)
	code := f.sessions.storedOTP(purposeVerifyEmail, "ada@example.com")
	require.Len(t, code, otpLength)

	err := f.uc.VerifyEmail(context.Background(), &VerifyEmailRequest{
		Email: "ada@example.com",
		Code:  code,
	})
	require.NoError(t, err)
	assert.True(t, f.users.users[resp.User.ID].IsEmailVerified)

	// Codes are one-shot.
	err = f.uc.VerifyEmail(context.Background(), &VerifyEmailRequest{
		Email: "ada@example.com",
		Code:  code,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
}

func TestVerifyEmailWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "supersecret")

	err := f.uc.VerifyEmail(context.Background(), &VerifyEmailRequest{
		Email: "ada@example.com",
		Code:  "000000",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
}

func TestForgotPasswordSilentForUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.uc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, f.sessions.storedOTP(purposeResetPassword, "nobody@example.com"))
}

func TestResetPasswordKillsSessions(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.register(t, "ada@example.com", "supersecret")

	require.NoError(t, f.uc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "ada@example.com"}))
	require.Eventually(t, func() bool {
		return f.sessions.storedOTP(purposeResetPassword, "ada@example.com") != ""
	}, time.Second, 10*time.Millisecond)
	code := f.sessions.storedOTP(purposeResetPassword, "ada@example.com")

	err := f.uc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Email:       "ada@example.com",
		Code:        code,
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	// Old password rejected, new accepted.
	_, err = f.uc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.uc.Login(context.Background(), &LoginRequest{Email: "ada@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	// Every pre-reset session is dead.
	_, err = f.uc.Refresh(context.Background(), &RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestEmailExists(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "supersecret")

	exists, err := f.uc.EmailExists(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.uc.EmailExists(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateOTP(t *testing.T) {
	code, err := generateOTP()
	require.NoError(t, err)
	assert.Len(t, code, otpLength)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9')
	}
}
