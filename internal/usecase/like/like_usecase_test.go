package like

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/notification"
)

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[[2]uuid.UUID]*domain.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[[2]uuid.UUID]*domain.Like)}
}

func (r *fakeLikeRepo) Create(_ context.Context, like *domain.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uuid.UUID{like.LikerID, like.LikedUserID}
	if _, ok := r.likes[key]; ok {
		return domain.ErrLikeAlreadyExists
	}
	like.ID = uuid.New()
	like.CreatedAt = time.Now()
	stored := *like
	r.likes[key] = &stored
	return nil
}

func (r *fakeLikeRepo) GetByUsers(_ context.Context, likerID, likedUserID uuid.UUID) (*domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	like, ok := r.likes[[2]uuid.UUID{likerID, likedUserID}]
	if !ok {
		return nil, domain.ErrLikeNotFound
	}
	return like, nil
}

func (r *fakeLikeRepo) SetMutual(_ context.Context, likerID, likedUserID uuid.UUID, mutual bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if like, ok := r.likes[[2]uuid.UUID{likerID, likedUserID}]; ok {
		like.IsMutual = mutual
	}
	if like, ok := r.likes[[2]uuid.UUID{likedUserID, likerID}]; ok {
		like.IsMutual = mutual
	}
	return nil
}

func (r *fakeLikeRepo) HasMutualLike(_ context.Context, a, b uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if like, ok := r.likes[[2]uuid.UUID{a, b}]; ok && like.IsMutual {
		return true, nil
	}
	if like, ok := r.likes[[2]uuid.UUID{b, a}]; ok && like.IsMutual {
		return true, nil
	}
	return false, nil
}

func (r *fakeLikeRepo) ListSent(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Like
	for _, like := range r.likes {
		if like.LikerID == userID {
			out = append(out, like)
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) ListReceived(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Like
	for _, like := range r.likes {
		if like.LikedUserID == userID {
			out = append(out, like)
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) ListMutual(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Like
	for _, like := range r.likes {
		if like.LikerID == userID && like.IsMutual {
			out = append(out, like)
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) Stats(_ context.Context, userID uuid.UUID) (*repository.LikeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.LikeStats{}
	for _, like := range r.likes {
		if like.LikerID == userID {
			stats.Sent++
			if like.IsMutual {
				stats.Mutual++
			}
		}
		if like.LikedUserID == userID {
			stats.Received++
		}
	}
	return stats, nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, like := range r.likes {
		if like.ID == id {
			delete(r.likes, key)
			return nil
		}
	}
	return domain.ErrLikeNotFound
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (r *fakeProfileRepo) addActive(userID uuid.UUID) {
	r.mu.Lock()
	r.profiles[userID] = &domain.Profile{ID: uuid.New(), UserID: userID, IsActive: true}
	r.mu.Unlock()
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

func (r *fakeProfileRepo) AdjustLikeCount(_ context.Context, userID uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile, ok := r.profiles[userID]; ok {
		profile.LikeCount += delta
		if profile.LikeCount < 0 {
			profile.LikeCount = 0
		}
	}
	return nil
}

func (r *fakeProfileRepo) Update(context.Context, *domain.Profile) error { return nil }
func (r *fakeProfileRepo) Search(context.Context, repository.ProfileSearch) ([]*domain.Profile, error) {
	return nil, nil
}
func (r *fakeProfileRepo) SetBanned(context.Context, uuid.UUID, bool) error { return nil }
func (r *fakeProfileRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeConversationRepo struct {
	mu    sync.Mutex
	convs map[uuid.UUID]*domain.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[uuid.UUID]*domain.Conversation)}
}

func (r *fakeConversationRepo) findByPair(user1, user2 uuid.UUID) *domain.Conversation {
	for _, c := range r.convs {
		if c.User1ID == user1 && c.User2ID == user2 {
			return c
		}
	}
	return nil
}

func (r *fakeConversationRepo) CreateForPair(_ context.Context, a, b uuid.UUID, hasIntro bool) (*domain.Conversation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user1, user2 := domain.OrderUserPair(a, b)
	if existing := r.findByPair(user1, user2); existing != nil {
		return existing, false, nil
	}
	conv := &domain.Conversation{ID: uuid.New(), User1ID: user1, User2ID: user2, HasIntroMessage: hasIntro}
	r.convs[conv.ID] = conv
	return conv, true, nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return conv, nil
}

func (r *fakeConversationRepo) GetByUsers(_ context.Context, a, b uuid.UUID) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user1, user2 := domain.OrderUserPair(a, b)
	return r.findByPair(user1, user2), nil
}

func (r *fakeConversationRepo) ClaimIntro(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok || conv.HasIntroMessage {
		return false, nil
	}
	conv.HasIntroMessage = true
	return true, nil
}

func (r *fakeConversationRepo) ClearIntro(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conv, ok := r.convs[id]; ok {
		conv.HasIntroMessage = false
	}
	return nil
}

func (r *fakeConversationRepo) Touch(context.Context, uuid.UUID) error { return nil }
func (r *fakeConversationRepo) ListForUser(context.Context, uuid.UUID, int, int) ([]*domain.Conversation, error) {
	return nil, nil
}
func (r *fakeConversationRepo) GetParticipant(context.Context, uuid.UUID, uuid.UUID) (*domain.ConversationParticipant, error) {
	return nil, domain.ErrConversationNotFound
}
func (r *fakeConversationRepo) IncrementUnread(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (r *fakeConversationRepo) ResetUnread(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (r *fakeConversationRepo) TotalUnread(context.Context, uuid.UUID) (int, int, error) {
	return 0, 0, nil
}

type fakeBlockRepo struct {
	mu     sync.Mutex
	blocks map[[2]uuid.UUID]bool
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[[2]uuid.UUID]bool)}
}

func (r *fakeBlockRepo) block(blockerID, blockedUserID uuid.UUID) {
	r.mu.Lock()
	r.blocks[[2]uuid.UUID{blockerID, blockedUserID}] = true
	r.mu.Unlock()
}

func (r *fakeBlockRepo) Create(_ context.Context, block *domain.Block) error {
	r.block(block.BlockerID, block.BlockedUserID)
	return nil
}

func (r *fakeBlockRepo) Get(context.Context, uuid.UUID, uuid.UUID) (*domain.Block, error) {
	return nil, domain.ErrNotBlocked
}

func (r *fakeBlockRepo) Exists(_ context.Context, a, b uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocks[[2]uuid.UUID{a, b}] || r.blocks[[2]uuid.UUID{b, a}], nil
}

func (r *fakeBlockRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*domain.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.New()
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) countByType(kind domain.NotificationType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.created {
		if n.Type == kind {
			count++
		}
	}
	return count
}

func (r *fakeNotificationRepo) ListByUser(context.Context, uuid.UUID, int, int) ([]*domain.Notification, int, error) {
	return nil, 0, nil
}
func (r *fakeNotificationRepo) UnreadCount(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (r *fakeNotificationRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (r *fakeNotificationRepo) MarkAllRead(context.Context, uuid.UUID) error { return nil }

type likeFixture struct {
	uc            *LikeUseCase
	likes         *fakeLikeRepo
	profiles      *fakeProfileRepo
	convs         *fakeConversationRepo
	blocks        *fakeBlockRepo
	notifications *fakeNotificationRepo
	alice         uuid.UUID
	bob           uuid.UUID
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()

	f := &likeFixture{
		likes:         newFakeLikeRepo(),
		profiles:      newFakeProfileRepo(),
		convs:         newFakeConversationRepo(),
		blocks:        newFakeBlockRepo(),
		notifications: &fakeNotificationRepo{},
		alice:         uuid.New(),
		bob:           uuid.New(),
	}
	f.profiles.addActive(f.alice)
	f.profiles.addActive(f.bob)

	nuc := notification.NewNotificationUseCase(f.notifications, nil)
	f.uc = NewLikeUseCase(f.likes, f.profiles, f.convs, f.blocks, nuc)
	return f
}

func (f *likeFixture) like(t *testing.T, from, to uuid.UUID) (*SendLikeResponse, error) {
	t.Helper()
	return f.uc.SendLike(context.Background(), from, &SendLikeRequest{LikedUserID: to})
}

func TestSendLikeOneSided(t *testing.T) {
	f := newLikeFixture(t)

	resp, err := f.like(t, f.alice, f.bob)
	require.NoError(t, err)

	assert.False(t, resp.IsMutual)
	assert.Equal(t, "Like sent successfully", resp.Message)
	assert.Equal(t, 1, f.profiles.profiles[f.bob].LikeCount)

	liked, likedBy, mutual, err := f.uc.CheckLike(context.Background(), f.alice, f.bob)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.False(t, likedBy)
	assert.False(t, mutual)
}

func TestSendLikeSelf(t *testing.T) {
	f := newLikeFixture(t)

	_, err := f.like(t, f.alice, f.alice)
	assert.ErrorIs(t, err, domain.ErrCannotLikeSelf)
}

func TestSendLikeDuplicate(t *testing.T) {
	f := newLikeFixture(t)

	_, err := f.like(t, f.alice, f.bob)
	require.NoError(t, err)

	_, err = f.like(t, f.alice, f.bob)
	assert.ErrorIs(t, err, domain.ErrLikeAlreadyExists)
}

func TestSendLikeBlocked(t *testing.T) {
	f := newLikeFixture(t)
	f.blocks.block(f.bob, f.alice)

	_, err := f.like(t, f.alice, f.bob)
	assert.ErrorIs(t, err, domain.ErrUserBlocked)
}

func TestSendLikeBannedTarget(t *testing.T) {
	f := newLikeFixture(t)
	f.profiles.profiles[f.bob].IsBanned = true

	_, err := f.like(t, f.alice, f.bob)
	assert.ErrorIs(t, err, domain.ErrProfileUnavailable)
}

func TestSendLikeMutualPromotion(t *testing.T) {
	f := newLikeFixture(t)

	_, err := f.like(t, f.bob, f.alice)
	require.NoError(t, err)

	resp, err := f.like(t, f.alice, f.bob)
	require.NoError(t, err)

	assert.True(t, resp.IsMutual)
	assert.Equal(t, "It's a match!", resp.Message)

	// Both rows carry the mutual flag.
	forward, err := f.likes.GetByUsers(context.Background(), f.alice, f.bob)
	require.NoError(t, err)
	reverse, err := f.likes.GetByUsers(context.Background(), f.bob, f.alice)
	require.NoError(t, err)
	assert.True(t, forward.IsMutual)
	assert.True(t, reverse.IsMutual)

	// The match opens an unrestricted conversation.
	conv, err := f.convs.GetByUsers(context.Background(), f.alice, f.bob)
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.False(t, conv.HasIntroMessage)

	// Both sides get a match notification, asynchronously.
	assert.Eventually(t, func() bool {
		return f.notifications.countByType(domain.NotificationMutualMatch) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestSendLikeMutualClearsIntroConversation(t *testing.T) {
	f := newLikeFixture(t)

	// An icebreaker conversation already exists with the intro consumed.
	conv, created, err := f.convs.CreateForPair(context.Background(), f.alice, f.bob, true)
	require.NoError(t, err)
	require.True(t, created)

	_, err = f.like(t, f.bob, f.alice)
	require.NoError(t, err)
	resp, err := f.like(t, f.alice, f.bob)
	require.NoError(t, err)
	require.True(t, resp.IsMutual)

	got, err := f.convs.GetByID(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.False(t, got.HasIntroMessage)
}

func TestUnlikeDowngradesMutual(t *testing.T) {
	f := newLikeFixture(t)

	_, err := f.like(t, f.bob, f.alice)
	require.NoError(t, err)
	_, err = f.like(t, f.alice, f.bob)
	require.NoError(t, err)

	require.NoError(t, f.uc.Unlike(context.Background(), f.alice, f.bob))

	_, err = f.likes.GetByUsers(context.Background(), f.alice, f.bob)
	assert.ErrorIs(t, err, domain.ErrLikeNotFound)

	// Bob's like survives but is no longer mutual.
	reverse, err := f.likes.GetByUsers(context.Background(), f.bob, f.alice)
	require.NoError(t, err)
	assert.False(t, reverse.IsMutual)

	assert.Equal(t, 0, f.profiles.profiles[f.bob].LikeCount)
}

func TestUnlikeWithoutLike(t *testing.T) {
	f := newLikeFixture(t)

	err := f.uc.Unlike(context.Background(), f.alice, f.bob)
	assert.ErrorIs(t, err, domain.ErrLikeNotFound)
}

func TestLikeStats(t *testing.T) {
	f := newLikeFixture(t)
	carol := uuid.New()
	f.profiles.addActive(carol)

	_, err := f.like(t, f.alice, f.bob)
	require.NoError(t, err)
	_, err = f.like(t, f.alice, carol)
	require.NoError(t, err)
	_, err = f.like(t, f.bob, f.alice)
	require.NoError(t, err)

	stats, err := f.uc.Stats(context.Background(), f.alice)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Received)
	assert.Equal(t, 1, stats.Mutual)
}
