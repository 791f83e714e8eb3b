package like

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/notification"
)

type LikeUseCase struct {
	likeRepo         repository.LikeRepository
	profileRepo      repository.ProfileRepository
	conversationRepo repository.ConversationRepository
	blockRepo        repository.BlockRepository
	notifications    *notification.NotificationUseCase
}

func NewLikeUseCase(
	likeRepo repository.LikeRepository,
	profileRepo repository.ProfileRepository,
	conversationRepo repository.ConversationRepository,
	blockRepo repository.BlockRepository,
	notifications *notification.NotificationUseCase,
) *LikeUseCase {
	return &LikeUseCase{
		likeRepo:         likeRepo,
		profileRepo:      profileRepo,
		conversationRepo: conversationRepo,
		blockRepo:        blockRepo,
		notifications:    notifications,
	}
}

// SendLikeRequest identifies the profile being liked.
type SendLikeRequest struct {
	LikedUserID uuid.UUID `json:"liked_user_id" binding:"required"`
}

// SendLikeResponse reports the created like and whether it completed a match.
type SendLikeResponse struct {
	Like     *domain.Like `json:"like"`
	IsMutual bool         `json:"is_mutual"`
	Message  string       `json:"message"`
}

// SendLike records a directed like and, when the reverse like already
// exists, promotes the pair to a mutual match: both rows flip to mutual,
// a conversation is opened without the intro restriction and both users
// are notified.
func (uc *LikeUseCase) SendLike(ctx context.Context, likerID uuid.UUID, req *SendLikeRequest) (*SendLikeResponse, error) {
	if likerID == req.LikedUserID {
		return nil, domain.ErrCannotLikeSelf
	}

	blocked, err := uc.blockRepo.Exists(ctx, likerID, req.LikedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked {
		return nil, domain.ErrUserBlocked
	}

	target, err := uc.profileRepo.GetByUserID(ctx, req.LikedUserID)
	if err != nil {
		return nil, err
	}
	if !target.Available() {
		return nil, domain.ErrProfileUnavailable
	}

	reverse, err := uc.likeRepo.GetByUsers(ctx, req.LikedUserID, likerID)
	if err != nil && !errors.Is(err, domain.ErrLikeNotFound) {
		return nil, fmt.Errorf("failed to check reverse like: %w", err)
	}
	isMutual := reverse != nil

	like := &domain.Like{
		LikerID:     likerID,
		LikedUserID: req.LikedUserID,
		IsMutual:    isMutual,
	}
	if err := uc.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}

	if isMutual {
		if err := uc.likeRepo.SetMutual(ctx, likerID, req.LikedUserID, true); err != nil {
			return nil, fmt.Errorf("failed to mark likes mutual: %w", err)
		}
		if err := uc.openConversationForMatch(ctx, likerID, req.LikedUserID); err != nil {
			log.Error().Err(err).
				Str("liker_id", likerID.String()).
				Str("liked_user_id", req.LikedUserID.String()).
				Msg("failed to open conversation for match")
		}
	}

	if err := uc.profileRepo.AdjustLikeCount(ctx, req.LikedUserID, 1); err != nil {
		log.Error().Err(err).Str("user_id", req.LikedUserID.String()).Msg("failed to bump like count")
	}

	if isMutual {
		uc.notifications.NotifyAsync(req.LikedUserID, domain.NotificationMutualMatch,
			"It's a Match!", "You have a new match! Start chatting now.",
			map[string]interface{}{"related_user_id": likerID})
		uc.notifications.NotifyAsync(likerID, domain.NotificationMutualMatch,
			"It's a Match!", "You have a new match! Start chatting now.",
			map[string]interface{}{"related_user_id": req.LikedUserID})
	} else {
		uc.notifications.NotifyAsync(req.LikedUserID, domain.NotificationNewLike,
			"New Like", "Someone liked your profile.",
			map[string]interface{}{"related_user_id": likerID})
	}

	message := "Like sent successfully"
	if isMutual {
		message = "It's a match!"
	}
	return &SendLikeResponse{Like: like, IsMutual: isMutual, Message: message}, nil
}

// openConversationForMatch makes sure matched users can chat freely. An
// icebreaker conversation loses its intro restriction; otherwise a fresh
// unrestricted conversation is created.
func (uc *LikeUseCase) openConversationForMatch(ctx context.Context, userA, userB uuid.UUID) error {
	conv, err := uc.conversationRepo.GetByUsers(ctx, userA, userB)
	if err != nil {
		return err
	}
	if conv != nil {
		if conv.HasIntroMessage {
			return uc.conversationRepo.ClearIntro(ctx, conv.ID)
		}
		return nil
	}
	_, _, err = uc.conversationRepo.CreateForPair(ctx, userA, userB, false)
	return err
}

// Unlike removes a previously sent like. A mutual pair degrades back to a
// one-sided like on the other side.
func (uc *LikeUseCase) Unlike(ctx context.Context, likerID, likedUserID uuid.UUID) error {
	like, err := uc.likeRepo.GetByUsers(ctx, likerID, likedUserID)
	if err != nil {
		return err
	}

	if like.IsMutual {
		if err := uc.likeRepo.SetMutual(ctx, likerID, likedUserID, false); err != nil {
			return fmt.Errorf("failed to downgrade mutual like: %w", err)
		}
	}
	if err := uc.likeRepo.Delete(ctx, like.ID); err != nil {
		return err
	}

	if err := uc.profileRepo.AdjustLikeCount(ctx, likedUserID, -1); err != nil {
		log.Error().Err(err).Str("user_id", likedUserID.String()).Msg("failed to drop like count")
	}
	return nil
}

// CheckLike reports the like state between the caller and another user.
func (uc *LikeUseCase) CheckLike(ctx context.Context, userID, otherUserID uuid.UUID) (liked, likedBy, mutual bool, err error) {
	sent, err := uc.likeRepo.GetByUsers(ctx, userID, otherUserID)
	if err != nil && !errors.Is(err, domain.ErrLikeNotFound) {
		return false, false, false, err
	}
	received, err := uc.likeRepo.GetByUsers(ctx, otherUserID, userID)
	if err != nil && !errors.Is(err, domain.ErrLikeNotFound) {
		return false, false, false, err
	}
	liked = sent != nil
	likedBy = received != nil
	mutual = sent != nil && sent.IsMutual
	return liked, likedBy, mutual, nil
}

func (uc *LikeUseCase) SentLikes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error) {
	return uc.likeRepo.ListSent(ctx, userID, normalizeLimit(limit), offset)
}

func (uc *LikeUseCase) ReceivedLikes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error) {
	return uc.likeRepo.ListReceived(ctx, userID, normalizeLimit(limit), offset)
}

func (uc *LikeUseCase) MutualLikes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Like, error) {
	return uc.likeRepo.ListMutual(ctx, userID, normalizeLimit(limit), offset)
}

func (uc *LikeUseCase) Stats(ctx context.Context, userID uuid.UUID) (*repository.LikeStats, error) {
	return uc.likeRepo.Stats(ctx, userID)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
