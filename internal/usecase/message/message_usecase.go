package message

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
	"github.com/heartlinkapp/heartlink-backend/internal/repository"
	"github.com/heartlinkapp/heartlink-backend/internal/usecase/notification"
)

type MessageUseCase struct {
	messageRepo      repository.MessageRepository
	conversationRepo repository.ConversationRepository
	likeRepo         repository.LikeRepository
	blockRepo        repository.BlockRepository
	profileRepo      repository.ProfileRepository
	notifications    *notification.NotificationUseCase
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	conversationRepo repository.ConversationRepository,
	likeRepo repository.LikeRepository,
	blockRepo repository.BlockRepository,
	profileRepo repository.ProfileRepository,
	notifications *notification.NotificationUseCase,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
		likeRepo:         likeRepo,
		blockRepo:        blockRepo,
		profileRepo:      profileRepo,
		notifications:    notifications,
	}
}

// SendMessageRequest addresses a message by receiver, not conversation;
// the conversation is resolved or created as a side effect.
type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	Content    string    `json:"content" binding:"required,max=2000"`
}

// ConversationSummary is one entry of a user's inbox.
type ConversationSummary struct {
	Conversation *domain.Conversation `json:"conversation"`
	OtherProfile *domain.Profile      `json:"other_profile,omitempty"`
	UnreadCount  int                  `json:"unread_count"`
}

// SendMessage delivers a message subject to the conversation gate.
//
// Matched users (a mutual like in either direction) may always message
// each other; a leftover intro restriction is cleared on the way. An
// unmatched sender gets exactly one icebreaker message per pair: the
// first send creates the conversation with the intro flag consumed, and
// any further unmatched send is rejected until the pair matches. The
// intro flag is claimed with a conditional update so two racing
// unmatched senders cannot both get through.
func (uc *MessageUseCase) SendMessage(ctx context.Context, senderID uuid.UUID, req *SendMessageRequest) (*domain.Message, error) {
	if senderID == req.ReceiverID {
		return nil, domain.ErrForbidden
	}

	blocked, err := uc.blockRepo.Exists(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocks: %w", err)
	}
	if blocked {
		return nil, domain.ErrUserBlocked
	}

	receiver, err := uc.profileRepo.GetByUserID(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !receiver.Available() {
		return nil, domain.ErrProfileUnavailable
	}

	mutual, err := uc.likeRepo.HasMutualLike(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check match: %w", err)
	}

	conv, err := uc.resolveConversation(ctx, senderID, req.ReceiverID, mutual)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		Content:        req.Content,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := uc.conversationRepo.IncrementUnread(ctx, conv.ID, req.ReceiverID); err != nil {
		log.Error().Err(err).Str("conversation_id", conv.ID.String()).Msg("failed to bump unread counter")
	}
	if err := uc.conversationRepo.Touch(ctx, conv.ID); err != nil {
		log.Error().Err(err).Str("conversation_id", conv.ID.String()).Msg("failed to touch conversation")
	}

	uc.notifications.NotifyAsync(req.ReceiverID, domain.NotificationNewMessage,
		"New Message", "You have a new message.",
		map[string]interface{}{
			"conversation_id": conv.ID,
			"sender_id":       senderID,
		})

	return msg, nil
}

// resolveConversation applies the gate and returns the conversation the
// message belongs to.
func (uc *MessageUseCase) resolveConversation(ctx context.Context, senderID, receiverID uuid.UUID, mutual bool) (*domain.Conversation, error) {
	if mutual {
		conv, created, err := uc.conversationRepo.CreateForPair(ctx, senderID, receiverID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open conversation: %w", err)
		}
		if !created && conv.HasIntroMessage {
			if err := uc.conversationRepo.ClearIntro(ctx, conv.ID); err != nil {
				return nil, fmt.Errorf("failed to clear intro flag: %w", err)
			}
		}
		return conv, nil
	}

	// Unmatched: the conversation is created with the intro allowance
	// already consumed. Losing the creation race means someone else made
	// the conversation first, so the sender must win the intro claim
	// instead.
	conv, created, err := uc.conversationRepo.CreateForPair(ctx, senderID, receiverID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation: %w", err)
	}
	if created {
		return conv, nil
	}

	claimed, err := uc.conversationRepo.ClaimIntro(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim intro: %w", err)
	}
	if !claimed {
		return nil, domain.ErrMatchRequired
	}
	return conv, nil
}

// Conversations lists the user's inbox, most recently active first.
func (uc *MessageUseCase) Conversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ConversationSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	convs, err := uc.conversationRepo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := &ConversationSummary{Conversation: conv}

		if participant, err := uc.conversationRepo.GetParticipant(ctx, conv.ID, userID); err == nil {
			summary.UnreadCount = participant.UnreadCount
		}
		if profile, err := uc.profileRepo.GetByUserID(ctx, conv.OtherUser(userID)); err == nil {
			summary.OtherProfile = profile
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Messages pages a conversation's history for a participant.
func (uc *MessageUseCase) Messages(ctx context.Context, conversationID, userID uuid.UUID, limit, offset int) ([]*domain.Message, error) {
	conv, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	messages, err := uc.messageRepo.ListByConversation(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	// The repo returns newest first so paging starts at the most recent
	// messages; each page still reads oldest to newest.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkRead stamps every unread message addressed to userID and resets the
// unread counter.
func (uc *MessageUseCase) MarkRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	conv, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.HasUser(userID) {
		return domain.ErrNotParticipant
	}

	if err := uc.messageRepo.MarkConversationRead(ctx, conversationID, userID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return uc.conversationRepo.ResetUnread(ctx, conversationID, userID)
}

// DeleteMessage removes a message; only the sender may delete.
func (uc *MessageUseCase) DeleteMessage(ctx context.Context, messageID, userID uuid.UUID) error {
	msg, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != userID {
		return domain.ErrNotMessageOwner
	}
	return uc.messageRepo.Delete(ctx, messageID)
}

// UnreadTotal returns the total unread messages and the number of
// conversations holding them.
func (uc *MessageUseCase) UnreadTotal(ctx context.Context, userID uuid.UUID) (total int, conversations int, err error) {
	return uc.conversationRepo.TotalUnread(ctx, userID)
}

// Search scans the user's own messages for a substring.
func (uc *MessageUseCase) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*domain.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.messageRepo.Search(ctx, userID, query, limit)
}

// BlockUser stops all messaging and liking between the pair.
func (uc *MessageUseCase) BlockUser(ctx context.Context, blockerID, blockedUserID uuid.UUID) error {
	if blockerID == blockedUserID {
		return domain.ErrForbidden
	}
	if _, err := uc.profileRepo.GetByUserID(ctx, blockedUserID); err != nil {
		return err
	}
	block := &domain.Block{BlockerID: blockerID, BlockedUserID: blockedUserID}
	return uc.blockRepo.Create(ctx, block)
}

func (uc *MessageUseCase) UnblockUser(ctx context.Context, blockerID, blockedUserID uuid.UUID) error {
	return uc.blockRepo.Delete(ctx, blockerID, blockedUserID)
}
