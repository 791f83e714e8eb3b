package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a 1:1 chat. User1ID/User2ID are stored in canonical
// order (user1 < user2) so the unique pair index can hold.
// HasIntroMessage marks that the single unmatched icebreaker message has
// been consumed; a mutual match clears it.
type Conversation struct {
	ID              uuid.UUID `json:"id" db:"id"`
	User1ID         uuid.UUID `json:"user1_id" db:"user1_id"`
	User2ID         uuid.UUID `json:"user2_id" db:"user2_id"`
	HasIntroMessage bool      `json:"has_intro_message" db:"has_intro_message"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// HasUser reports whether userID is one of the two participants.
func (c *Conversation) HasUser(userID uuid.UUID) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherUser returns the participant opposite to userID.
func (c *Conversation) OtherUser(userID uuid.UUID) uuid.UUID {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// OrderUserPair puts two user IDs into canonical conversation order.
func OrderUserPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

type ConversationParticipant struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ConversationID uuid.UUID `json:"conversation_id" db:"conversation_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	UnreadCount    int       `json:"unread_count" db:"unread_count"`
}

type Message struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ConversationID uuid.UUID  `json:"conversation_id" db:"conversation_id"`
	SenderID       uuid.UUID  `json:"sender_id" db:"sender_id"`
	ReceiverID     uuid.UUID  `json:"receiver_id" db:"receiver_id"`
	Content        string     `json:"content" db:"content"`
	IsRead         bool       `json:"is_read" db:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

type Block struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BlockerID     uuid.UUID `json:"blocker_id" db:"blocker_id"`
	BlockedUserID uuid.UUID `json:"blocked_user_id" db:"blocked_user_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
