package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderUserPair(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	u1, u2 := OrderUserPair(a, b)
	assert.Equal(t, a, u1)
	assert.Equal(t, b, u2)

	// Order of the arguments never matters.
	u1, u2 = OrderUserPair(b, a)
	assert.Equal(t, a, u1)
	assert.Equal(t, b, u2)

	u1, u2 = OrderUserPair(a, a)
	assert.Equal(t, a, u1)
	assert.Equal(t, a, u2)
}

func TestConversationParticipants(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	user1, user2 := OrderUserPair(alice, bob)
	conv := &Conversation{User1ID: user1, User2ID: user2}

	assert.True(t, conv.HasUser(alice))
	assert.True(t, conv.HasUser(bob))
	assert.False(t, conv.HasUser(uuid.New()))

	assert.Equal(t, bob, conv.OtherUser(alice))
	assert.Equal(t, alice, conv.OtherUser(bob))
}
