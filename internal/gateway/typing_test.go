package gateway_test

import (
	"testing"

	"chatwave/backend/internal/gateway"
	"chatwave/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTyping_DirectSignalReachesRecipient(t *testing.T) {
	registry := gateway.NewSessionRegistry()
	rooms := gateway.NewRoomRouter()
	relay := gateway.NewTypingRelay(registry, rooms)

	alice := newMockClient("alice", "conn-a")
	bob := newMockClient("bob", "conn-b")
	registry.Register(alice)
	registry.Register(bob)

	relay.Relay(alice, "", "bob", true)

	got := eventsOfType(bob.DrainEvents(), models.EventTyping)
	assert.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Typing.UserID)
	assert.True(t, got[0].Typing.IsTyping)

	relay.Relay(alice, "", "bob", false)
	got = eventsOfType(bob.DrainEvents(), models.EventTyping)
	assert.Len(t, got, 1)
	assert.False(t, got[0].Typing.IsTyping)
}

func TestTyping_RoomSignalExcludesSender(t *testing.T) {
	registry := gateway.NewSessionRegistry()
	rooms := gateway.NewRoomRouter()
	relay := gateway.NewTypingRelay(registry, rooms)

	alice := newMockClient("alice", "conn-a")
	bob := newMockClient("bob", "conn-b")
	carol := newMockClient("carol", "conn-c")
	for _, c := range []*MockClient{alice, bob, carol} {
		registry.Register(c)
		rooms.Join(c, "room-1")
	}

	relay.Relay(alice, "room-1", "", true)

	assert.Empty(t, alice.DrainEvents())
	assert.Len(t, eventsOfType(bob.DrainEvents(), models.EventTyping), 1)
	assert.Len(t, eventsOfType(carol.DrainEvents(), models.EventTyping), 1)
}

func TestTyping_NoLiveRecipientIsSilentlyDropped(t *testing.T) {
	registry := gateway.NewSessionRegistry()
	rooms := gateway.NewRoomRouter()
	relay := gateway.NewTypingRelay(registry, rooms)

	alice := newMockClient("alice", "conn-a")
	registry.Register(alice)

	// Offline direct target and an empty room: both produce nothing,
	// and neither is an error back to the sender.
	relay.Relay(alice, "", "ghost", true)
	relay.Relay(alice, "empty-room", "", true)

	assert.Empty(t, alice.DrainEvents())
}
