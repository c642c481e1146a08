package gateway_test

import (
	"testing"

	"chatwave/backend/internal/gateway"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := gateway.NewSessionRegistry()
	conn := newMockClient("alice", "conn-1")

	prev := registry.Register(conn)
	assert.Nil(t, prev)

	got, ok := registry.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn-1", got.GetConnID())

	_, ok = registry.Lookup("bob")
	assert.False(t, ok)
}

func TestRegistry_TakeoverKeepsOneEntryPerUser(t *testing.T) {
	registry := gateway.NewSessionRegistry()
	first := newMockClient("alice", "conn-1")
	second := newMockClient("alice", "conn-2")

	registry.Register(first)
	prev := registry.Register(second)

	assert.Equal(t, "conn-1", prev.GetConnID())
	assert.Equal(t, 1, registry.Len())

	got, ok := registry.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn-2", got.GetConnID())
}

func TestRegistry_StaleDeregisterDoesNotEvictNewerConnection(t *testing.T) {
	registry := gateway.NewSessionRegistry()
	first := newMockClient("alice", "conn-1")
	second := newMockClient("alice", "conn-2")

	registry.Register(first)
	registry.Register(second)

	// The superseded connection disconnects late; its deregister must
	// not remove the live entry.
	assert.False(t, registry.Deregister(first))

	got, ok := registry.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "conn-2", got.GetConnID())

	assert.True(t, registry.Deregister(second))
	_, ok = registry.Lookup("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}
