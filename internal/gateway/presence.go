package gateway

import (
	"log"
	"sync"

	"chatwave/backend/internal/models"
	"chatwave/backend/internal/storage"
)

// Presence status values, persisted as-is.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// PresenceTracker turns registry transitions into user_status events.
// Every transition is broadcast to all live connections exactly once;
// a takeover (re-registration of an already-online user) emits
// nothing. Offline transitions additionally write last-seen through
// the store.
type PresenceTracker struct {
	registry *SessionRegistry
	store    storage.Storage

	mu   sync.Mutex
	subs []func(models.PresencePayload)
}

func NewPresenceTracker(registry *SessionRegistry, store storage.Storage) *PresenceTracker {
	return &PresenceTracker{registry: registry, store: store}
}

// Subscribe registers a callback invoked on every published
// transition, in publish order. Used by tests and by anything that
// wants presence without a websocket.
func (p *PresenceTracker) Subscribe(fn func(models.PresencePayload)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// UserOnline publishes the online transition for a user.
func (p *PresenceTracker) UserOnline(userID string) {
	p.publish(userID, StatusOnline)
}

// UserOffline publishes the offline transition for a user.
func (p *PresenceTracker) UserOffline(userID string) {
	p.publish(userID, StatusOffline)
}

func (p *PresenceTracker) publish(userID, status string) {
	// Store write first so an immediate history/roster fetch by any
	// recipient of the broadcast observes the new state. A failure is
	// logged and does not suppress the broadcast.
	if err := p.store.SetUserStatus(userID, status); err != nil {
		log.Printf("ERROR: failed to persist %s status for %s: %v", status, userID, err)
	}

	payload := models.PresencePayload{UserID: userID, Status: status}

	p.mu.Lock()
	subs := make([]func(models.PresencePayload), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()
	for _, fn := range subs {
		fn(payload)
	}

	// Best-effort fan-out: one full or closed connection never blocks
	// delivery to the rest.
	ev := models.NewStatusEvent(userID, status)
	for _, c := range p.registry.Snapshot() {
		if !c.TrySend(ev) {
			log.Printf("WARNING: dropped user_status for %s to conn %s", userID, c.GetConnID())
		}
	}
}
