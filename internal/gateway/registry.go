package gateway

import "sync"

// SessionRegistry maps a user identity to at most one live connection.
// It is constructed once at startup and shared by reference with every
// component that resolves recipients.
type SessionRegistry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{clients: make(map[string]Client)}
}

// Register stores the mapping for the client's user, overwriting any
// existing entry, and returns the superseded client if there was one.
// The caller decides whether the takeover matters.
func (r *SessionRegistry) Register(c Client) Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.clients[c.GetUserID()]
	r.clients[c.GetUserID()] = c
	return prev
}

// Deregister removes the mapping only if it still points at the given
// client, so a stale disconnect can never evict a newer connection for
// the same user. Returns whether removal happened.
func (r *SessionRegistry) Deregister(c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.clients[c.GetUserID()]
	if !ok || current.GetConnID() != c.GetConnID() {
		return false
	}
	delete(r.clients, c.GetUserID())
	return true
}

// Lookup resolves a user to their live connection, if any.
func (r *SessionRegistry) Lookup(userID string) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[userID]
	return c, ok
}

// Snapshot returns the currently registered clients. The slice is a
// copy; callers may iterate it without holding any lock.
func (r *SessionRegistry) Snapshot() []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

// Len returns the number of registered users.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
