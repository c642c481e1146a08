package gateway

import "chatwave/backend/internal/models"

// Client is the interface for a live, authenticated connection. It
// abstracts the underlying transport so the gateway can manage
// websocket connections and test doubles uniformly.
type Client interface {
	// GetUserID returns the authenticated user identity behind the
	// connection. Stable for the connection's whole lifetime.
	GetUserID() string

	// GetConnID returns the opaque per-connection handle. Two
	// connections for the same user have different handles.
	GetConnID() string

	// TrySend queues an event on the connection's bounded outbound
	// buffer without blocking. It returns false when the buffer is
	// full or the connection is already closed; the caller decides
	// what a failed delivery means.
	TrySend(ev models.Event) bool

	// Run starts the client's read and write pumps.
	Run()

	// Close shuts the outbound queue down. Safe to call more than once.
	Close()
}
