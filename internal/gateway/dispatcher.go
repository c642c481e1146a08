package gateway

import (
	"log"
	"strings"

	"chatwave/backend/internal/models"
	"chatwave/backend/internal/storage"
)

// Dispatcher accepts message intents, persists them, and fans the
// persisted representation out to the right live connections. It is
// the only component that writes messages through the store.
type Dispatcher struct {
	registry *SessionRegistry
	rooms    *RoomRouter
	store    storage.Storage

	// evict tears down a connection whose outbound queue overflowed.
	evict func(Client)
}

func NewDispatcher(registry *SessionRegistry, rooms *RoomRouter, store storage.Storage) *Dispatcher {
	return &Dispatcher{registry: registry, rooms: rooms, store: store}
}

// SetOverflowHandler installs the teardown invoked when a message
// cannot be queued because the recipient's buffer is full. A
// connection that far behind is disconnected rather than allowed to
// lose messages indefinitely.
func (d *Dispatcher) SetOverflowHandler(fn func(Client)) {
	d.evict = fn
}

// Dispatch validates, persists, and delivers one intent. Each client
// calls it from its own read pump, so messages from a single sender to
// a single destination are dispatched in submission order.
//
// A returned error means the sender should see a single error event
// and nobody else saw anything: validation errors fail before any
// persistence attempt, and a PersistenceError fails before any
// broadcast. Per-recipient delivery failures are logged and swallowed;
// the recipient catches up from history instead.
func (d *Dispatcher) Dispatch(sender Client, intent models.MessageIntent) error {
	if (intent.ReceiverID != "") == (intent.RoomID != "") {
		return ErrMalformedIntent
	}
	if strings.TrimSpace(intent.Content) == "" {
		return ErrEmptyContent
	}

	view, err := d.store.CreateMessage(intent)
	if err != nil {
		return &PersistenceError{Err: err}
	}

	ev := models.NewMessageEvent(*view)

	if intent.RoomID != "" {
		// Room fan-out includes the sender's own connection when it is
		// a member, so every member shares one delivery path.
		for _, member := range d.rooms.MembersOf(intent.RoomID) {
			d.deliver(member, ev)
		}
		return nil
	}

	// Direct: recipient if online, and always the sender's own
	// connection as acknowledgment. Offline recipients get the message
	// on their next history fetch.
	if recipient, ok := d.registry.Lookup(intent.ReceiverID); ok {
		d.deliver(recipient, ev)
	}
	d.deliver(sender, ev)
	return nil
}

func (d *Dispatcher) deliver(c Client, ev models.Event) {
	if c.TrySend(ev) {
		return
	}
	log.Printf("WARNING: conn %s (user %s) cannot keep up, dropping %s %s and disconnecting",
		c.GetConnID(), c.GetUserID(), ev.Type, ev.Message.ID)
	if d.evict != nil {
		d.evict(c)
	}
}
