package gateway

import (
	"errors"
	"log"

	"chatwave/backend/internal/models"
	"chatwave/backend/internal/storage"
)

// Gateway owns the shared connection state and orchestrates the
// per-connection components. One instance is constructed at process
// start and injected into the transport handlers; there is no
// module-level state anywhere in this package.
type Gateway struct {
	Registry *SessionRegistry
	Rooms    *RoomRouter
	Presence *PresenceTracker

	dispatcher *Dispatcher
	typing     *TypingRelay
	store      storage.Storage
}

func New(store storage.Storage) *Gateway {
	registry := NewSessionRegistry()
	rooms := NewRoomRouter()
	g := &Gateway{
		Registry:   registry,
		Rooms:      rooms,
		Presence:   NewPresenceTracker(registry, store),
		dispatcher: NewDispatcher(registry, rooms, store),
		typing:     NewTypingRelay(registry, rooms),
		store:      store,
	}
	g.dispatcher.SetOverflowHandler(g.Disconnect)
	return g
}

// Connect admits an authenticated client: registers it and, if the
// user was previously absent, announces the online transition. A
// second login for the same user supersedes the registry entry and
// closes the superseded connection's outbound queue, so no further
// events reach it; the old transport winds down on its own and its
// eventual deregister is a no-op.
func (g *Gateway) Connect(c Client) {
	if user, err := g.store.GetUserByID(c.GetUserID()); err != nil {
		log.Printf("WARNING: user lookup failed for %s: %v", c.GetUserID(), err)
	} else if user == nil {
		log.Printf("WARNING: connection for unknown user %s", c.GetUserID())
	}

	prev := g.Registry.Register(c)
	if prev != nil {
		log.Printf("session takeover for user %s: conn %s supersedes %s",
			c.GetUserID(), c.GetConnID(), prev.GetConnID())
		prev.Close()
		return
	}
	g.Presence.UserOnline(c.GetUserID())
}

// Disconnect tears a connection down: the registry entry (if still
// ours) and every room subscription are gone before this returns, so
// no later lookup can resolve the dead handle. Must be called exactly
// once, from the connection's own read pump, before it exits.
func (g *Gateway) Disconnect(c Client) {
	removed := g.Registry.Deregister(c)
	g.Rooms.DropAll(c)
	c.Close()
	if removed {
		g.Presence.UserOffline(c.GetUserID())
	}
}

// HandleFrame processes one inbound frame from the client's read
// pump. Intent rejections come back to the sender as a single error
// event; they never close the connection.
func (g *Gateway) HandleFrame(c Client, frame models.ClientFrame) {
	switch frame.Type {
	case models.FrameJoinRoom:
		if frame.RoomID == "" {
			return
		}
		g.Rooms.Join(c, frame.RoomID)
		log.Printf("user %s joined room %s", c.GetUserID(), frame.RoomID)

	case models.FrameLeaveRoom:
		if frame.RoomID == "" {
			return
		}
		g.Rooms.Leave(c, frame.RoomID)
		log.Printf("user %s left room %s", c.GetUserID(), frame.RoomID)

	case models.FrameDirectMessage:
		g.dispatch(c, models.MessageIntent{
			SenderID:   c.GetUserID(),
			ReceiverID: frame.ReceiverID,
			Content:    frame.Content,
			Kind:       frame.Kind,
		})

	case models.FrameRoomMessage:
		g.dispatch(c, models.MessageIntent{
			SenderID: c.GetUserID(),
			RoomID:   frame.RoomID,
			Content:  frame.Content,
			Kind:     frame.Kind,
		})

	case models.FrameTyping:
		g.typing.Relay(c, frame.RoomID, frame.ReceiverID, frame.IsTyping)

	default:
		log.Printf("ignoring unknown frame type %q from user %s", frame.Type, c.GetUserID())
	}
}

func (g *Gateway) dispatch(c Client, intent models.MessageIntent) {
	err := g.dispatcher.Dispatch(c, intent)
	if err == nil {
		return
	}

	var pe *PersistenceError
	switch {
	case errors.Is(err, ErrMalformedIntent), errors.Is(err, ErrEmptyContent):
		c.TrySend(models.NewErrorEvent(err.Error()))
	case errors.As(err, &pe):
		log.Printf("ERROR: %v", pe)
		c.TrySend(models.NewErrorEvent("failed to send message"))
	default:
		log.Printf("ERROR: dispatch for user %s: %v", c.GetUserID(), err)
		c.TrySend(models.NewErrorEvent("failed to send message"))
	}
}
