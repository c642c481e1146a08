package gateway

import "chatwave/backend/internal/models"

// TypingRelay forwards ephemeral typing signals. Nothing is persisted
// and nothing is acknowledged: a signal with no live recipient is
// silently dropped.
type TypingRelay struct {
	registry *SessionRegistry
	rooms    *RoomRouter
}

func NewTypingRelay(registry *SessionRegistry, rooms *RoomRouter) *TypingRelay {
	return &TypingRelay{registry: registry, rooms: rooms}
}

// Relay resolves recipients the same way the dispatcher does: via the
// router for rooms, via the registry for direct signals. The sender's
// own connection is excluded for room signals (clients do not need an
// echo of their own typing state).
func (r *TypingRelay) Relay(sender Client, roomID, receiverID string, isTyping bool) {
	ev := models.NewTypingEvent(sender.GetUserID(), isTyping)

	if roomID != "" {
		for _, member := range r.rooms.MembersOf(roomID) {
			if member.GetConnID() == sender.GetConnID() {
				continue
			}
			// Best-effort, same as any delivery; a full buffer just
			// loses a typing blip.
			member.TrySend(ev)
		}
		return
	}

	if receiverID != "" {
		if recipient, ok := r.registry.Lookup(receiverID); ok {
			recipient.TrySend(ev)
		}
	}
}
