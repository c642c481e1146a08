package models

import "time"

// Inbound frame types accepted over the websocket.
const (
	FrameJoinRoom      = "join_room"
	FrameLeaveRoom     = "leave_room"
	FrameDirectMessage = "direct_message"
	FrameRoomMessage   = "room_message"
	FrameTyping        = "typing"
)

// Outbound event types.
const (
	EventDirectMessage = "direct_message"
	EventRoomMessage   = "room_message"
	EventUserStatus    = "user_status"
	EventTyping        = "typing"
	EventError         = "error"
)

// ClientFrame is the JSON envelope a client writes on the socket.
// Which fields matter depends on Type.
type ClientFrame struct {
	Type       string `json:"type"`
	RoomID     string `json:"room_id,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Content    string `json:"content,omitempty"`
	Kind       string `json:"kind,omitempty"`
	IsTyping   bool   `json:"is_typing,omitempty"`
}

// MessageIntent is what the dispatcher consumes: a not-yet-persisted
// message with exactly one destination set. Empty string means unset.
type MessageIntent struct {
	SenderID   string
	ReceiverID string
	RoomID     string
	Content    string
	Kind       string
}

// MessageView is the persisted message representation delivered to
// clients: the stored row plus the sender's profile projection.
type MessageView struct {
	ID         string    `json:"id"`
	Sender     Profile   `json:"sender"`
	ReceiverID string    `json:"receiver_id,omitempty"`
	RoomID     string    `json:"room_id,omitempty"`
	Content    string    `json:"content"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// PresencePayload carries an online/offline transition.
type PresencePayload struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// TypingPayload carries an ephemeral typing signal.
type TypingPayload struct {
	UserID   string `json:"user_id"`
	IsTyping bool   `json:"is_typing"`
}

// Event is the JSON envelope the gateway writes on the socket.
// Exactly one payload field is populated, selected by Type.
type Event struct {
	Type     string           `json:"type"`
	Message  *MessageView     `json:"message,omitempty"`
	Presence *PresencePayload `json:"presence,omitempty"`
	Typing   *TypingPayload   `json:"typing,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// NewMessageEvent wraps a persisted message. The event type mirrors
// the destination: room messages fan out as room_message, everything
// else as direct_message.
func NewMessageEvent(view MessageView) Event {
	t := EventDirectMessage
	if view.RoomID != "" {
		t = EventRoomMessage
	}
	return Event{Type: t, Message: &view}
}

func NewStatusEvent(userID, status string) Event {
	return Event{Type: EventUserStatus, Presence: &PresencePayload{UserID: userID, Status: status}}
}

func NewTypingEvent(userID string, isTyping bool) Event {
	return Event{Type: EventTyping, Typing: &TypingPayload{UserID: userID, IsTyping: isTyping}}
}

func NewErrorEvent(msg string) Event {
	return Event{Type: EventError, Error: msg}
}
