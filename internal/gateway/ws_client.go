package gateway

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"chatwave/backend/internal/config"
	"chatwave/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketClient is the gorilla/websocket implementation of Client.
// The read pump feeds inbound frames to the gateway; the write pump
// drains the bounded send buffer onto the wire.
type WebSocketClient struct {
	userID string
	connID string
	conn   *websocket.Conn
	gw     *Gateway

	mu     sync.Mutex
	closed bool
	send   chan models.Event
}

func NewWebSocketClient(gw *Gateway, conn *websocket.Conn, userID string) *WebSocketClient {
	return &WebSocketClient{
		userID: userID,
		connID: uuid.New().String(),
		conn:   conn,
		gw:     gw,
		send:   make(chan models.Event, config.SendBufferSize),
	}
}

func (c *WebSocketClient) GetUserID() string { return c.userID }
func (c *WebSocketClient) GetConnID() string { return c.connID }

// TrySend queues an event without blocking. False means the buffer is
// full or the connection is closed; the event is dropped either way.
func (c *WebSocketClient) TrySend(ev models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// Run starts the pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the send channel down, which stops the write pump. The
// read pump stops when the underlying connection is closed.
func (c *WebSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		// Registry and rooms are cleaned up synchronously before the
		// transport goes away, so no dispatch started after this line
		// can resolve this handle.
		c.gw.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from conn %s: %v", c.connID, err)
			}
			break
		}

		var frame models.ClientFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Printf("error decoding frame from user %s: %v", c.userID, err)
			c.TrySend(models.NewErrorEvent("malformed frame"))
			continue
		}

		c.gw.HandleFrame(c, frame)
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("error encoding event for user %s: %v", c.userID, err)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
