package handler

import (
	"errors"
	"net/http"

	"chatwave/backend/internal/auth"
	"chatwave/backend/internal/gateway"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates the credential and upgrades the
// connection. Any credential failure rejects the attempt before any
// gateway state exists for it.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID, err := h.Auth.Verify(bearerToken(c))
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrMissingCredential) {
			c.AbortWithStatusJSON(status, gin.H{"error": "authorization token missing"})
			return
		}
		if errors.Is(err, auth.ErrExpiredCredential) {
			c.AbortWithStatusJSON(status, gin.H{"error": "token expired"})
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := gateway.NewWebSocketClient(h.Gateway, conn, userID)
	h.Gateway.Connect(client)
	client.Run()
}
