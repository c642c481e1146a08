package handler

import (
	"strings"

	"chatwave/backend/internal/auth"
	"chatwave/backend/internal/gateway"
	"chatwave/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler holds the gateway and its collaborators for the HTTP surface.
type Handler struct {
	Gateway *gateway.Gateway
	Auth    *auth.Authenticator
	Storage storage.Storage
}

func NewHandler(gw *gateway.Gateway, a *auth.Authenticator, s storage.Storage) *Handler {
	return &Handler{Gateway: gw, Auth: a, Storage: s}
}

// bearerToken extracts the credential from the Authorization header,
// falling back to the token query parameter for browser websocket
// clients, which cannot set headers on the upgrade request.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return c.Query("token")
}
