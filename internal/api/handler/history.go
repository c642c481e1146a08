package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDirectHistory returns the direct messages between the
// authenticated user and :userId, oldest first. This is the fetch
// half of store-and-forward: whatever a recipient missed while
// offline comes back here.
func (h *Handler) GetDirectHistory(c *gin.Context) {
	userID, err := h.Auth.Verify(bearerToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	messages, err := h.Storage.GetDirectHistory(userID, c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetRoomHistory returns a room's messages, oldest first.
func (h *Handler) GetRoomHistory(c *gin.Context) {
	if _, err := h.Auth.Verify(bearerToken(c)); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	messages, err := h.Storage.GetRoomHistory(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetUserStatus returns a user's presence state from the cache the
// gateway maintains on every online/offline transition.
func (h *Handler) GetUserStatus(c *gin.Context) {
	if _, err := h.Auth.Verify(bearerToken(c)); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	status, lastSeen, err := h.Storage.GetUserStatus(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load status"})
		return
	}
	if status == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":   c.Param("userId"),
		"status":    status,
		"last_seen": lastSeen,
	})
}

// Healthz reports process liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
