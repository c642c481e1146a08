package storage

import (
	"errors"
	"fmt"
	"log"
	"time"

	"chatwave/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateMessage persists the intent and returns the representation
// that gets delivered to clients: the stored row joined with the
// sender's profile projection.
func (s *Service) CreateMessage(intent models.MessageIntent) (*models.MessageView, error) {
	msg := models.Message{
		SenderID: intent.SenderID,
		Content:  intent.Content,
		Kind:     intent.Kind,
	}
	if intent.ReceiverID != "" {
		msg.ReceiverID = &intent.ReceiverID
	}
	if intent.RoomID != "" {
		msg.RoomID = &intent.RoomID
	}

	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: failed to save message from %s: %v", intent.SenderID, err)
		return nil, fmt.Errorf("create message: %w", err)
	}

	view := models.MessageView{
		ID:         msg.ID,
		Sender:     models.Profile{ID: msg.SenderID},
		ReceiverID: intent.ReceiverID,
		RoomID:     intent.RoomID,
		Content:    msg.Content,
		Kind:       msg.Kind,
		CreatedAt:  msg.CreatedAt,
	}

	// Attach the sender projection. A missing user row is tolerated:
	// the message is already stored, the event just carries a bare ID.
	sender, err := s.GetUserByID(intent.SenderID)
	if err != nil {
		log.Printf("WARNING: sender %s has no user row: %v", intent.SenderID, err)
	} else if sender != nil {
		view.Sender = sender.Profile()
	}

	return &view, nil
}

// SetUserStatus writes the presence transition to PostgreSQL and
// mirrors it into Redis. Going offline also stamps last seen.
func (s *Service) SetUserStatus(userID, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == "offline" {
		updates["last_seen"] = time.Now()
	}

	if err := s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("set user status: %w", err)
	}

	if err := s.Redis.Set(s.Ctx, "status:"+userID, status, 0).Err(); err != nil {
		// Redis is a cache here; postgres already has the truth.
		log.Printf("WARNING: failed to cache status for %s: %v", userID, err)
	}
	if status == "offline" {
		if err := s.Redis.Set(s.Ctx, "lastseen:"+userID, time.Now().Unix(), 0).Err(); err != nil {
			log.Printf("WARNING: failed to cache last seen for %s: %v", userID, err)
		}
	}
	return nil
}

// GetUserStatus reads a user's presence from the Redis cache the
// gateway maintains, falling back to the user row when the cache is
// cold. An empty status means the user is unknown.
func (s *Service) GetUserStatus(userID string) (string, *time.Time, error) {
	status, err := s.Redis.Get(s.Ctx, "status:"+userID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", nil, fmt.Errorf("get user status: %w", err)
	}

	var lastSeen *time.Time
	if ts, err := s.Redis.Get(s.Ctx, "lastseen:"+userID).Int64(); err == nil {
		t := time.Unix(ts, 0)
		lastSeen = &t
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("WARNING: failed to read last seen for %s: %v", userID, err)
	}

	if status != "" {
		return status, lastSeen, nil
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, nil
	}
	return user.Status, user.LastSeen, nil
}

// GetUserByID returns the user row, or (nil, nil) when none exists.
func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetDirectHistory returns the direct messages between two users in
// creation order and marks the other party's messages as read by the
// requesting user.
func (s *Service) GetDirectHistory(userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: failed to load direct history %s<->%s: %v", userID, otherID, err)
		return nil, err
	}

	if err := s.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND NOT (? = ANY(read_by))", otherID, userID, userID).
		Update("read_by", gorm.Expr("array_append(read_by, ?)", userID)).Error; err != nil {
		log.Printf("WARNING: failed to mark direct history read for %s: %v", userID, err)
	}

	return messages, nil
}

// GetRoomHistory returns a room's messages in creation order.
func (s *Service) GetRoomHistory(roomID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: failed to load history for room %s: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}
