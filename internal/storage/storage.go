package storage

import (
	"context"
	"time"

	"chatwave/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the delegated persistence collaborator the gateway
// writes through before any broadcast.
type Storage interface {
	CreateMessage(intent models.MessageIntent) (*models.MessageView, error)
	SetUserStatus(userID, status string) error

	GetUserByID(userID string) (*models.User, error)
	GetUserStatus(userID string) (string, *time.Time, error)
	GetDirectHistory(userID, otherID string) ([]models.Message, error)
	GetRoomHistory(roomID string) ([]models.Message, error)
}

// Service implements Storage over PostgreSQL with a Redis cache for
// presence state, so the CRUD service can answer "who is online"
// without touching the gateway.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
