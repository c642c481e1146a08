package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"chatwave/backend/internal/api/handler"
	"chatwave/backend/internal/auth"
	"chatwave/backend/internal/config"
	"chatwave/backend/internal/gateway"
	"chatwave/backend/internal/models"
	"chatwave/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting ChatWave gateway...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	gw := gateway.New(s)
	authenticator := auth.NewAuthenticator(cfg.JWTSecret)

	r := gin.Default()
	h := handler.NewHandler(gw, authenticator, s)

	r.GET("/ws", h.ServeWebSocket)
	r.GET("/history/direct/:userId", h.GetDirectHistory)
	r.GET("/history/room/:roomId", h.GetRoomHistory)
	r.GET("/status/:userId", h.GetUserStatus)
	r.GET("/healthz", h.Healthz)

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(server.ListenAndServe())
}
