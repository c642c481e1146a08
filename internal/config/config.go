package config

import (
	"os"
	"time"
)

// Gateway tuning constants.
const (
	// WriteWait is the allowance for a single websocket write.
	WriteWait = 10 * time.Second
	// PongWait is how long a connection may stay silent before the
	// read side gives up on it.
	PongWait   = 60 * time.Second
	PingPeriod = (PongWait * 9) / 10
	// MaxMessageSize bounds a single inbound frame.
	MaxMessageSize = 4096
	// SendBufferSize is the per-connection outbound queue. A client
	// that falls this far behind is disconnected rather than allowed
	// to stall dispatch to everyone else.
	SendBufferSize = 256
)

// Config holds everything read from the environment at startup.
type Config struct {
	Addr        string
	PostgresDSN string
	RedisAddr   string
	JWTSecret   string
}

// Load reads the configuration from environment variables, falling
// back to the docker-compose defaults.
func Load() Config {
	return Config{
		Addr:        getEnv("ADDR", ":8080"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=user password=password dbname=chatwavedb port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
