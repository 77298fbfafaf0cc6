package config

import "os"

// Config collects everything the backend reads from the environment.
// Defaults match local docker-compose development.
type Config struct {
	Port          string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
}

func Load() Config {
	return Config{
		Port:          getenv("PORT", "8080"),
		DatabaseDSN:   getenv("DATABASE_DSN", "host=localhost user=user password=password dbname=devlinkerdb port=5432 sslmode=disable"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
