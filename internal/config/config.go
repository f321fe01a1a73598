package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	CORSAllowedOrigins string
	OverdueWebhookURL  string
}

// Load reads the process environment (optionally seeded from a .env file)
// and applies defaults for everything that can safely default.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         os.Getenv("SERVER_PORT"),
		CORSAllowedOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
		OverdueWebhookURL:  os.Getenv("OVERDUE_WEBHOOK_URL"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.CORSAllowedOrigins == "" {
		cfg.CORSAllowedOrigins = "*"
	}
	if os.Getenv("AUTH_JWT_SECRET") == "" {
		log.Fatal("AUTH_JWT_SECRET is not set")
	}

	return cfg
}
