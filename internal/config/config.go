package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	BaseURL     string // token issuer, the deployment's public base URL
	CORSOrigins string
}

func Load() *Config {
	// .env is optional, real deployments set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=warung port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set. Refusing to start.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters.")
	}
	if cfg.BaseURL == "http://localhost:3000" {
		log.Println("[WARN] BASE_URL is using the default value; tokens will be issued for localhost.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
