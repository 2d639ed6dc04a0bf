package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every externally supplied setting. It is built once in main
// and handed to the pieces that need it; nothing reads the environment after
// startup.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTExpiration time.Duration

	SMTPHost     string
	SMTPPort     int
	EmailUser    string
	EmailPass    string
	OpenAIAPIKey string

	LogLevel       string
	LogDevelopment bool
}

// Load reads the configuration from the environment. Settings without a safe
// default are required and produce an error when missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnv("MONGO_DB", "paisafy"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		EmailUser:      os.Getenv("EMAIL_USER"),
		EmailPass:      os.Getenv("EMAIL_PASS"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogDevelopment: os.Getenv("GIN_MODE") != "release",
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	expiration := getEnv("JWT_EXPIRATION", "86400")
	seconds, err := strconv.Atoi(expiration)
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION %q", expiration)
	}
	cfg.JWTExpiration = time.Duration(seconds) * time.Second

	smtpPort := getEnv("SMTP_PORT", "587")
	cfg.SMTPPort, err = strconv.Atoi(smtpPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q", smtpPort)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
