package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"Backend-Survey-Engine/src/logger"

	"github.com/joho/godotenv"
)

// Config is read once at startup from the environment (and .env when present).
type Config struct {
	AppURI           string
	MongoURI         string
	MongoDB          string
	RedisURI         string
	JWTSecret        string
	AllowedOrigins   string
	LogLevel         string
	MessagesLang     string
	RunWorker        bool
	SessionLockTTL   time.Duration
	ConflictAttempts int
}

// Load reads the configuration. A missing .env file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warnf("⚠️ Warning: No .env file found")
	}

	return &Config{
		AppURI:           getEnv("APP_URI", "8888"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "SurveyDB"),
		RedisURI:         os.Getenv("REDIS_URI"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "*"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MessagesLang:     getEnv("MESSAGES_LANG", "en"),
		RunWorker:        getBool("RUN_WORKER", false),
		SessionLockTTL:   time.Duration(getInt("SESSION_LOCK_TTL_MS", 5000)) * time.Millisecond,
		ConflictAttempts: getInt("CONFLICT_ATTEMPTS", 3),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warnf("⚠️ %s=%q is not a positive integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
