package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ramotsav.com/project-ramotsav/logger"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
	Timezone string `env:"APP_TIMEZONE,default=Asia/Kolkata"`

	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=ramotsav"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=12h"`

	JWTSecret string        `env:"JWT_SECRET,default=change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=720h"`

	GeminiAPIKey string        `env:"API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL,default=gemini-3-flash-preview"`
	AITimeout    time.Duration `env:"AI_TIMEOUT,default=60s"`
	AIRate       float64       `env:"AI_REQUESTS_PER_SECOND,default=0.5"`
	AIBurst      int           `env:"AI_BURST,default=3"`
	DarshanImage string        `env:"DARSHAN_IMAGE_PATH"`

	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	JaapReminderSpec        string `env:"JAAP_REMINDER_CRON,default=0 21 * * *"`
	StreakReminderSpec      string `env:"STREAK_REMINDER_CRON,default=0 12 * * *"`

	MinioEndpoint       string `env:"MINIO_INTERNAL_ENDPOINT"`
	MinioPublicEndpoint string `env:"MINIO_PUBLIC_ENDPOINT"`
	MinioAccessKey      string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey      string `env:"MINIO_SECRET_KEY"`
	MinioBucket         string `env:"MINIO_BUCKET,default=ramotsav-media"`
	MinioSecure         bool   `env:"MINIO_SECURE,default=false"`

	LiveStreamURL         string `env:"LIVE_STREAM_URL,default=https://storage.googleapis.com/static.aiforkids.com/ramotsav/ram_aarti.mp4"`
	LeaderboardRealTotals bool   `env:"LEADERBOARD_REAL_TOTALS,default=false"`
}

// Load reads .env (if present) and decodes the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("could not load .env file", zap.Error(err))
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
