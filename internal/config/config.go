package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret aborts startup: without a signing secret every
// issued token would be forgeable.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	WOL       WOLConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AdminConfig seeds the single admin account on first boot.
type AdminConfig struct {
	Username string
	Password string
}

type WOLConfig struct {
	BroadcastAddr string
	Port          int
	Timeout       time.Duration
}

type RateLimitConfig struct {
	LoginWindow time.Duration
	LoginMax    int
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "production"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "wakeboard"),
			Password: getEnv("DB_PASSWORD", "wakeboard"),
			DBName:   getEnv("DB_NAME", "wakeboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getDurationEnv("JWT_TTL", 24*time.Hour),
			Issuer: getEnv("JWT_ISSUER", "wakeboard"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "changeme"),
		},
		WOL: WOLConfig{
			BroadcastAddr: getEnv("WOL_BROADCAST_ADDR", "255.255.255.255"),
			Port:          getIntEnv("WOL_PORT", 9),
			Timeout:       getDurationEnv("WOL_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			LoginWindow: getDurationEnv("RATE_LIMIT_LOGIN_WINDOW", time.Minute),
			LoginMax:    getIntEnv("RATE_LIMIT_LOGIN_MAX", 10),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// IsDevelopment controls whether stack traces are included in error responses.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
