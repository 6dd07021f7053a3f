package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Seed sources the question corpus can be loaded from
const (
	SeedEmbedded = "embedded"
	SeedFile     = "file"
	SeedMongo    = "mongo"
)

// Config holds all configuration for the question server
type Config struct {
	Server ServerConfig
	Seed   SeedConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	AI     *AIConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins string
}

// SeedConfig selects where the question corpus comes from
type SeedConfig struct {
	Source string
	File   string
}

// MongoConfig holds MongoDB configuration. An empty URI disables Mongo.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis configuration. An empty URI disables caching.
type RedisConfig struct {
	URI      string
	CacheTTL time.Duration
}

// Load loads configuration from a local .env file, if any, and the environment
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("PORT", 8080),
			AllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),
		},
		Seed: SeedConfig{
			Source: strings.ToLower(getEnvOrDefault("SEED_SOURCE", SeedEmbedded)),
			File:   os.Getenv("SEED_FILE"),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnvOrDefault("MONGO_DATABASE", "interviewprep"),
		},
		Redis: RedisConfig{
			URI:      os.Getenv("REDIS_URI"),
			CacheTTL: getEnvAsDuration("CACHE_TTL", time.Hour),
		},
		AI: DefaultAIConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Seed.Source {
	case SeedEmbedded:
	case SeedFile:
		if c.Seed.File == "" {
			return fmt.Errorf("SEED_FILE is required when SEED_SOURCE=%s", SeedFile)
		}
	case SeedMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when SEED_SOURCE=%s", SeedMongo)
		}
	default:
		return fmt.Errorf("unknown seed source: %q", c.Seed.Source)
	}

	if c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("invalid cache TTL: %s", c.Redis.CacheTTL)
	}

	if c.AI != nil {
		switch c.AI.Provider {
		case ProviderGemini:
			if c.AI.APIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=%s", ProviderGemini)
			}
		case ProviderQuizAPI:
			if c.AI.QuizAPIURL == "" {
				return fmt.Errorf("QUIZ_API_URL is required when AI_PROVIDER=%s", ProviderQuizAPI)
			}
		case ProviderMock:
		default:
			return fmt.Errorf("unknown AI provider: %q", c.AI.Provider)
		}
	}
	return nil
}

// Helper functions

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
