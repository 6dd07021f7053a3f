package config

import (
	"os"
	"strings"
	"time"
)

// AI providers that can back question generation
const (
	ProviderGemini  = "gemini"
	ProviderQuizAPI = "quizapi"
	ProviderMock    = "mock"
)

// AIConfig holds question-generation configuration
type AIConfig struct {
	Provider string `json:"provider"`

	APIKey string `json:"-"` // Never serialize
	Model  string `json:"model"`

	QuizAPIURL string `json:"quizApiUrl"`
	QuizAPIKey string `json:"-"`

	TimeoutMS int `json:"timeoutMs"`
}

// DefaultAIConfig returns the AI configuration from the environment
func DefaultAIConfig() *AIConfig {
	cfg := &AIConfig{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		Model:      getEnvOrDefault("GEMINI_MODEL_QUESTIONS", "gemini-2.0-flash"),
		QuizAPIURL: os.Getenv("QUIZ_API_URL"),
		QuizAPIKey: os.Getenv("QUIZ_API_KEY"),
		TimeoutMS:  getEnvAsInt("AI_TIMEOUT_MS", 20000),
	}
	cfg.Provider = resolveProvider(strings.ToLower(os.Getenv("AI_PROVIDER")), cfg)
	return cfg
}

// resolveProvider picks the explicit provider if set, otherwise the first
// one that has credentials.
func resolveProvider(explicit string, cfg *AIConfig) string {
	if explicit != "" {
		return explicit
	}
	switch {
	case cfg.APIKey != "":
		return ProviderGemini
	case cfg.QuizAPIURL != "":
		return ProviderQuizAPI
	default:
		return ProviderMock
	}
}

// IsEnabled returns true if a real AI backend is configured
func (c *AIConfig) IsEnabled() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.APIKey != ""
	case ProviderQuizAPI:
		return c.QuizAPIURL != ""
	default:
		return false
	}
}

// Timeout is the per-request budget for a generation call
func (c *AIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
