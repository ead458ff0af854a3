package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string `validate:"required,numeric"`
	Env      string `validate:"oneof=development production test"`
	LogLevel string `validate:"oneof=debug info warn error"`

	// Frontend
	FrontendURL string

	// AI providers
	GroqAPIKey     string
	OpenAIAPIKey   string
	GeminiAPIKey   string
	GroqModel      string
	OpenAIModel    string
	GeminiModel    string
	ProviderOrder  []string      `validate:"min=1,dive,oneof=groq openai gemini"`
	AITimeout      time.Duration `validate:"gt=0"`
	AIRetryDelay   time.Duration `validate:"gte=0"`
	GroqAttempts   int           `validate:"min=1,max=10"`
	OpenAIAttempts int           `validate:"min=1,max=10"`
	GeminiAttempts int           `validate:"min=1,max=10"`

	// YouTube Data API, used for roadmap and resource search
	YouTubeAPIKey string

	// Redis (optional). When set, cooldowns and websocket fan-out are shared.
	RedisURL string

	// Session state
	SessionMaxVideos int           `validate:"min=1"`
	SessionTTL       time.Duration `validate:"gt=0"`
	RateLimitWindow  time.Duration `validate:"gt=0"`

	// Per-IP requests per minute across the API
	APIRateLimit int `validate:"min=1"`
}

var validate = validator.New()

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8000"),
		Env:              getEnvOrDefault("ENV", "development"),
		LogLevel:         strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "*"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GroqModel:        getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		OpenAIModel:      getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-pro"),
		ProviderOrder:    getEnvAsListOrDefault("AI_PROVIDER_ORDER", []string{"groq", "openai", "gemini"}),
		AITimeout:        getEnvAsDurationOrDefault("AI_TIMEOUT", 60*time.Second),
		AIRetryDelay:     getEnvAsDurationOrDefault("AI_RETRY_DELAY", 3*time.Second),
		GroqAttempts:     getEnvAsIntOrDefault("GROQ_ATTEMPTS", 2),
		OpenAIAttempts:   getEnvAsIntOrDefault("OPENAI_ATTEMPTS", 1),
		GeminiAttempts:   getEnvAsIntOrDefault("GEMINI_ATTEMPTS", 1),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		SessionMaxVideos: getEnvAsIntOrDefault("SESSION_MAX_VIDEOS", 500),
		SessionTTL:       getEnvAsDurationOrDefault("SESSION_TTL", 6*time.Hour),
		RateLimitWindow:  getEnvAsDurationOrDefault("RATE_LIMIT_WINDOW", 10*time.Second),
		APIRateLimit:     getEnvAsIntOrDefault("API_RATE_LIMIT", 120),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AttemptsFor returns the configured attempt count for a provider name.
func (c *Config) AttemptsFor(provider string) int {
	switch provider {
	case "groq":
		return c.GroqAttempts
	case "openai":
		return c.OpenAIAttempts
	case "gemini":
		return c.GeminiAttempts
	default:
		return 1
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or bare seconds.
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}

func getEnvAsListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
