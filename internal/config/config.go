package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	CORSOrigins []string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	IdentityCacheTTL time.Duration
	PlanTimezone     string

	AI AIConfig
}

// AIConfig selects and parameterizes the chat completion provider.
type AIConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         fallback(os.Getenv("PORT"), "8080"),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		DBDriver:     strings.ToLower(fallback(os.Getenv("DB_DRIVER"), DriverPostgres)),
		DatabaseURL:  fallback(os.Getenv("POSTGRES_URL"), os.Getenv("DATABASE_URL")),
		SQLitePath:   fallback(os.Getenv("SQLITE_PATH"), "travel.db"),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:    fallback(os.Getenv("JWT_ISSUER"), "ai-travel-planner"),
		JWTTTL:       parseMinutes(os.Getenv("JWT_TTL_MINUTES"), 24*time.Hour),
		PlanTimezone: fallback(os.Getenv("PLAN_TIMEZONE"), "Asia/Shanghai"),
		AI:           loadAI(),
	}

	cfg.IdentityCacheTTL = time.Minute
	if raw := strings.TrimSpace(os.Getenv("IDENTITY_CACHE_TTL_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
			cfg.IdentityCacheTTL = time.Duration(secs) * time.Second
		}
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("POSTGRES_URL or DATABASE_URL is required")
		}
	case DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.AI.Provider != ProviderOpenAI && cfg.AI.Provider != ProviderGemini {
		return Config{}, fmt.Errorf("unsupported AI_PROVIDER %q, use 'openai' or 'gemini'", cfg.AI.Provider)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Location resolves PlanTimezone, falling back to a fixed +08:00 zone.
func (c Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.PlanTimezone); err == nil {
		return loc
	}
	return time.FixedZone("CST", 8*3600)
}

func loadAI() AIConfig {
	provider := strings.ToLower(fallback(os.Getenv("AI_PROVIDER"), ProviderOpenAI))

	ai := AIConfig{
		Provider:    provider,
		APIKey:      strings.TrimSpace(os.Getenv("AI_API_KEY")),
		BaseURL:     strings.TrimSpace(os.Getenv("AI_BASE_URL")),
		Model:       strings.TrimSpace(os.Getenv("AI_MODEL")),
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	switch provider {
	case ProviderOpenAI:
		ai.APIKey = fallback(ai.APIKey, os.Getenv("OPENAI_API_KEY"))
		ai.Model = fallback(ai.Model, "gpt-4o-mini")
	case ProviderGemini:
		ai.APIKey = fallback(ai.APIKey, os.Getenv("GEMINI_API_KEY"))
		ai.Model = fallback(ai.Model, "gemini-1.5-flash")
	}

	if raw := strings.TrimSpace(os.Getenv("AI_TEMPERATURE")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 32); err == nil && v >= 0 {
			ai.Temperature = float32(v)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("AI_MAX_TOKENS")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			ai.MaxTokens = v
		}
	}

	return ai
}

func parseMinutes(raw string, def time.Duration) time.Duration {
	if minutes, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	return def
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return strings.TrimSpace(def)
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
