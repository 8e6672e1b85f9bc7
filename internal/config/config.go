package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"agrirec/internal/llm"
)

// Config holds the reasoning-service deployment settings. Values come from
// the environment (a local .env is honored); missing credentials fail Load
// so a misconfigured deployment surfaces at startup, not per item.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	Env         string
}

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = ProviderGroq
	}

	cfg := &Config{
		Provider:    provider,
		Model:       strings.TrimSpace(os.Getenv("LLM_MODEL")),
		Temperature: envFloat32("LLM_TEMPERATURE", 0.3),
		MaxTokens:   envInt("LLM_MAX_TOKENS", 1500),
		Timeout:     time.Duration(envInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		Env:         firstNonEmpty(strings.TrimSpace(os.Getenv("APP_ENV")), "local"),
	}

	switch provider {
	case ProviderGroq:
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("config: GROQ_API_KEY environment variable is not set")
		}
		if cfg.Model == "" {
			cfg.Model = llm.DefaultGroqModel
		}
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("config: GEMINI_API_KEY environment variable is not set")
		}
		if cfg.Model == "" {
			cfg.Model = llm.DefaultGeminiModel
		}
	default:
		return nil, fmt.Errorf("config: unknown LLM provider %q", provider)
	}
	return cfg, nil
}

func envFloat32(key string, def float32) float32 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
