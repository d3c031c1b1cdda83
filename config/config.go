package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults mirror the hosted model pair the analyzer was built against.
const (
	DEFAULT_SENTIMENT_MODEL = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	DEFAULT_FALLBACK_MODEL  = "cardiffnlp/twitter-roberta-base-sentiment"
	DEFAULT_OPENAI_MODEL    = "gpt-3.5-turbo-1106"

	DEFAULT_SCRAPER_TIMEOUT   = 30 * time.Second
	DEFAULT_SCRAPER_DELAY     = 2 * time.Second
	DEFAULT_COMMENTS_PER_PAGE = 50

	// Warn only when an entire batch failed to classify.
	DEFAULT_FAILURE_WARN_RATIO = 1.0
)

type InstagramCredentials struct {
	SessionID string
	UserID    string
	CSRFToken string
	MID       string
}

// Complete reports whether every named session secret is present.
func (c InstagramCredentials) Complete() bool {
	return c.SessionID != "" && c.UserID != "" && c.CSRFToken != "" && c.MID != ""
}

type Config struct {
	Backend          string // vader, huggingface, openai
	SentimentModel   string
	FallbackModel    string
	HuggingFaceToken string
	OpenAIModel      string

	ScraperTimeout  time.Duration
	ScraperDelay    time.Duration
	CommentsPerPage int
	Instagram       InstagramCredentials

	Workers          int
	FailureWarnRatio float64

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
}

// FromEnv builds a Config from the process environment, falling back to
// defaults for anything unset.
func FromEnv() Config {
	return Config{
		Backend:          envOr("SENTIMENT_BACKEND", "vader"),
		SentimentModel:   envOr("SENTIMENT_MODEL", DEFAULT_SENTIMENT_MODEL),
		FallbackModel:    envOr("SENTIMENT_FALLBACK_MODEL", DEFAULT_FALLBACK_MODEL),
		HuggingFaceToken: os.Getenv("HUGGINGFACE_API_TOKEN"),
		OpenAIModel:      envOr("OPENAI_MODEL", DEFAULT_OPENAI_MODEL),

		ScraperTimeout:  envDuration("SCRAPER_TIMEOUT", DEFAULT_SCRAPER_TIMEOUT),
		ScraperDelay:    envDuration("SCRAPER_DELAY", DEFAULT_SCRAPER_DELAY),
		CommentsPerPage: envInt("MAX_COMMENTS_PER_REQUEST", DEFAULT_COMMENTS_PER_PAGE),
		Instagram: InstagramCredentials{
			SessionID: os.Getenv("INSTAGRAM_SESSION_ID"),
			UserID:    os.Getenv("INSTAGRAM_DS_USER_ID"),
			CSRFToken: os.Getenv("INSTAGRAM_CSRF_TOKEN"),
			MID:       os.Getenv("INSTAGRAM_MID"),
		},

		Workers:          envInt("PIPELINE_WORKERS", 1),
		FailureWarnRatio: envFloat("PIPELINE_FAILURE_WARN_RATIO", DEFAULT_FAILURE_WARN_RATIO),

		ValkeyAddress:  os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:      os.Getenv("VALKEY_TLS") == "true",
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
