package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the screening service reads from the
// environment. Zero infrastructure values select in-memory fallbacks so the
// binary runs standalone.
type Config struct {
	Addr string

	PostgresDSN string

	RedisAddr    string
	WatchlistTTL time.Duration

	KafkaBrokers    []string
	PaymentsTopic   string
	ResultsTopic    string
	ConsumerGroup   string
	ConsumerWorkers int

	FuzzyThreshold    float64
	SemanticThreshold float64
	ReviewThreshold   float64
	BlockThreshold    float64

	ScreenTimeout time.Duration
	LatencyWindow int

	ModelBundleDir string
	SeedFile       string
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:              envString("VIGIL_ADDR", ":8080"),
		PostgresDSN:       os.Getenv("VIGIL_POSTGRES_DSN"),
		RedisAddr:         os.Getenv("VIGIL_REDIS_ADDR"),
		WatchlistTTL:      envDuration("VIGIL_WATCHLIST_TTL", 5*time.Minute),
		KafkaBrokers:      envList("VIGIL_KAFKA_BROKERS"),
		PaymentsTopic:     envString("VIGIL_PAYMENTS_TOPIC", "payments.inbound"),
		ResultsTopic:      envString("VIGIL_RESULTS_TOPIC", "payments.screened"),
		ConsumerGroup:     envString("VIGIL_CONSUMER_GROUP", "vigil-screening"),
		ConsumerWorkers:   envInt("VIGIL_CONSUMER_WORKERS", 4),
		FuzzyThreshold:    envFloat("VIGIL_FUZZY_THRESHOLD", 0.8),
		SemanticThreshold: envFloat("VIGIL_SEMANTIC_THRESHOLD", 0.85),
		ReviewThreshold:   envFloat("VIGIL_REVIEW_THRESHOLD", 0.7),
		BlockThreshold:    envFloat("VIGIL_BLOCK_THRESHOLD", 0.9),
		ScreenTimeout:     envDuration("VIGIL_SCREEN_TIMEOUT", 10*time.Second),
		LatencyWindow:     envInt("VIGIL_LATENCY_WINDOW", 1000),
		ModelBundleDir:    os.Getenv("VIGIL_MODEL_BUNDLE_DIR"),
		SeedFile:          os.Getenv("VIGIL_WATCHLIST_SEED_FILE"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
