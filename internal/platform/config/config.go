// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Verifier backend selection values.
const (
	VerifierBackendRule   = "rule"
	VerifierBackendOpenAI = "openai"
)

// Config holds all environment-driven settings.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`
	HealthPort  int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Database pool
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"10"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"2"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"30s"`

	// Metrics engine
	AgreementCorrected bool          `env:"AGREEMENT_CORRECTED" envDefault:"false"`
	MemoTTL            time.Duration `env:"MEMO_TTL" envDefault:"5m"`
	TopDrivers         int           `env:"TOP_DRIVERS" envDefault:"3"`

	// Peak detection and event correlation
	PeakMinProminence  float64       `env:"PEAK_MIN_PROMINENCE" envDefault:"20"`
	EventWindowDays    int           `env:"EVENT_WINDOW_DAYS" envDefault:"7"`
	EventLookupTimeout time.Duration `env:"EVENT_LOOKUP_TIMEOUT" envDefault:"10s"`
	EventLookupFanout  int           `env:"EVENT_LOOKUP_FANOUT" envDefault:"3"`
	EventMaxResults    int           `env:"EVENT_MAX_RESULTS" envDefault:"5"`

	// Event-search providers
	GDELTEnabled        bool          `env:"GDELT_ENABLED" envDefault:"true"`
	GDELTRequestsPerMin int           `env:"GDELT_REQUESTS_PER_MIN" envDefault:"60"`
	GDELTTimeout        time.Duration `env:"GDELT_TIMEOUT" envDefault:"30s"`
	RSSFeedURLs         []string      `env:"RSS_FEED_URLS" envSeparator:","`
	RSSTimeout          time.Duration `env:"RSS_TIMEOUT" envDefault:"20s"`

	// Disambiguation verifier
	VerifierBackend      string        `env:"VERIFIER_BACKEND" envDefault:"rule"`
	LLMAPIKey            string        `env:"LLM_API_KEY"`
	LLMModel             string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	RateLimitRPS         int           `env:"RATE_LIMIT_RPS" envDefault:"1"`
	VerificationCacheTTL time.Duration `env:"VERIFICATION_CACHE_TTL" envDefault:"48h"`

	// Warm-up batch job
	WarmupEnabled      bool          `env:"WARMUP_ENABLED" envDefault:"false"`
	WarmupInterval     time.Duration `env:"WARMUP_INTERVAL" envDefault:"1h"`
	WarmupBatchSize    int           `env:"WARMUP_BATCH_SIZE" envDefault:"50"`
	WarmupConcurrency  int           `env:"WARMUP_CONCURRENCY" envDefault:"3"`
	WarmupStaleAfter   time.Duration `env:"WARMUP_STALE_AFTER" envDefault:"6h"`
	WarmupItemTimeout  time.Duration `env:"WARMUP_ITEM_TIMEOUT" envDefault:"60s"`
	SnapshotKeepPerKey int           `env:"SNAPSHOT_KEEP_PER_KEY" envDefault:"500"`
}

// Load reads configuration from the environment, applying .env if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
