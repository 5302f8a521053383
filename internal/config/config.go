package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the chat server.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"deskchat-server"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DatabaseURL    string        `env:"DATABASE_URL"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// HistoryReplayLimit is the number of messages replayed to a freshly
	// connected client.
	HistoryReplayLimit int `env:"HISTORY_REPLAY_LIMIT" envDefault:"50"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// UpstreamTimeout bounds every outbound call to the LLM and the search
	// providers. Feed fetches share the same budget.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"20s"`

	BlobS3Bucket       string `env:"BLOB_S3_BUCKET"`
	BlobS3Region       string `env:"BLOB_S3_REGION" envDefault:"us-east-1"`
	BlobS3Endpoint     string `env:"BLOB_S3_ENDPOINT"`
	BlobS3AccessKeyID  string `env:"BLOB_S3_ACCESS_KEY_ID"`
	BlobS3SecretKey    string `env:"BLOB_S3_SECRET_KEY"`
	BlobS3UsePathStyle bool   `env:"BLOB_S3_USE_PATH_STYLE" envDefault:"true"`

	// BlobPublicBaseURL is the externally reachable prefix for uploaded
	// objects, e.g. a CDN or the bucket website endpoint.
	BlobPublicBaseURL string `env:"BLOB_PUBLIC_BASE_URL"`

	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	SerperAPIKey string `env:"SERPER_API_KEY"`
	TavilyAPIKey string `env:"TAVILY_API_KEY"`
}

// Load parses environment variables into Config.
//
// Every credential is required at boot: a missing value is a startup error,
// never a degraded mode.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	required := map[string]string{
		"DATABASE_URL":          cfg.DatabaseURL,
		"BLOB_S3_BUCKET":        cfg.BlobS3Bucket,
		"BLOB_S3_ACCESS_KEY_ID": cfg.BlobS3AccessKeyID,
		"BLOB_S3_SECRET_KEY":    cfg.BlobS3SecretKey,
		"BLOB_PUBLIC_BASE_URL":  cfg.BlobPublicBaseURL,
		"LLM_API_KEY":           cfg.LLMAPIKey,
		"SERPER_API_KEY":        cfg.SerperAPIKey,
		"TAVILY_API_KEY":        cfg.TavilyAPIKey,
	}
	var missing []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if cfg.HistoryReplayLimit <= 0 {
		cfg.HistoryReplayLimit = 50
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
