package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendDocstore = "docstore"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Tenderbook"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

		// TUILogFile receives log output while the terminal UI owns stdout.
		TUILogFile string `envconfig:"TUI_LOG_FILE" default:"tenderbook-tui.log"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Store struct {
		Backend string `envconfig:"STORE_BACKEND" default:"docstore"`
	}

	Docstore struct {
		URL     string        `envconfig:"DOCSTORE_URL"`
		Timeout time.Duration `envconfig:"DOCSTORE_TIMEOUT" default:"15s"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tenderbook"`
	}

	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"data/tenderbook.db"`
	}

	S3 struct {
		Bucket    string `envconfig:"S3_BUCKET"`
		Key       string `envconfig:"S3_KEY" default:"tenderbook/ledger.json"`
		Region    string `envconfig:"S3_REGION" default:"us-east-1"`
		Endpoint  string `envconfig:"S3_ENDPOINT"`
		PathStyle bool   `envconfig:"S3_PATH_STYLE" default:"false"`
	}

	View struct {
		TxnPageSize     int `envconfig:"TXN_PAGE_SIZE" default:"5"`
		SummaryPageSize int `envconfig:"SUMMARY_PAGE_SIZE" default:"10"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"exports"`
	}

	// Events are published only when AMQPURL is set.
	Events struct {
		AMQPURL    string `envconfig:"AMQP_URL"`
		Exchange   string `envconfig:"AMQP_EXCHANGE" default:"tenderbook"`
		RoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"ledger.saved"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))

	switch c.Store.Backend {
	case BackendDocstore:
		if c.Docstore.URL == "" {
			return fmt.Errorf("DOCSTORE_URL is required for the %s backend", BackendDocstore)
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the %s backend", BackendS3)
		}
	case BackendPostgres, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.View.TxnPageSize < 1 || c.View.SummaryPageSize < 1 {
		return fmt.Errorf("page sizes must be positive")
	}

	return nil
}
