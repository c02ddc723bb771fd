package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full service configuration, read from the environment.
type Config struct {
	Server    Server
	MarkLogic MarkLogic
	Assets    Assets
	Redis     RedisConfig
	Search    Search
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"CASELAW_ADDR" env-default:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MarkLogic holds the document store connection settings.
type MarkLogic struct {
	Host     string        `env:"MARKLOGIC_HOST" env-default:"localhost:8011"`
	User     string        `env:"MARKLOGIC_USER" env-default:"admin"`
	Password string        `env:"MARKLOGIC_PASSWORD"`
	UseHTTPS bool          `env:"MARKLOGIC_USE_HTTPS" env-default:"false"`
	Timeout  time.Duration `env:"MARKLOGIC_TIMEOUT" env-default:"15s"`
}

// Assets points at published PDFs and the PDF generation service.
type Assets struct {
	BaseURL       string        `env:"ASSETS_CDN_BASE_URL"`
	PDFServiceURL string        `env:"PDF_SERVICE_URL"`
	Timeout       time.Duration `env:"ASSETS_TIMEOUT" env-default:"30s"`
}

// RedisConfig enables the document cache when URL is set.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
	CacheTTL     time.Duration `env:"DOCUMENT_CACHE_TTL" env-default:"5m"`
}

// Search bounds result building.
type Search struct {
	BuildConcurrency int `env:"SEARCH_BUILD_CONCURRENCY" env-default:"8"`
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if cfg.Search.BuildConcurrency < 1 {
		cfg.Search.BuildConcurrency = 1
	}
	return cfg, nil
}

// Scheme returns the URL scheme for the document store.
func (m MarkLogic) Scheme() string {
	if m.UseHTTPS {
		return "https"
	}
	return "http"
}
