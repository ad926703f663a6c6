package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Upstream struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"upstream"`
	Session struct {
		Backend    string        `yaml:"backend" default:"memory"`
		CookieName string        `yaml:"cookie_name" default:"stockdesk_session"`
		TTL        time.Duration `yaml:"ttl" default:"24h"`
		Redis      RedisConfig   `yaml:"redis"`
	} `yaml:"session"`
	Cache struct {
		Backend    string        `yaml:"backend" default:"memory"`
		QuoteTTL   time.Duration `yaml:"quote_ttl" default:"15s"`
		CandlesTTL time.Duration `yaml:"candles_ttl" default:"1m"`
		Redis      RedisConfig   `yaml:"redis"`
	} `yaml:"cache"`
	Page struct {
		DefaultPeriod  string `yaml:"default_period" default:"3m"`
		DefaultChart   string `yaml:"default_chart" default:"candles"`
		LoginPath      string `yaml:"login_path" default:"/login"`
		LeaderboardTop int    `yaml:"leaderboard_top" default:"10"`
		PopularTop     int    `yaml:"popular_top" default:"15"`
	} `yaml:"page"`
	Trade struct {
		RateCapacity     float64 `yaml:"rate_capacity" default:"5"`
		RateRefillPerSec float64 `yaml:"rate_refill_per_sec" default:"1"`
	} `yaml:"trade"`
	Stream struct {
		PollInterval time.Duration `yaml:"poll_interval" default:"5s"`
		MaxBackoff   time.Duration `yaml:"max_backoff" default:"1m"`
	} `yaml:"stream"`
	Journal struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"stockdesk.trades"`
		Compression  string        `yaml:"compression" default:"gzip"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
		Linger       time.Duration `yaml:"linger" default:"50ms"`
		Async        bool          `yaml:"async"`
	} `yaml:"journal"`
}

// RedisConfig addresses a redis instance used by a session or cache backend.
type RedisConfig struct {
	Addr         string        `yaml:"addr" default:"localhost:6379"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size" default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
	PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse applies defaults, decodes YAML on top of them and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// Default returns a validated configuration built from defaults alone, pointed
// at baseURL.
func Default(baseURL string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	c.Upstream.BaseURL = baseURL
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("STOCKDESK_UPSTREAM_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := getenv("STOCKDESK_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("STOCKDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("STOCKDESK_SESSION_BACKEND"); v != "" {
		c.Session.Backend = v
	}
	if v := getenv("STOCKDESK_REDIS_ADDR"); v != "" {
		c.Session.Redis.Addr = v
		c.Cache.Redis.Addr = v
	}
	if v := getenv("STOCKDESK_JOURNAL_BROKERS"); v != "" {
		c.Journal.Brokers = strings.Split(v, ",")
		c.Journal.Enabled = true
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if !isBackend(c.Session.Backend) {
		return fmt.Errorf("session.backend must be 'memory' or 'redis', got '%s'", c.Session.Backend)
	}
	if !isBackend(c.Cache.Backend) {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Page.DefaultChart != "candles" && c.Page.DefaultChart != "line" {
		return fmt.Errorf("page.default_chart must be 'candles' or 'line', got '%s'", c.Page.DefaultChart)
	}
	if c.Journal.Enabled && len(c.Journal.Brokers) == 0 {
		return fmt.Errorf("journal.brokers cannot be empty when journal is enabled")
	}
	if c.Stream.PollInterval <= 0 {
		return fmt.Errorf("stream.poll_interval must be positive")
	}
	return nil
}

func isBackend(s string) bool {
	return s == "memory" || s == "redis"
}
