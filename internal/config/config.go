package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL            string        `mapstructure:"coingecko_base_url"`
	APIKey             string        `mapstructure:"coingecko_api_key"`
	APIKeyHeader       string        `mapstructure:"coingecko_api_key_header"`
	UserAgent          string        `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	WatchlistsFile      string        `mapstructure:"watchlists_file"`
	PublishersFile      string        `mapstructure:"publishers_file"`
	PollIntervalSeconds int64         `mapstructure:"poll_interval"`
	PollInterval        time.Duration `mapstructure:"-"`
	RequestsPerMinute   int           `mapstructure:"requests_per_minute"`
	MaxConcurrency      int           `mapstructure:"max_concurrency"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	RedisAddr              string        `mapstructure:"redis_addr"`
	RedisPassword          string        `mapstructure:"redis_password"`
	RedisDB                int           `mapstructure:"redis_db"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "coingecko-harvester")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("coingecko_base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("coingecko_api_key", "")
	v.SetDefault("coingecko_api_key_header", "x-cg-demo-api-key")
	v.SetDefault("user_agent", "coingecko-harvester/1.0")
	v.SetDefault("http_timeout", 15) // seconds
	v.SetDefault("watchlists_file", "./configs/watchlists.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("poll_interval", 300) // seconds
	v.SetDefault("requests_per_minute", 30)
	v.SetDefault("max_concurrency", 2)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/snapshots.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("storage_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid poll_interval (must be positive seconds)")
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalSeconds) * time.Second

	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("invalid requests_per_minute (must be positive)")
	}
	if cfg.MaxConcurrency <= 0 {
		return nil, fmt.Errorf("invalid max_concurrency (must be positive)")
	}

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// APIHeaders returns the headers that authenticate against CoinGecko, if a key is configured.
func (c *Config) APIHeaders() map[string]string {
	key := strings.TrimSpace(c.APIKey)
	header := strings.TrimSpace(c.APIKeyHeader)
	if key == "" || header == "" {
		return nil
	}
	return map[string]string{header: key}
}

// StorageLocation returns the bbolt path or the redis address depending on StorageType.
func (c *Config) StorageLocation() string {
	if strings.EqualFold(strings.TrimSpace(c.StorageType), "redis") {
		return c.RedisAddr
	}
	return c.BBoltPath
}
