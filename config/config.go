package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	Code       CodeConfig       `yaml:"code"`
	Notify     NotifyConfig     `yaml:"notify"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Reminder   ReminderConfig   `yaml:"reminder"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the remote (authoritative) database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// CacheConfig holds the local delivery cache configuration.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// CodeConfig holds the pickup code settings.
type CodeConfig struct {
	Length int `yaml:"length"`
}

// ChannelConfig describes one outbound notification webhook endpoint.
type ChannelConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// NotifyConfig holds the ordered notification channel chain.
type NotifyConfig struct {
	Channels              []ChannelConfig `yaml:"channels"`
	AttemptTimeoutSeconds int             `yaml:"attempt_timeout_seconds"`
	AttemptTimeout        time.Duration   `yaml:"-"` // Ignored by YAML parser
}

// PushConfig holds the VAPID keys for the optional web push channel.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// ReminderConfig holds the pending-delivery reminder loop configuration.
type ReminderConfig struct {
	Enabled          bool          `yaml:"enabled"`
	IntervalSeconds  int           `yaml:"interval_seconds"`
	Interval         time.Duration `yaml:"-"` // Ignored by YAML parser
	PendingAfterDays int           `yaml:"pending_after_days"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Code.Length <= 0 {
		cfg.Code.Length = 5
	}

	if cfg.Notify.AttemptTimeoutSeconds <= 0 {
		cfg.Notify.AttemptTimeoutSeconds = 10
	}
	cfg.Notify.AttemptTimeout = time.Duration(cfg.Notify.AttemptTimeoutSeconds) * time.Second

	if cfg.Reminder.IntervalSeconds <= 0 {
		cfg.Reminder.IntervalSeconds = 3600
	}
	cfg.Reminder.Interval = time.Duration(cfg.Reminder.IntervalSeconds) * time.Second

	if cfg.Reminder.PendingAfterDays <= 0 {
		cfg.Reminder.PendingAfterDays = 2
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "./deliveries-cache.db"
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
