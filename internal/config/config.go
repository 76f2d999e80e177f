package config

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names the environment variable pointing at the YAML file.
const ConfigPathEnv = "CONFIG_PATH"

// APIKeyEnv overrides upstream.api_key so the key can stay out of the file.
const APIKeyEnv = "WEB2PDF_API_KEY"

// xdgRelPath is searched under the XDG config directories when CONFIG_PATH is unset.
const xdgRelPath = "web2pdf/config.yaml"

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Prefork bool   `yaml:"prefork"`
}

type LimitsConfig struct {
	MaxBodyBytes int `yaml:"max_body_bytes"`
	MaxPDFBytes  int `yaml:"max_pdf_bytes"`
}

type LoggerConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type CacheConfig struct {
	PDFCacheEnabled bool          `yaml:"pdf_cache_enabled"`
	PDFCacheTTL     time.Duration `yaml:"pdf_cache_ttl"`
	RedisHost       string        `yaml:"redis_host"`
	RateLimitDB     int           `yaml:"redis_rate_db"`
	PDFCacheDB      int           `yaml:"redis_pdf_db"`
}

type RateLimiterConfig struct {
	UserLimit int           `yaml:"user_limit"`
	Interval  time.Duration `yaml:"interval"`
}

// UpstreamConfig describes the external rendering service the relay calls.
type UpstreamConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ClientConfig holds defaults for the convert command.
type ClientConfig struct {
	BackendURL  string `yaml:"backend_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	OutputDir   string `yaml:"output_dir"`
	PageSize    string `yaml:"page_size"`
	Orientation string `yaml:"orientation"`
}

// Config is the full application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Limits      LimitsConfig      `yaml:"limits"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
	Client      ClientConfig      `yaml:"client"`
}

// Defaults returns a configuration that runs locally without any file:
// relay on :5000, no cache, no rate limit, logs to stdout only.
func Defaults() Config {
	var cfg Config
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = ":5000"
	cfg.Limits.MaxBodyBytes = 64 * 1024
	cfg.Limits.MaxPDFBytes = 50 * 1024 * 1024
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 10
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 7
	cfg.Cache.PDFCacheTTL = 10 * time.Minute
	cfg.Cache.PDFCacheDB = 1
	cfg.RateLimiter.Interval = time.Minute
	cfg.Upstream.URL = "http://localhost:8080"
	cfg.Upstream.TimeoutSecs = 60
	cfg.Client.BackendURL = "http://localhost:5000"
	cfg.Client.PageSize = "A4"
	cfg.Client.Orientation = "portrait"
	return cfg
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return ErrMissingPort
	}
	if c.Limits.MaxPDFBytes <= 0 || c.Limits.MaxBodyBytes <= 0 {
		return ErrInvalidLimit
	}
	if c.Cache.PDFCacheEnabled && c.Cache.RedisHost == "" {
		return ErrCacheWithoutRedis
	}
	if c.RateLimiter.UserLimit < 0 {
		return ErrNegativeUserLimit
	}
	if c.RateLimiter.UserLimit > 0 && c.RateLimiter.Interval <= 0 {
		return ErrInvalidRateInterval
	}
	if c.Upstream.URL == "" {
		return ErrMissingUpstream
	}
	if c.Upstream.TimeoutSecs < 0 || c.Client.TimeoutSecs < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// Read parses the YAML file at path on top of Defaults and validates it.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFrom reads the config at path and panics if it is unreadable or invalid.
func LoadFrom(path string) Config {
	cfg, err := Read(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Path resolves which file Load would read: CONFIG_PATH first, then the XDG
// config directories. It returns "" when neither yields a file.
func Path() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	if p, err := xdg.SearchConfigFile(xdgRelPath); err == nil {
		return p
	}
	return ""
}

// Load reads the file found by Path, or falls back to Defaults.
func Load() Config {
	p := Path()
	if p == "" {
		cfg := Defaults()
		applyEnv(&cfg)
		return cfg
	}
	return LoadFrom(p)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(APIKeyEnv); v != "" {
		cfg.Upstream.APIKey = v
	}
}
