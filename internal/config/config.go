// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ankitbhatnagartech/archcost/internal/errors"
	"github.com/ankitbhatnagartech/archcost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Cache contains response cache settings
	Cache CacheConfig `json:"cache"`

	// Catalog contains provider reference data settings
	Catalog CatalogConfig `json:"catalog"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// MaxBodyBytes limits the size of an estimate request
	MaxBodyBytes int64 `json:"max_body_bytes"`

	// CORSAllowedOrigins lists browser origins allowed to call the API; "*" allows any
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	// Enabled turns the response cache on
	Enabled bool `json:"enabled"`

	// TTLSeconds is how long a computed response stays valid
	TTLSeconds int `json:"ttl_seconds"`

	// MaxEntries bounds the number of cached responses
	MaxEntries int `json:"max_entries"`

	// CleanupIntervalSeconds is the period of the expiry sweep
	CleanupIntervalSeconds int `json:"cleanup_interval_seconds"`
}

// CatalogConfig contains provider reference data settings
type CatalogConfig struct {
	// Path overrides the embedded provider catalog with an HCL file
	Path string `json:"path,omitempty"`
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// CleanupInterval returns the sweep period as a duration
func (c CacheConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalSeconds) * time.Second
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:                ":8000",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 15,
			MaxBodyBytes:        1 << 20,
			CORSAllowedOrigins:  []string{"http://localhost:4200"},
		},
		Cache: CacheConfig{
			Enabled:                true,
			TTLSeconds:             3600,
			MaxEntries:             1000,
			CleanupIntervalSeconds: 60,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads the JSON config file at path (a missing file yields defaults),
// then applies a .env file and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, errors.Config("failed to parse "+path, err)
			}
		case !os.IsNotExist(err):
			return nil, errors.Config("failed to read "+path, err)
		}
	}

	// .env is optional; real environment variables take precedence over it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Config("failed to load .env", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ARCHCOST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" && os.Getenv("ARCHCOST_ADDR") == "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("ARCHCOST_CORS_ORIGINS"); v != "" {
		c.Server.CORSAllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ARCHCOST_CATALOG_PATH"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	var err error
	if c.Cache.Enabled, err = envBool("ARCHCOST_CACHE_ENABLED", c.Cache.Enabled); err != nil {
		return err
	}
	if c.Cache.TTLSeconds, err = envInt("ARCHCOST_CACHE_TTL", c.Cache.TTLSeconds); err != nil {
		return err
	}
	if c.Cache.MaxEntries, err = envInt("ARCHCOST_CACHE_MAX_ENTRIES", c.Cache.MaxEntries); err != nil {
		return err
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.TypeConfig, "server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Newf(errors.TypeConfig, "server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Cache.Enabled {
		if c.Cache.TTLSeconds <= 0 {
			return errors.Newf(errors.TypeConfig, "cache.ttl_seconds must be positive when the cache is enabled, got %d", c.Cache.TTLSeconds)
		}
		if c.Cache.MaxEntries <= 0 {
			return errors.Newf(errors.TypeConfig, "cache.max_entries must be positive when the cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}
	if c.Cache.CleanupIntervalSeconds <= 0 {
		c.Cache.CleanupIntervalSeconds = 60
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Config(fmt.Sprintf("%s must be an integer", key), err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, errors.Config(fmt.Sprintf("%s must be a boolean", key), err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
