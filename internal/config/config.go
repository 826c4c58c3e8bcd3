// Package config loads the YAML configuration shared by the kabunote
// server and the batch analyzer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PathEnv overrides the config file lookup with an explicit path.
const PathEnv = "KABUNOTE_CONFIG"

// Config holds the kabunote service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // empty: chosen by environment
}

// AuthConfig lists accepted bearer keys. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Addr is the listen address.
func (h HTTPConfig) Addr() string { return fmt.Sprintf(":%d", h.Port) }

// ReadTimeout is the server read timeout.
func (h HTTPConfig) ReadTimeout() time.Duration { return seconds(h.ReadTimeoutSec) }

// WriteTimeout is the server write timeout.
func (h HTTPConfig) WriteTimeout() time.Duration { return seconds(h.WriteTimeoutSec) }

// ShutdownTimeout bounds graceful shutdown.
func (h HTTPConfig) ShutdownTimeout() time.Duration { return seconds(h.ShutdownSec) }

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // only "redis"
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ClientName       string   `yaml:"client_name"`
	DialTimeoutSec   int      `yaml:"dial_timeout_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DialTimeout bounds a single connection attempt.
func (d DatabaseConfig) DialTimeout() time.Duration { return seconds(d.DialTimeoutSec) }

// Readiness bounds the startup wait for Redis.
func (d DatabaseConfig) Readiness() time.Duration { return seconds(d.ReadinessTimeout) }

// AnalysisConfig holds analysis cache settings.
type AnalysisConfig struct {
	CacheEnabled *bool `yaml:"cache_enabled"` // nil means on
	CacheTTLSec  int   `yaml:"cache_ttl_sec"` // 0: no expiry
}

// CacheOn reports whether analysis results are cached.
func (a AnalysisConfig) CacheOn() bool {
	return a.CacheEnabled == nil || *a.CacheEnabled
}

// CacheTTL is the analysis cache expiry.
func (a AnalysisConfig) CacheTTL() time.Duration { return seconds(a.CacheTTLSec) }

// SearchConfig holds result limits.
type SearchConfig struct {
	DefaultLimit        int `yaml:"default_limit"`
	MaxLimit            int `yaml:"max_limit"`
	DefaultRelatedLimit int `yaml:"default_related_limit"`
	MaxRelatedLimit     int `yaml:"max_related_limit"`
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// Load reads, expands, defaults and validates the config for env
// (local, dev, prod). KABUNOTE_CONFIG, when set, names the file directly.
func Load(env string) (Config, error) {
	path := os.Getenv(PathEnv)
	if path == "" {
		path = findConfigPath(env)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// GetEnv returns the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	orDefault(&c.HTTP.ReadTimeoutSec, 10)
	orDefault(&c.HTTP.WriteTimeoutSec, 10)
	orDefault(&c.HTTP.ShutdownSec, 10)

	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	orDefault(&c.Database.DialTimeoutSec, 5)
	orDefault(&c.Database.ReadinessTimeout, 10)

	orDefault(&c.Search.DefaultLimit, 20)
	orDefault(&c.Search.MaxLimit, 100)
	orDefault(&c.Search.DefaultRelatedLimit, 5)
	orDefault(&c.Search.MaxRelatedLimit, 50)
}

func orDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.Database.Driver != "redis" {
		errs = append(errs, fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver))
	}
	if len(c.Database.Addrs) == 0 {
		errs = append(errs, errors.New("database.addrs is required"))
	}
	if c.Analysis.CacheTTLSec < 0 {
		errs = append(errs, fmt.Errorf("analysis.cache_ttl_sec must not be negative, got %d", c.Analysis.CacheTTLSec))
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		errs = append(errs, fmt.Errorf("search.default_limit (%d) exceeds search.max_limit (%d)",
			c.Search.DefaultLimit, c.Search.MaxLimit))
	}
	if c.Search.DefaultRelatedLimit > c.Search.MaxRelatedLimit {
		errs = append(errs, fmt.Errorf("search.default_related_limit (%d) exceeds search.max_related_limit (%d)",
			c.Search.DefaultRelatedLimit, c.Search.MaxRelatedLimit))
	}
	return errors.Join(errs...)
}

// findConfigPath prefers ./config/<env>.yaml, then the repository's
// config directory located from this source file.
func findConfigPath(env string) string {
	name := env + ".yaml"
	local := filepath.Join("config", name)
	if fileExists(local) {
		return local
	}
	if _, src, _, ok := runtime.Caller(0); ok {
		root := filepath.Dir(filepath.Dir(filepath.Dir(src)))
		if p := filepath.Join(root, "config", name); fileExists(p) {
			return p
		}
	}
	return local
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		name, def, hasDef := strings.Cut(string(match[2:len(match)-1]), ":-")
		if val := os.Getenv(name); val != "" || !hasDef {
			return []byte(val)
		}
		return []byte(def)
	})
}
