package sqlite

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBusyTimeout = 5 * time.Second
	memoryPath         = ":memory:"
)

// Config holds the settings used when opening a Connection. The zero value is
// usable: missing fields take their defaults in Open.
type Config struct {
	// CreateIfMissing creates the database file when it does not exist.
	// Defaults to true; set explicitly through WithCreateIfMissing or YAML.
	CreateIfMissing *bool `yaml:"create_if_missing"`

	// ReadOnly opens the database without write access.
	ReadOnly bool `yaml:"read_only"`

	// BusyTimeout is how long the engine waits on a locked database before
	// reporting busy. Defaults to 5s. A negative value disables waiting.
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// JournalMode sets PRAGMA journal_mode (e.g. "WAL", "DELETE"). Empty
	// leaves the engine default.
	JournalMode string `yaml:"journal_mode"`

	// ForeignKeys enables foreign key enforcement.
	ForeignKeys bool `yaml:"foreign_keys"`

	// StrictNulls makes NULL read into a non-nullable target fail with
	// NullConversionError instead of yielding the zero value.
	StrictNulls bool `yaml:"strict_nulls"`

	// Logger is optional, defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// Option configures Open.
type Option func(*Config)

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithCreateIfMissing controls whether Open creates a missing database file.
func WithCreateIfMissing(create bool) Option {
	return func(c *Config) {
		c.CreateIfMissing = &create
	}
}

// WithReadOnly opens the database read-only.
func WithReadOnly() Option {
	return func(c *Config) {
		c.ReadOnly = true
	}
}

// WithBusyTimeout sets how long to wait on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.BusyTimeout = d
	}
}

// WithJournalMode sets the journal mode pragma.
func WithJournalMode(mode string) Option {
	return func(c *Config) {
		c.JournalMode = mode
	}
}

// WithForeignKeys enables foreign key enforcement.
func WithForeignKeys() Option {
	return func(c *Config) {
		c.ForeignKeys = true
	}
}

// WithStrictNulls enables strict null conversion.
func WithStrictNulls() Option {
	return func(c *Config) {
		c.StrictNulls = true
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// LoadConfig reads a YAML connection configuration file. Durations use Go
// syntax ("250ms", "5s").
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML connection configuration.
func ParseConfig(data []byte) (Config, error) {
	var raw struct {
		CreateIfMissing *bool  `yaml:"create_if_missing"`
		ReadOnly        bool   `yaml:"read_only"`
		BusyTimeout     string `yaml:"busy_timeout"`
		JournalMode     string `yaml:"journal_mode"`
		ForeignKeys     bool   `yaml:"foreign_keys"`
		StrictNulls     bool   `yaml:"strict_nulls"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg := Config{
		CreateIfMissing: raw.CreateIfMissing,
		ReadOnly:        raw.ReadOnly,
		JournalMode:     raw.JournalMode,
		ForeignKeys:     raw.ForeignKeys,
		StrictNulls:     raw.StrictNulls,
	}
	if raw.BusyTimeout != "" {
		d, err := time.ParseDuration(raw.BusyTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parsing config: busy_timeout: %w", err)
		}
		cfg.BusyTimeout = d
	}
	switch strings.ToUpper(cfg.JournalMode) {
	case "", "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF":
	default:
		return Config{}, fmt.Errorf("parsing config: unknown journal_mode %q", cfg.JournalMode)
	}
	return cfg, nil
}

func (c *Config) createIfMissing() bool {
	return c.CreateIfMissing == nil || *c.CreateIfMissing
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// dsn builds the engine data source name for path. File databases use a
// file: URI so the access mode is enforced by the engine itself.
func (c *Config) dsn(path string) string {
	params := url.Values{}
	timeout := c.BusyTimeout
	if timeout == 0 {
		timeout = defaultBusyTimeout
	}
	if timeout < 0 {
		timeout = 0
	}
	params.Set("_busy_timeout", strconv.FormatInt(timeout.Milliseconds(), 10))
	if c.JournalMode != "" {
		params.Set("_journal_mode", strings.ToUpper(c.JournalMode))
	}
	if c.ForeignKeys {
		params.Set("_foreign_keys", "1")
	}

	if path == memoryPath || path == "" {
		return "file::memory:?" + params.Encode()
	}
	switch {
	case c.ReadOnly:
		params.Set("mode", "ro")
	case c.createIfMissing():
		params.Set("mode", "rwc")
	default:
		params.Set("mode", "rw")
	}
	return "file:" + escapePath(path) + "?" + params.Encode()
}

// escapePath escapes the characters that would otherwise end the path
// component of a file: URI.
func escapePath(path string) string {
	r := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")
	return r.Replace(path)
}
