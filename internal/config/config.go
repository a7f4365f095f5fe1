// Package config provides centralized configuration management for the desk.
// Values come from built-in defaults, then an optional YAML file, then
// environment variables, and are validated on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Source   SourceConfig    `yaml:"source"`
	Database DatabaseConfig  `yaml:"database"`
	Rate     RateLimitConfig `yaml:"rate"`
	Security SecurityConfig  `yaml:"security"`
	UI       UIConfig        `yaml:"ui"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `yaml:"host" env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `yaml:"port" env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig says where the ticket file and its companions are fetched from.
type SourceConfig struct {
	// Base is a directory path or an http(s) base URL (default: ./data)
	Base string `yaml:"base" env:"SOURCE_BASE" envAlt:"TICKETS_SOURCE" default:"./data"`

	TicketsFile      string `yaml:"tickets_file" env:"SOURCE_TICKETS_FILE" default:"tickets.csv"`
	SettingsFile     string `yaml:"settings_file" env:"SOURCE_SETTINGS_FILE" default:"settings.json"`
	TranslationsFile string `yaml:"translations_file" env:"SOURCE_TRANSLATIONS_FILE" default:"translations.json"`

	// FetchTimeout bounds each individual fetch (default: 10s)
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"SOURCE_FETCH_TIMEOUT" default:"10s"`

	// MaxBytes caps the size of a fetched document (default: 10MB)
	MaxBytes int64 `yaml:"max_bytes" env:"SOURCE_MAX_BYTES" default:"10485760"`
}

// DatabaseConfig holds the optional audit database settings.
// With neither URL nor SQLitePath set, audit entries only go to the log.
type DatabaseConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" envAlt:"DB_URL"`

	// SQLitePath stores the audit table in a local SQLite file instead
	SQLitePath string `yaml:"sqlite_path" env:"AUDIT_SQLITE_PATH"`

	MaxConns        int           `yaml:"max_conns" env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `yaml:"min_conns" env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// AuditRetentionDays is how long audit entries are kept (default: 90)
	AuditRetentionDays int `yaml:"audit_retention_days" env:"AUDIT_RETENTION_DAYS" default:"90"`

	// AuditSchedule is a 5-field cron expression for the retention job.
	// When empty the job runs every AuditCheckInterval.
	AuditSchedule      string        `yaml:"audit_schedule" env:"AUDIT_SCHEDULE"`
	AuditCheckInterval time.Duration `yaml:"audit_check_interval" env:"AUDIT_CHECK_INTERVAL" default:"24h"`
}

// Enabled reports whether a database URL is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// SQLiteEnabled reports whether the SQLite audit store is configured.
func (c *DatabaseConfig) SQLiteEnabled() bool {
	return c.SQLitePath != ""
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per IP (default: 120)
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES"`

	EnableCSP bool `yaml:"enable_csp" env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey guards /api with APIKeys (default: false)
	RequireAPIKey bool     `yaml:"require_api_key" env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `yaml:"api_keys" env:"API_KEYS"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// UserName is shown in the header badge (default: Desk Operator)
	UserName string `yaml:"user_name" env:"DESK_USER" default:"Desk Operator"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format" env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
