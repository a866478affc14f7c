// Package config loads the petition server's settings from environment
// variables, applies defaults and validates the result on startup so that a
// misconfigured process never starts serving.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// EnvDevelopment is the application environment that talks to the database
// without TLS.
const EnvDevelopment = "development"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: all interfaces)
	Host string `env:"HOST"`

	// Port is the port to listen on (default: 3000)
	Port int `env:"PORT" default:"3000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout bounds a single request including its database calls
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// FormMaxBytes caps the size of a submitted form body (default: 64KiB)
	FormMaxBytes int64 `env:"FORM_MAX_BYTES" default:"65536"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// WatchInterval is how often the pool watchdog pings the database
	WatchInterval time.Duration `env:"DB_WATCH_INTERVAL" default:"30s"`
}

// AppConfig holds deployment-level settings.
type AppConfig struct {
	// Env is the deployment environment. Anything other than "development"
	// connects to the database over TLS without verifying the certificate.
	Env string `env:"APP_ENV" envAlt:"NODE_ENV" default:"development"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}
