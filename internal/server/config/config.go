// Package config handles configuration for the server component:
// defaults, JSON file overlay, environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultEncryptionKey используется, если ENCRYPTION_KEY не задан.
// Небезопасен; сервер предупреждает о нем при старте.
const DefaultEncryptionKey = "your-secret-key-change-this"

// Драйверы хранилища, выбираемые по схеме DatabaseURI
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime settings for the passvault server.
//
// Fields:
//   - ListenAddr: HTTP bind address.
//   - DatabaseURI: store URI; scheme selects mongo, postgres or sqlite.
//   - DatabaseName: database name for MongoDB.
//   - EncryptionKey: static secret the vault cipher key is derived from.
//   - SessionSecret: HMAC secret for signing session JWTs (HS256).
//   - SessionTTL: session lifetime.
//   - StaticDir: optional directory with the web pages.
//   - AuthRateLimit: sign-in/sign-up requests per minute per IP, 0 disables.
//   - TrustProxy: take the client IP from X-Forwarded-For/X-Real-IP.
//     Enable only behind a reverse proxy that overwrites these headers.
type Config struct {
	ListenAddr      string
	DatabaseURI     string
	DatabaseName    string
	EncryptionKey   string
	SessionSecret   string
	StaticDir       string
	LogLevel        string
	LogFormat       string
	ConfigFile      string
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
	AuthRateLimit   int
	SecureCookies   bool
	TrustProxy      bool
	ShowVersion     bool
}

// LoadDefaults populates Config with development defaults.
// DatabaseURI and SessionSecret have no defaults and must be provided.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabaseName = "passvault"
	c.EncryptionKey = DefaultEncryptionKey
	c.SessionTTL = 30 * 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.AuthRateLimit = 10
	c.ShutdownTimeout = 15 * time.Second
}

// Load builds a Config: defaults, then the JSON file (--config or
// PASSVAULT_CONFIG), then environment, then explicitly set flags.
func Load(args []string) (*Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs, flagged := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg.ConfigFile = flagged.ConfigFile
	if cfg.ConfigFile == "" {
		cfg.ConfigFile, _ = lookupEnv(envConfigFile)
	}

	if cfg.ConfigFile != "" {
		if err := applyJSONFile(cfg, cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}

	applyFlags(cfg, fs, flagged)

	return cfg, nil
}

// Validate checks settings required to start the server
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURI == "" {
		errs = append(errs, errors.New("database URI is required (PASSVAULT_DATABASE_URI or MONGODB_URI)"))
	} else if _, _, err := c.StoreDriver(); err != nil {
		errs = append(errs, err)
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("session secret is required (PASSVAULT_SESSION_SECRET or NEXTAUTH_SECRET)"))
	}
	if c.EncryptionKey == "" {
		errs = append(errs, errors.New("encryption key must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session TTL must be positive"))
	}
	if c.AuthRateLimit < 0 {
		errs = append(errs, errors.New("auth rate limit must not be negative"))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// UsesDefaultEncryptionKey reports whether the insecure placeholder key is in use
func (c *Config) UsesDefaultEncryptionKey() bool {
	return c.EncryptionKey == DefaultEncryptionKey
}

// StoreDriver returns the store driver selected by the DatabaseURI scheme
// and the DSN to pass to it
func (c *Config) StoreDriver() (string, string, error) {
	uri := c.DatabaseURI

	if strings.HasPrefix(uri, "file:") {
		return DriverSQLite, uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid database URI: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return DriverMongo, uri, nil
	case "postgres", "postgresql":
		return DriverPostgres, uri, nil
	case "sqlite":
		path := strings.TrimPrefix(uri, "sqlite://")
		if path == "" {
			return "", "", errors.New("sqlite URI has no path")
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported database URI scheme %q", u.Scheme)
	}
}
