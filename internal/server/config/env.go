package config

import (
	"fmt"
	"strconv"
	"time"
)

// Переменные окружения
const (
	envConfigFile      = "PASSVAULT_CONFIG"
	envListenAddr      = "PASSVAULT_LISTEN_ADDR"
	envDatabaseURI     = "PASSVAULT_DATABASE_URI"
	envMongoURI        = "MONGODB_URI"
	envDatabaseName    = "PASSVAULT_DATABASE_NAME"
	envEncryptionKey   = "ENCRYPTION_KEY"
	envSessionSecret   = "PASSVAULT_SESSION_SECRET"
	envNextAuthSecret  = "NEXTAUTH_SECRET"
	envSessionTTL      = "PASSVAULT_SESSION_TTL"
	envSecureCookies   = "PASSVAULT_SECURE_COOKIES"
	envTrustProxy      = "PASSVAULT_TRUST_PROXY"
	envStaticDir       = "PASSVAULT_STATIC_DIR"
	envLogLevel        = "PASSVAULT_LOG_LEVEL"
	envLogFormat       = "PASSVAULT_LOG_FORMAT"
	envAuthRateLimit   = "PASSVAULT_AUTH_RATE_LIMIT"
	envShutdownTimeout = "PASSVAULT_SHUTDOWN_TIMEOUT"
)

// applyEnv overlays environment variables onto cfg.
// Пустые значения игнорируются.
func applyEnv(cfg *Config, lookupEnv func(string) (string, bool)) error {
	get := func(keys ...string) (string, bool) {
		for _, key := range keys {
			if v, ok := lookupEnv(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get(envListenAddr); ok {
		cfg.ListenAddr = v
	}
	if v, ok := get(envDatabaseURI, envMongoURI); ok {
		cfg.DatabaseURI = v
	}
	if v, ok := get(envDatabaseName); ok {
		cfg.DatabaseName = v
	}
	if v, ok := get(envEncryptionKey); ok {
		cfg.EncryptionKey = v
	}
	if v, ok := get(envSessionSecret, envNextAuthSecret); ok {
		cfg.SessionSecret = v
	}
	if v, ok := get(envStaticDir); ok {
		cfg.StaticDir = v
	}
	if v, ok := get(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(envLogFormat); ok {
		cfg.LogFormat = v
	}

	if v, ok := get(envSessionTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envSessionTTL, err)
		}
		cfg.SessionTTL = d
	}
	if v, ok := get(envShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envShutdownTimeout, err)
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := get(envSecureCookies); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envSecureCookies, err)
		}
		cfg.SecureCookies = b
	}
	if v, ok := get(envTrustProxy); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envTrustProxy, err)
		}
		cfg.TrustProxy = b
	}
	if v, ok := get(envAuthRateLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envAuthRateLimit, err)
		}
		cfg.AuthRateLimit = n
	}

	return nil
}
