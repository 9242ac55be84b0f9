package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// duration parses both "15s" strings and integer nanoseconds
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// jsonConfig is the shape of the configuration file.
// Pointer fields distinguish "absent" from zero values.
type jsonConfig struct {
	ListenAddr      *string   `json:"listen_addr"`
	DatabaseURI     *string   `json:"database_uri"`
	DatabaseName    *string   `json:"database_name"`
	EncryptionKey   *string   `json:"encryption_key"`
	SessionSecret   *string   `json:"session_secret"`
	SessionTTL      *duration `json:"session_ttl"`
	SecureCookies   *bool     `json:"secure_cookies"`
	TrustProxy      *bool     `json:"trust_proxy"`
	StaticDir       *string   `json:"static_dir"`
	LogLevel        *string   `json:"log_level"`
	LogFormat       *string   `json:"log_format"`
	AuthRateLimit   *int      `json:"auth_rate_limit"`
	ShutdownTimeout *duration `json:"shutdown_timeout"`
}

// applyJSONFile overlays values present in the JSON file onto cfg
func applyJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var c jsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&cfg.ListenAddr, c.ListenAddr)
	setString(&cfg.DatabaseURI, c.DatabaseURI)
	setString(&cfg.DatabaseName, c.DatabaseName)
	setString(&cfg.EncryptionKey, c.EncryptionKey)
	setString(&cfg.SessionSecret, c.SessionSecret)
	setString(&cfg.StaticDir, c.StaticDir)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.LogFormat, c.LogFormat)

	if c.SessionTTL != nil {
		cfg.SessionTTL = time.Duration(*c.SessionTTL)
	}
	if c.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = time.Duration(*c.ShutdownTimeout)
	}
	if c.SecureCookies != nil {
		cfg.SecureCookies = *c.SecureCookies
	}
	if c.TrustProxy != nil {
		cfg.TrustProxy = *c.TrustProxy
	}
	if c.AuthRateLimit != nil {
		cfg.AuthRateLimit = *c.AuthRateLimit
	}

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
