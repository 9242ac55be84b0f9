package config

import (
	"github.com/spf13/pflag"
)

// newFlagSet declares the server flags bound to a scratch Config.
// Only flags set on the command line are copied over by applyFlags.
//
// Supported flags:
//
//	-a, --listen string            HTTP bind address
//	-d, --database-uri string      store URI (mongodb://, postgres://, sqlite://)
//	    --database-name string     MongoDB database name
//	    --encryption-key string    vault encryption secret
//	-s, --session-secret string    JWT HMAC secret
//	    --session-ttl duration     session lifetime
//	    --secure-cookies           mark the session cookie Secure
//	    --trust-proxy              take client IP from X-Forwarded-For/X-Real-IP
//	    --static-dir string        directory with web pages
//	    --log-level string         debug, info, warn, error
//	    --log-format string        json or text
//	    --auth-rate-limit int      sign-in/sign-up requests per minute per IP
//	    --shutdown-timeout duration
//	-c, --config string            JSON config file
//	-v, --version                  print version and exit
func newFlagSet() (*pflag.FlagSet, *Config) {
	defaults := &Config{}
	defaults.LoadDefaults()

	v := &Config{}
	fs := pflag.NewFlagSet("passvault-server", pflag.ContinueOnError)

	fs.StringVarP(&v.ListenAddr, "listen", "a", defaults.ListenAddr, "address and port to run server")
	fs.StringVarP(&v.DatabaseURI, "database-uri", "d", "", "database URI")
	fs.StringVar(&v.DatabaseName, "database-name", defaults.DatabaseName, "database name (MongoDB)")
	fs.StringVar(&v.EncryptionKey, "encryption-key", "", "vault encryption secret")
	fs.StringVarP(&v.SessionSecret, "session-secret", "s", "", "session signing secret")
	fs.DurationVar(&v.SessionTTL, "session-ttl", defaults.SessionTTL, "session lifetime")
	fs.BoolVar(&v.SecureCookies, "secure-cookies", false, "mark session cookie as Secure")
	fs.BoolVar(&v.TrustProxy, "trust-proxy", false, "trust X-Forwarded-For/X-Real-IP headers")
	fs.StringVar(&v.StaticDir, "static-dir", "", "directory with web pages")
	fs.StringVar(&v.LogLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&v.LogFormat, "log-format", defaults.LogFormat, "log format (json, text)")
	fs.IntVar(&v.AuthRateLimit, "auth-rate-limit", defaults.AuthRateLimit, "auth requests per minute per IP (0 disables)")
	fs.DurationVar(&v.ShutdownTimeout, "shutdown-timeout", defaults.ShutdownTimeout, "graceful shutdown timeout")
	fs.StringVarP(&v.ConfigFile, "config", "c", "", "path to JSON config file")
	fs.BoolVarP(&v.ShowVersion, "version", "v", false, "show version information")

	return fs, v
}

// applyFlags copies explicitly set flags onto cfg
func applyFlags(cfg *Config, fs *pflag.FlagSet, v *Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "listen":
			cfg.ListenAddr = v.ListenAddr
		case "database-uri":
			cfg.DatabaseURI = v.DatabaseURI
		case "database-name":
			cfg.DatabaseName = v.DatabaseName
		case "encryption-key":
			cfg.EncryptionKey = v.EncryptionKey
		case "session-secret":
			cfg.SessionSecret = v.SessionSecret
		case "session-ttl":
			cfg.SessionTTL = v.SessionTTL
		case "secure-cookies":
			cfg.SecureCookies = v.SecureCookies
		case "trust-proxy":
			cfg.TrustProxy = v.TrustProxy
		case "static-dir":
			cfg.StaticDir = v.StaticDir
		case "log-level":
			cfg.LogLevel = v.LogLevel
		case "log-format":
			cfg.LogFormat = v.LogFormat
		case "auth-rate-limit":
			cfg.AuthRateLimit = v.AuthRateLimit
		case "shutdown-timeout":
			cfg.ShutdownTimeout = v.ShutdownTimeout
		case "version":
			cfg.ShowVersion = v.ShowVersion
		}
	})
}
