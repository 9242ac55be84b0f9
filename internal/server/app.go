// Package server wires configuration, storage, services and the HTTP router
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/passvault/internal/crypto"
	"github.com/iudanet/passvault/internal/server/auth"
	"github.com/iudanet/passvault/internal/server/config"
	"github.com/iudanet/passvault/internal/server/handlers"
	"github.com/iudanet/passvault/internal/server/metrics"
	"github.com/iudanet/passvault/internal/server/middleware"
	"github.com/iudanet/passvault/internal/server/storage"
	"github.com/iudanet/passvault/internal/server/storage/mongo"
	"github.com/iudanet/passvault/internal/server/storage/postgres"
	"github.com/iudanet/passvault/internal/server/storage/sqlite"
	"github.com/iudanet/passvault/internal/server/vault"
)

const rateLimitWindow = time.Minute

// App holds the long-lived server components
type App struct {
	config   *config.Config
	logger   *slog.Logger
	store    *storage.Lazy
	limiter  *middleware.RateLimiter
	registry *prometheus.Registry
	handler  http.Handler
}

// NewApp validates configuration and builds the application.
// The store is not contacted until Run or the first request.
func NewApp(cfg *config.Config, logger *slog.Logger, version string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	opener, err := newStoreOpener(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.UsesDefaultEncryptionKey() {
		logger.Warn("ENCRYPTION_KEY is not set, using the insecure default key")
	}

	cipher, err := crypto.NewSecretCipher(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	store := storage.NewLazy(opener)

	jwtConfig := handlers.JWTConfig{
		Secret:        []byte(cfg.SessionSecret),
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
	}

	var limiter *middleware.RateLimiter
	if cfg.AuthRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.AuthRateLimit, rateLimitWindow, logger)
	}

	authService := auth.NewService(logger, store)
	vaultService := vault.NewService(logger, store, cipher)

	handler := NewRouter(Routes{
		Logger:      logger,
		Auth:        handlers.NewAuthHandler(logger, authService, jwtConfig),
		Vault:       handlers.NewVaultHandler(logger, vaultService),
		Health:      handlers.NewHealthHandler(logger, store, version),
		Pages:       handlers.NewPageHandler(cfg.StaticDir),
		Registry:    registry,
		RateLimiter: limiter,
		JWT:         jwtConfig,
		TrustProxy:  cfg.TrustProxy,
	})

	return &App{
		config:   cfg,
		logger:   logger,
		store:    store,
		limiter:  limiter,
		registry: registry,
		handler:  handler,
	}, nil
}

// Handler returns the HTTP handler of the application
func (app *App) Handler() http.Handler {
	return app.handler
}

// newStoreOpener выбирает драйвер хранилища по схеме DatabaseURI
func newStoreOpener(cfg *config.Config) (storage.Opener, error) {
	driver, dsn, err := cfg.StoreDriver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverMongo:
		return func(ctx context.Context) (storage.Store, error) {
			return mongo.New(ctx, dsn, cfg.DatabaseName)
		}, nil
	case config.DriverPostgres:
		return func(ctx context.Context) (storage.Store, error) {
			return postgres.New(ctx, dsn)
		}, nil
	case config.DriverSQLite:
		return func(ctx context.Context) (storage.Store, error) {
			return sqlite.New(ctx, dsn)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info("Shutdown signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run connects the store, serves HTTP until ctx is canceled or a signal
// arrives, then shuts down gracefully and releases resources.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(ctx, cancelFunc)
	defer app.close()

	// Прогрев: без хранилища сервер не стартует
	if _, err := app.store.Connect(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              app.config.ListenAddr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.logger.Info("Starting HTTP server", "addr", app.config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	app.logger.Info("Shutting down HTTP server")
	shutdownErr := srv.Shutdown(shutdownCtx)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	app.logger.Info("Server stopped")
	return nil
}

func (app *App) close() {
	if app.limiter != nil {
		app.limiter.Stop()
	}
	if err := app.store.Close(); err != nil {
		app.logger.Error("Failed to close store", slog.Any("error", err))
	}
}
