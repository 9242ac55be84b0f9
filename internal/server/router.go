package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/passvault/internal/server/handlers"
	"github.com/iudanet/passvault/internal/server/metrics"
	"github.com/iudanet/passvault/internal/server/middleware"
)

const requestTimeout = 60 * time.Second

// Routes собирает зависимости HTTP слоя
type Routes struct {
	Logger      *slog.Logger
	Auth        *handlers.AuthHandler
	Vault       *handlers.VaultHandler
	Health      *handlers.HealthHandler
	Pages       http.Handler
	Registry    *prometheus.Registry
	RateLimiter *middleware.RateLimiter
	JWT         handlers.JWTConfig
	TrustProxy  bool // разбирать X-Forwarded-For/X-Real-IP, иначе limiter видит адрес сокета
}

// NewRouter builds the chi router with API, health, metrics and gated page routes.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if rt.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RecoveryMiddleware(rt.Logger))
	r.Use(middleware.LoggingWithSkip(rt.Logger, []string{"/healthz", "/metrics"}))
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", rt.Health.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(rt.Registry))

	pages := middleware.PageGate(rt.Logger, rt.JWT)(rt.Pages)

	// Регистрация и вход, ограничены по частоте
	r.Group(func(r chi.Router) {
		if rt.RateLimiter != nil {
			r.Use(rt.RateLimiter.Middleware)
		}
		r.Post("/api/signup", rt.Auth.Signup)
		r.Post("/signup", rt.Auth.Signup)
		r.Post("/api/auth/signin", rt.Auth.Signin)
		r.Post("/signin", rt.Auth.Signin)
	})
	// GET /signin и /signup отдают страницы
	r.Method(http.MethodGet, "/signin", pages)
	r.Method(http.MethodGet, "/signup", pages)

	r.Post("/api/auth/signout", rt.Auth.Signout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(rt.Logger, rt.JWT))

		r.Get("/api/auth/session", rt.Auth.Session)

		r.Route("/api/vault", func(r chi.Router) {
			r.Get("/", rt.Vault.List)
			r.Post("/", rt.Vault.Create)
			r.Put("/", rt.Vault.Update)
			r.Delete("/", rt.Vault.Delete)
		})
	})

	// Неизвестные API пути отвечают JSON, остальное уходит в страницы
	r.Handle("/api/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSONError(w, "Not Found", http.StatusNotFound)
	}))
	r.NotFound(pages.ServeHTTP)

	return r
}
