package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/passvault/internal/server/handlers"
)

// AuthMiddleware создает middleware для API: без валидной сессии 401 JSON
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := handlers.ResolveSession(jwtConfig, r)
			if err != nil {
				if !errors.Is(err, handlers.ErrNoSession) {
					logger.WarnContext(r.Context(), "Invalid session token", "error", err)
				}
				handlers.WriteJSONError(w, handlers.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			logger.DebugContext(r.Context(), "User authenticated", "user_id", claims.UserID)

			// Передаем запрос дальше с claims в контексте
			next.ServeHTTP(w, r.WithContext(handlers.WithSession(r.Context(), claims)))
		})
	}
}
