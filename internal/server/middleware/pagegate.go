package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/iudanet/passvault/internal/server/handlers"
)

// SignInPath страница входа, на которую перенаправляются анонимные пользователи
const SignInPath = "/signin"

// ProtectedPagePrefixes страницы, требующие сессии
var ProtectedPagePrefixes = []string{"/passwordgenerator", "/passwordvault", "/vault"}

// IsProtectedPage проверяет, относится ли путь к защищенным страницам.
// Совпадает сам префикс и любые вложенные пути, но не "/passwordvaultx".
func IsProtectedPage(path string) bool {
	for _, prefix := range ProtectedPagePrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// PageGate создает middleware для страниц: без сессии 302 на страницу входа
// с callbackUrl, иначе пропускает запрос и добавляет заголовки безопасности
func PageGate(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsProtectedPage(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := handlers.ResolveSession(jwtConfig, r)
			if err != nil {
				logger.DebugContext(r.Context(), "Anonymous page request redirected", "path", r.URL.Path)
				target := SignInPath + "?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}

			setSecurityHeaders(w.Header())
			next.ServeHTTP(w, r.WithContext(handlers.WithSession(r.Context(), claims)))
		})
	}
}
