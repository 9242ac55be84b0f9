package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/passvault/internal/server/handlers"
)

func TestIsProtectedPage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/passwordgenerator", want: true},
		{path: "/passwordgenerator/advanced", want: true},
		{path: "/passwordvault", want: true},
		{path: "/passwordvault/123/edit", want: true},
		{path: "/vault/items", want: true},
		{path: "/passwordvaultx", want: false},
		{path: "/", want: false},
		{path: "/signin", want: false},
		{path: "/api/vault", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProtectedPage(tt.path))
		})
	}
}

func TestPageGate(t *testing.T) {
	cfg := testJWTConfig()
	token := testToken(t, cfg)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("page"))
	})
	gate := PageGate(setupTestLogger(), cfg)(next)

	t.Run("anonymous is redirected to signin", func(t *testing.T) {
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/passwordvault", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin?callbackUrl=%2Fpasswordvault", w.Header().Get("Location"))
	})

	t.Run("nested path keeps callback", func(t *testing.T) {
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/passwordgenerator/x?y=1", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin?callbackUrl=%2Fpasswordgenerator%2Fx%3Fy%3D1", w.Header().Get("Location"))
	})

	t.Run("authenticated gets page with security headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/passwordvault", nil)
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookieName, Value: token})

		w := httptest.NewRecorder()
		gate.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "page", w.Body.String())
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	})

	t.Run("public path passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Frame-Options"))
	})
}

func TestSetSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	setSecurityHeaders(w.Header())

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}
