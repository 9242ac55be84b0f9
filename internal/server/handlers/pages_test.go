package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPagesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "signin.html"), []byte("signin page"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "passwordvault"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "passwordvault", "index.html"), []byte("vault page"), 0o600))
	return dir
}

func TestPageHandler(t *testing.T) {
	dir := setupPagesDir(t)
	h := NewPageHandler(dir)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "root index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "home"},
		{name: "html suffix", method: http.MethodGet, path: "/signin", wantStatus: http.StatusOK, wantBody: "signin page"},
		{name: "directory index", method: http.MethodGet, path: "/passwordvault", wantStatus: http.StatusOK, wantBody: "vault page"},
		{name: "missing", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "traversal", method: http.MethodGet, path: "/../../etc/passwd", wantStatus: http.StatusNotFound},
		{name: "post", method: http.MethodPost, path: "/", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.URL.Path = tt.path
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestPageHandler_NoDir(t *testing.T) {
	h := NewPageHandler("")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/passwordvault", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
