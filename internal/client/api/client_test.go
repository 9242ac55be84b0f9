package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passvault/pkg/api"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, resp api.Response) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Signup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/signup", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req api.CredentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		assert.Equal(t, "password123", req.Password)

		writeEnvelope(t, w, http.StatusCreated, api.Response{Success: true, Message: "User created successfully"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	msg, err := client.Signup(context.Background(), api.CredentialsRequest{Email: "alice@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "User created successfully", msg)
}

func TestClient_Signup_Error(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantMsg    string
	}{
		{
			name: "duplicate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, http.StatusBadRequest, api.Response{Message: "User already exists"})
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "User already exists",
		},
		{
			name: "plain text body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad gateway", http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL).Signup(context.Background(), api.CredentialsRequest{Email: "a@b.c", Password: "x"})
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_Signin(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Data: api.SigninResponse{
			ExpiresAt: expires,
			User:      api.UserInfo{ID: "user-1", Email: "alice@example.com"},
			Token:     "jwt-token",
		}})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Signin(context.Background(), api.CredentialsRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestClient_Signin_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, api.Response{Message: "Invalid password"})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Signin(context.Background(), api.CredentialsRequest{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid password")
}

func TestClient_VaultRequestsCarryToken(t *testing.T) {
	created := time.Now().UTC().Truncate(time.Second)
	entry := api.Entry{
		CreatedAt: created,
		UpdatedAt: created,
		ID:        "entry-1",
		Title:     "Gmail",
		Username:  "alice",
		Password:  "secret",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/vault", r.URL.Path)

		switch r.Method {
		case http.MethodGet:
			writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Data: []api.Entry{entry}})
		case http.MethodPost:
			var req api.EntryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Empty(t, req.ID)
			writeEnvelope(t, w, http.StatusCreated, api.Response{Success: true, Data: entry})
		case http.MethodPut:
			var req api.EntryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "entry-1", req.ID)
			updated := entry
			updated.Password = req.Password
			writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Data: updated})
		case http.MethodDelete:
			assert.Equal(t, "entry-1", r.URL.Query().Get("id"))
			writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Message: "Item deleted"})
		}
	}))
	defer server.Close()

	ctx := context.Background()
	client := NewClient(server.URL)
	client.SetToken("tok")

	list, err := client.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gmail", list[0].Title)

	got, err := client.CreateEntry(ctx, api.EntryRequest{Title: "Gmail", Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "entry-1", got.ID)

	got, err = client.UpdateEntry(ctx, api.EntryRequest{ID: "entry-1", Title: "Gmail", Username: "alice", Password: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)

	require.NoError(t, client.DeleteEntry(ctx, "entry-1"))
}

func TestClient_ListEntries_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Data: []api.Entry{}})
	}))
	defer server.Close()

	list, err := NewClient(server.URL).ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_DeleteEntry_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, api.Response{Message: "Item not found"})
	}))
	defer server.Close()

	err := NewClient(server.URL).DeleteEntry(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Session(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/auth/session", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Data: api.SessionResponse{
			User: api.UserInfo{ID: "u1", Email: "alice@example.com"},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok")
	resp, err := client.Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).ListEntries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).ListEntries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
