package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/auth"
	"github.com/iudanet/passvault/internal/server/metrics"
	"github.com/iudanet/passvault/pkg/api"
)

// Сообщения аутентификации
const (
	MsgUserCreated         = "User created successfully"
	MsgUserExists          = "User already exists"
	MsgCredentialsRequired = "Email and password required"
	MsgNoUser              = "No user found with this email"
	MsgInvalidPassword     = "Invalid password"
	MsgSignedOut           = "Signed out"
)

// Authenticator registers accounts and verifies credentials
type Authenticator interface {
	Signup(ctx context.Context, email, password string) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	responder
	auth      Authenticator
	jwtConfig JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, authenticator Authenticator, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		auth:      authenticator,
		jwtConfig: jwtConfig,
	}
}

// Signup обрабатывает POST /api/signup
// Регистрация нового пользователя
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		h.sendError(w, MsgInvalidBody, http.StatusBadRequest)
		return
	}

	account, err := h.auth.Signup(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCredentialsRequired):
			h.sendError(w, MsgCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.WarnContext(ctx, "invalid signup input", slog.Any("error", err))
			h.sendError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, auth.ErrEmailTaken):
			h.logger.WarnContext(ctx, "user already exists")
			h.sendError(w, MsgUserExists, http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
			h.sendError(w, MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("user_id", account.ID))

	h.sendMessage(w, MsgUserCreated, http.StatusCreated)
}

// Signin обрабатывает POST /api/auth/signin
// Проверяет пароль, выдает JWT и устанавливает cookie сессии
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signin request", slog.Any("error", err))
		metrics.ObserveAuth(metrics.ResultInvalidInput)
		h.sendError(w, MsgInvalidBody, http.StatusBadRequest)
		return
	}

	identity, err := h.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCredentialsRequired):
			metrics.ObserveAuth(metrics.ResultInvalidInput)
			h.sendError(w, MsgCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, auth.ErrNoUser):
			h.logger.WarnContext(ctx, "signin failed: user not found")
			metrics.ObserveAuth(metrics.ResultNoUser)
			h.sendError(w, MsgNoUser, http.StatusUnauthorized)
		case errors.Is(err, auth.ErrInvalidPassword):
			h.logger.WarnContext(ctx, "signin failed: invalid password")
			metrics.ObserveAuth(metrics.ResultBadPassword)
			h.sendError(w, MsgInvalidPassword, http.StatusUnauthorized)
		default:
			h.logger.ErrorContext(ctx, "failed to authenticate", slog.Any("error", err))
			metrics.ObserveAuth(metrics.ResultError)
			h.sendError(w, MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	token, expiresAt, err := GenerateSessionToken(h.jwtConfig, identity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.Any("error", err))
		metrics.ObserveAuth(metrics.ResultError)
		h.sendError(w, MsgInternalError, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, sessionCookie(h.jwtConfig, token, expiresAt))
	metrics.ObserveAuth(metrics.ResultSuccess)

	h.logger.InfoContext(ctx, "user signed in", slog.String("user_id", identity.ID))

	h.sendData(w, api.SigninResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      api.UserInfo{ID: identity.ID, Email: identity.Email},
	}, http.StatusOK)
}

// Signout обрабатывает POST /api/auth/signout
// Сессии stateless: достаточно удалить cookie
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, expiredSessionCookie(h.jwtConfig))
	h.sendMessage(w, MsgSignedOut, http.StatusOK)
}

// Session обрабатывает GET /api/auth/session
// Возвращает пользователя текущей сессии
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := SessionFromContext(r.Context())
	if !ok {
		h.sendError(w, MsgUnauthorized, http.StatusUnauthorized)
		return
	}

	h.sendData(w, api.SessionResponse{
		User:      api.UserInfo{ID: claims.UserID, Email: claims.Email},
		ExpiresAt: claims.ExpiresAt.Time,
	}, http.StatusOK)
}
