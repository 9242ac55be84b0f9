package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/passvault/internal/models"
)

// SessionCookieName имя HttpOnly cookie с токеном сессии
const SessionCookieName = "passvault_session"

const tokenIssuer = "passvault"

// ErrNoSession indicates that the request carries no session token
var ErrNoSession = errors.New("no session token")

// contextKey тип для ключей контекста
type contextKey string

// sessionKey ключ для хранения claims сессии в контексте
const sessionKey contextKey = "session"

// CustomClaims представляет JWT claims сессии
type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity возвращает идентичность пользователя из claims
func (c *CustomClaims) Identity() *models.Identity {
	return &models.Identity{ID: c.UserID, Email: c.Email}
}

// JWTConfig содержит конфигурацию для сессий
type JWTConfig struct {
	Secret        []byte
	SessionTTL    time.Duration
	SecureCookies bool
}

// GenerateSessionToken создает подписанный JWT сессии для пользователя
func GenerateSessionToken(cfg JWTConfig, identity *models.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(cfg.SessionTTL)

	claims := CustomClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	// Точность NumericDate - секунды
	return tokenString, claims.ExpiresAt.Time, nil
}

// ValidateSessionToken валидирует и парсит JWT сессии
func ValidateSessionToken(cfg JWTConfig, tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ResolveSession извлекает и проверяет сессию запроса.
// Сначала Authorization: Bearer, затем cookie сессии.
func ResolveSession(cfg JWTConfig, r *http.Request) (*CustomClaims, error) {
	token := bearerToken(r)
	if token == "" {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}
	}

	if token == "" {
		return nil, ErrNoSession
	}

	return ValidateSessionToken(cfg, token)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Ожидаем формат: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// WithSession добавляет claims сессии в контекст
func WithSession(ctx context.Context, claims *CustomClaims) context.Context {
	return context.WithValue(ctx, sessionKey, claims)
}

// SessionFromContext извлекает claims сессии из контекста
func SessionFromContext(ctx context.Context) (*CustomClaims, bool) {
	claims, ok := ctx.Value(sessionKey).(*CustomClaims)
	return claims, ok && claims != nil
}

// IdentityFromContext извлекает идентичность пользователя из контекста
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	claims, ok := SessionFromContext(ctx)
	if !ok {
		return nil, false
	}
	return claims.Identity(), true
}

func sessionCookie(cfg JWTConfig, token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie(cfg JWTConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
