package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/passvault/pkg/api"
)

// ErrUnauthorized returned when the server rejects the session token
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the server
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is позволяет errors.Is(err, ErrUnauthorized) для ответов 401
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL returns the server URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the session token sent as Bearer on every request
func (c *Client) SetToken(token string) {
	c.token = token
}

// Signup регистрирует нового пользователя
func (c *Client) Signup(ctx context.Context, req api.CredentialsRequest) (string, error) {
	msg, err := c.doRequest(ctx, http.MethodPost, "/api/signup", req, nil)
	if err != nil {
		return "", fmt.Errorf("signup request failed: %w", err)
	}
	return msg, nil
}

// Signin выполняет аутентификацию и возвращает токен сессии
func (c *Client) Signin(ctx context.Context, req api.CredentialsRequest) (*api.SigninResponse, error) {
	var resp api.SigninResponse
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signin", req, &resp); err != nil {
		return nil, fmt.Errorf("signin request failed: %w", err)
	}
	return &resp, nil
}

// Signout сообщает серверу о выходе
func (c *Client) Signout(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signout", nil, nil); err != nil {
		return fmt.Errorf("signout request failed: %w", err)
	}
	return nil
}

// Session возвращает данные текущей сессии
func (c *Client) Session(ctx context.Context) (*api.SessionResponse, error) {
	var resp api.SessionResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/auth/session", nil, &resp); err != nil {
		return nil, fmt.Errorf("session request failed: %w", err)
	}
	return &resp, nil
}

// ListEntries возвращает записи хранилища, новые первыми
func (c *Client) ListEntries(ctx context.Context) ([]api.Entry, error) {
	var resp []api.Entry
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/vault", nil, &resp); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	return resp, nil
}

// CreateEntry создает запись
func (c *Client) CreateEntry(ctx context.Context, req api.EntryRequest) (*api.Entry, error) {
	var resp api.Entry
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/vault", req, &resp); err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	return &resp, nil
}

// UpdateEntry заменяет поля записи req.ID
func (c *Client) UpdateEntry(ctx context.Context, req api.EntryRequest) (*api.Entry, error) {
	var resp api.Entry
	if _, err := c.doRequest(ctx, http.MethodPut, "/api/vault", req, &resp); err != nil {
		return nil, fmt.Errorf("update request failed: %w", err)
	}
	return &resp, nil
}

// DeleteEntry удаляет запись
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	path := "/api/vault?id=" + url.QueryEscape(id)
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос, разбирает конверт ответа и
// декодирует data в result. Возвращает message из конверта.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) (string, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope api.RawResponse
	decodeErr := json.Unmarshal(respBody, &envelope)

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return "", apiErr
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return "", fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return envelope.Message, nil
}
