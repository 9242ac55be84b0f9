package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/metrics"
	"github.com/iudanet/passvault/internal/server/vault"
	"github.com/iudanet/passvault/pkg/api"
)

// Сообщения хранилища
const (
	MsgUpdateNotFound = "Item not found or unauthorized"
	MsgDeleteNotFound = "Item not found"
	MsgItemDeleted    = "Item deleted"
)

// VaultService performs vault CRUD on behalf of the caller
type VaultService interface {
	Create(ctx context.Context, id *models.Identity, fields models.VaultFields) (*models.VaultEntry, error)
	List(ctx context.Context, id *models.Identity) ([]*models.VaultEntry, error)
	Update(ctx context.Context, id *models.Identity, entryID string, fields models.VaultFields) (*models.VaultEntry, error)
	Delete(ctx context.Context, id *models.Identity, entryID string) error
}

// VaultHandler обрабатывает запросы /api/vault
type VaultHandler struct {
	responder
	vault VaultService
}

// NewVaultHandler создает новый handler хранилища
func NewVaultHandler(logger *slog.Logger, svc VaultService) *VaultHandler {
	return &VaultHandler{
		responder: responder{logger: logger},
		vault:     svc,
	}
}

// List обрабатывает GET /api/vault
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := IdentityFromContext(ctx)

	entries, err := h.vault.List(ctx, identity)
	if err != nil {
		h.handleError(w, r, "list", err, "")
		return
	}

	resp := make([]api.Entry, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toAPIEntry(entry))
	}

	metrics.ObserveVault("list", metrics.ResultSuccess)
	h.sendData(w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/vault
func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := IdentityFromContext(ctx)

	var req api.EntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode vault request", slog.Any("error", err))
		h.sendError(w, MsgInvalidBody, http.StatusBadRequest)
		return
	}

	entry, err := h.vault.Create(ctx, identity, toFields(req))
	if err != nil {
		h.handleError(w, r, "create", err, "")
		return
	}

	h.logger.InfoContext(ctx, "vault entry created", slog.String("entry_id", entry.ID))
	metrics.ObserveVault("create", metrics.ResultSuccess)
	h.sendData(w, toAPIEntry(entry), http.StatusCreated)
}

// Update обрабатывает PUT /api/vault
func (h *VaultHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := IdentityFromContext(ctx)

	var req api.EntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode vault request", slog.Any("error", err))
		h.sendError(w, MsgInvalidBody, http.StatusBadRequest)
		return
	}

	entry, err := h.vault.Update(ctx, identity, req.ID, toFields(req))
	if err != nil {
		h.handleError(w, r, "update", err, MsgUpdateNotFound)
		return
	}

	h.logger.InfoContext(ctx, "vault entry updated", slog.String("entry_id", entry.ID))
	metrics.ObserveVault("update", metrics.ResultSuccess)
	h.sendData(w, toAPIEntry(entry), http.StatusOK)
}

// Delete обрабатывает DELETE /api/vault?id=<id>
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := IdentityFromContext(ctx)

	entryID := r.URL.Query().Get("id")

	if err := h.vault.Delete(ctx, identity, entryID); err != nil {
		h.handleError(w, r, "delete", err, MsgDeleteNotFound)
		return
	}

	h.logger.InfoContext(ctx, "vault entry deleted", slog.String("entry_id", entryID))
	metrics.ObserveVault("delete", metrics.ResultSuccess)
	h.sendMessage(w, MsgItemDeleted, http.StatusOK)
}

// handleError переводит ошибку сервиса в HTTP ответ
func (h *VaultHandler) handleError(w http.ResponseWriter, r *http.Request, op string, err error, notFoundMsg string) {
	ctx := r.Context()

	var vErr *vault.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.logger.WarnContext(ctx, "invalid vault request", slog.String("op", op), slog.String("reason", vErr.Message))
		metrics.ObserveVault(op, metrics.ResultInvalidInput)
		h.sendError(w, vErr.Message, http.StatusBadRequest)
	case errors.Is(err, vault.ErrUnauthorized):
		metrics.ObserveVault(op, metrics.ResultError)
		h.sendError(w, MsgUnauthorized, http.StatusUnauthorized)
	case errors.Is(err, vault.ErrNotFound):
		h.logger.WarnContext(ctx, "vault entry not found", slog.String("op", op))
		metrics.ObserveVault(op, metrics.ResultNotFound)
		h.sendError(w, notFoundMsg, http.StatusNotFound)
	default:
		h.logger.ErrorContext(ctx, "vault operation failed", slog.String("op", op), slog.Any("error", err))
		metrics.ObserveVault(op, metrics.ResultError)
		h.sendError(w, MsgInternalError, http.StatusInternalServerError)
	}
}

func toFields(req api.EntryRequest) models.VaultFields {
	return models.VaultFields{
		Title:    req.Title,
		Username: req.Username,
		Password: req.Password,
		URL:      req.URL,
		Notes:    req.Notes,
	}
}

func toAPIEntry(entry *models.VaultEntry) api.Entry {
	return api.Entry{
		ID:        entry.ID,
		Title:     entry.Title,
		Username:  entry.Username,
		Password:  entry.Secret,
		URL:       entry.URL,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
