package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/passvault/pkg/api"
)

// Сообщения ответов, совместимые с веб-клиентом
const (
	MsgUnauthorized   = "Unauthorized"
	MsgInternalError  = "Internal Server Error"
	MsgInvalidBody    = "Invalid request body"
	MsgRateLimited    = "Too many requests, please try again later"
	maxRequestBodyLen = 1 << 20
)

// WriteJSONError отправляет конверт ошибки без логгера (для middleware)
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Response{Success: false, Message: message})
}

// responder общие методы отправки ответов для всех handlers
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendData отправляет успешный ответ с данными
func (h responder) sendData(w http.ResponseWriter, data interface{}, statusCode int) {
	h.sendJSON(w, api.Response{Success: true, Data: data}, statusCode)
}

// sendMessage отправляет успешный ответ с сообщением
func (h responder) sendMessage(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.Response{Success: true, Message: message}, statusCode)
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.Response{Success: false, Message: message}, statusCode)
}

// decodeJSON читает тело запроса с ограничением размера
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyLen)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
