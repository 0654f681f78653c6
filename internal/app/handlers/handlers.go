// Package handlers — HTTP-обработчики эталонного API. Все ответы в конверте {code, message, data}.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/linemk/secondhand-shop/internal/lib/api/response"
	"github.com/linemk/secondhand-shop/internal/security/jwtmiddleware"
	"github.com/linemk/secondhand-shop/internal/service"
	"github.com/linemk/secondhand-shop/internal/storage"
)

var validate = validator.New()

// decode разбирает и валидирует тело запроса; при ошибке ответ уже записан.
func decode(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Error("invalid request: decoding error", slog.Any("error", err))
		response.Error(w, http.StatusBadRequest, "invalid request")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		logger.Error("invalid request: validation error", slog.Any("error", err))
		response.Error(w, http.StatusBadRequest, "validation error")
		return false
	}
	return true
}

// idParam читает положительный числовой параметр пути.
func idParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		logger.Error("invalid path parameter", slog.String("param", name))
		response.Error(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func userID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	id, ok := jwtmiddleware.FromContext(r.Context())
	if !ok {
		logger.Error("userID not found in context")
		response.Error(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return id, true
}

// fail переводит ошибку сервиса в код конверта.
func fail(w http.ResponseWriter, logger *slog.Logger, err error) {
	var te *service.TransitionError
	switch {
	case errors.As(err, &te):
		response.Error(w, http.StatusConflict, te.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUserDisabled):
		response.Error(w, http.StatusForbidden, "account is disabled")
	case errors.Is(err, service.ErrForbidden):
		response.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrOrderNotFound):
		response.Error(w, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, storage.ErrLocked):
		response.Error(w, http.StatusConflict, storage.ErrLocked.Error())
	case errors.Is(err, storage.ErrUserExists),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrOwnProduct),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrNotEligible):
		response.Error(w, http.StatusBadRequest, rootMessage(err))
	default:
		logger.Error("request failed", slog.Any("error", err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

var known = []error{
	storage.ErrUserNotFound, storage.ErrProductNotFound, storage.ErrOrderNotFound, storage.ErrUserExists,
	service.ErrOutOfStock, service.ErrOwnProduct, service.ErrInvalidPrice, service.ErrNotEligible,
}

// rootMessage отдаёт клиенту текст sentinel-ошибки без op-префиксов.
func rootMessage(err error) string {
	for _, k := range known {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return err.Error()
}

// Health — проверка живости для оркестратора.
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}
