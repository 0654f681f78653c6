package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/lib/api/response"
	"github.com/linemk/secondhand-shop/internal/service"
)

func GetUserHandler(log *slog.Logger, users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.GetUserHandler"))

		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		info, err := users.Get(r.Context(), id)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, info)
	}
}

// UpdateUserHandler – PUT /api/users/{id}, менять можно только свой профиль.
func UpdateUserHandler(log *slog.Logger, users service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(slog.String("op", "handlers.UpdateUserHandler"))

		callerID, ok := userID(w, r, logger)
		if !ok {
			return
		}
		id, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}
		var req models.UpdateUserRequest
		if !decode(w, r, logger, &req) {
			return
		}

		info, err := users.Update(r.Context(), callerID, id, req)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, info)
	}
}
