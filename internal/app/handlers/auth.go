package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/lib/api/response"
	"github.com/linemk/secondhand-shop/internal/service"
)

// LoginHandler – POST /api/auth/login, в data: token, username, userId, expiresIn.
func LoginHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req models.LoginRequest
		if !decode(w, r, logger, &req) {
			return
		}

		resp, err := authService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			logger.Info("login failed", slog.Any("error", err))
			fail(w, logger, err)
			return
		}
		response.OK(w, resp)
	}
}

// RegisterHandler – POST /api/auth/register.
func RegisterHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req models.RegisterRequest
		if !decode(w, r, logger, &req) {
			return
		}

		info, err := authService.Register(r.Context(), req)
		if err != nil {
			fail(w, logger, err)
			return
		}
		response.OK(w, info)
	}
}
