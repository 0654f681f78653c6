package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) error
}

var registerMessages = map[string]string{
	"Username": "username must be 3 to 50 characters",
	"Email":    "invalid email address",
	"Password": "password must be at least 6 characters",
}

// Register создаёт учётную запись. Сессию не создаёт: после регистрации нужно войти.
func Register(ctx context.Context, log *slog.Logger, api Registrar, username, email, password string) error {
	const op = "workflow.Register"

	req := models.RegisterRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := validate.Struct(req); err != nil {
		return validationError(op, err, registerMessages)
	}

	if err := api.Register(ctx, req); err != nil {
		log.Info("registration failed", slog.String("op", op), slog.Any("error", err))
		return err
	}
	log.Info("user registered", slog.String("op", op), slog.String("username", req.Username))
	return nil
}
