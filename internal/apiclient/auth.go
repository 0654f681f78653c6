package apiclient

import (
	"context"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
)

// Login — POST /auth/login. Сообщение сервера при неудаче возвращается как есть.
func (c *Client) Login(ctx context.Context, username, password string) (models.Session, error) {
	const op = "apiclient.Login"

	var resp models.LoginResponse
	err := c.do(ctx, op, http.MethodPost, "/auth/login", "",
		models.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return models.Session{}, err
	}

	sess := models.Session{UserID: resp.UserID, Username: resp.Username, Token: resp.Token}
	if !sess.Valid() {
		return models.Session{}, apperr.Protocol(op, codeOK, "login response is incomplete")
	}
	return sess, nil
}

// Register — POST /auth/register, данных в ответе нет.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	const op = "apiclient.Register"

	return c.do(ctx, op, http.MethodPost, "/auth/register", "", req, nil)
}
