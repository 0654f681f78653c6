package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

func (c *Client) GetUser(ctx context.Context, token string, userID int64) (*models.UserInfo, error) {
	const op = "apiclient.GetUser"

	var info models.UserInfo
	if err := c.do(ctx, op, http.MethodGet, fmt.Sprintf("/users/%d", userID), token, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateUser — PUT /users/{id}. Пустой пароль сервер трактует как «не менять».
func (c *Client) UpdateUser(ctx context.Context, token string, userID int64, req models.UpdateUserRequest) (*models.UserInfo, error) {
	const op = "apiclient.UpdateUser"

	var info models.UserInfo
	if err := c.do(ctx, op, http.MethodPut, fmt.Sprintf("/users/%d", userID), token, req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
