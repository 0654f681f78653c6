package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

func (c *Client) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	const op = "apiclient.ListComments"

	var comments []models.Comment
	path := fmt.Sprintf("/comment/product/%d", productID)
	if err := c.do(ctx, op, http.MethodGet, path, "", nil, nullable{&comments}); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, token string, req models.CreateCommentRequest) (*models.Comment, error) {
	const op = "apiclient.CreateComment"

	var comment models.Comment
	if err := c.do(ctx, op, http.MethodPost, "/comment", token, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
