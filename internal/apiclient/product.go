package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "apiclient.ListProducts"

	var products []models.Product
	if err := c.do(ctx, op, http.MethodGet, "/product", "", nil, nullable{&products}); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "apiclient.GetProduct"

	var product models.Product
	if err := c.do(ctx, op, http.MethodGet, fmt.Sprintf("/product/%d", id), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct публикует товар от имени продавца req.SellerID.
func (c *Client) CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (*models.Product, error) {
	const op = "apiclient.CreateProduct"

	var product models.Product
	if err := c.do(ctx, op, http.MethodPost, "/product", token, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListSellerProducts(ctx context.Context, token string, sellerID int64) ([]models.Product, error) {
	const op = "apiclient.ListSellerProducts"

	var products []models.Product
	path := fmt.Sprintf("/product/seller/%d", sellerID)
	if err := c.do(ctx, op, http.MethodGet, path, token, nil, nullable{&products}); err != nil {
		return nil, err
	}
	return products, nil
}
