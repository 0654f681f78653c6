package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
)

func (c *Client) CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.Order, error) {
	const op = "apiclient.CreateOrder"

	var order models.Order
	if err := c.do(ctx, op, http.MethodPost, "/order", token, req, &order); err != nil {
		return nil, err
	}
	if err := checkStatus(op, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PayOrder — PUT /order/{id}/pay. Неоплачиваемый заказ даёт ErrInvalidState.
func (c *Client) PayOrder(ctx context.Context, token string, orderID int64) (*models.Order, error) {
	const op = "apiclient.PayOrder"

	var order models.Order
	path := fmt.Sprintf("/order/%d/pay", orderID)
	if err := c.do(ctx, op, http.MethodPut, path, token, nil, &order); err != nil {
		return nil, err
	}
	if err := checkStatus(op, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder — DELETE /order/{id}.
func (c *Client) CancelOrder(ctx context.Context, token string, orderID int64) error {
	const op = "apiclient.CancelOrder"

	return c.do(ctx, op, http.MethodDelete, fmt.Sprintf("/order/%d", orderID), token, nil, nil)
}

func (c *Client) ListBuyerOrders(ctx context.Context, token string, buyerID int64) ([]models.Order, error) {
	const op = "apiclient.ListBuyerOrders"

	return c.listOrders(ctx, op, token, fmt.Sprintf("/order/buyer/%d", buyerID))
}

func (c *Client) ListSellerOrders(ctx context.Context, token string, sellerID int64) ([]models.Order, error) {
	const op = "apiclient.ListSellerOrders"

	return c.listOrders(ctx, op, token, fmt.Sprintf("/order/seller/%d", sellerID))
}

func (c *Client) listOrders(ctx context.Context, op, token, path string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, op, http.MethodGet, path, token, nil, nullable{&orders}); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := checkStatus(op, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// статус вне 0..4 считаем нарушением протокола
func checkStatus(op string, o models.Order) error {
	if !o.Status.Valid() {
		return apperr.Protocol(op, codeOK, fmt.Sprintf("order %d has unknown status %d", o.ID, int(o.Status)))
	}
	return nil
}
