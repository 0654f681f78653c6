package workflow

import (
	"context"
	"log/slog"

	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/shopspring/decimal"
)

// OrderDefaults — адрес и телефон, которые подставляются в заказ, пока покупатель их не указал.
type OrderDefaults struct {
	ShippingAddress string
	ContactPhone    string
}

// OrderManager — единственный путь изменения статуса заказа со стороны клиента.
// Переходы shipped и completed делает сервер, клиент их только показывает.
type OrderManager interface {
	CreateOrder(ctx context.Context, productID int64, totalPrice decimal.Decimal) (*models.Order, error)
	PayOrder(ctx context.Context, orderID int64) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID int64) error
	ListOrdersForBuyer(ctx context.Context, userID int64) ([]models.Order, error)
	ListOrdersForSeller(ctx context.Context, userID int64) ([]models.Order, error)
}

type orderManager struct {
	log      *slog.Logger
	api      OrderAPI
	defaults OrderDefaults
}

func NewOrderManager(log *slog.Logger, api OrderAPI, defaults OrderDefaults) OrderManager {
	return &orderManager{log: log, api: api, defaults: defaults}
}

// CreateOrder создаёт заказ на одну единицу товара по цене на момент покупки.
func (m *orderManager) CreateOrder(ctx context.Context, productID int64, totalPrice decimal.Decimal) (*models.Order, error) {
	const op = "workflow.OrderManager.CreateOrder"
	logger := m.log.With(slog.String("op", op), slog.Int64("product_id", productID))

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}

	req := models.CreateOrderRequest{
		UserID:          sess.UserID,
		ProductID:       productID,
		Quantity:        1,
		TotalPrice:      totalPrice,
		ShippingAddress: m.defaults.ShippingAddress,
		ContactPhone:    m.defaults.ContactPhone,
	}
	if err := validate.Struct(req); err != nil {
		return nil, validationError(op, err, nil)
	}
	if totalPrice.IsNegative() {
		return nil, validationError(op, errNegativeAmount, nil)
	}

	order, err := m.api.CreateOrder(ctx, sess.Token, req)
	if err != nil {
		logger.Info("create order failed", slog.Any("error", err))
		return nil, err
	}
	logger.Info("order created", slog.Int64("order_id", order.ID), slog.String("order_no", order.OrderNo))
	return order, nil
}

// PayOrder не повторяется после успеха: повторная оплата вернёт ErrInvalidState от сервера.
// После успеха вызывающий обязан перечитать список заказов.
func (m *orderManager) PayOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	const op = "workflow.OrderManager.PayOrder"
	logger := m.log.With(slog.String("op", op), slog.Int64("order_id", orderID))

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}

	order, err := m.api.PayOrder(ctx, sess.Token, orderID)
	if err != nil {
		logger.Info("pay order failed", slog.Any("error", err))
		return nil, err
	}
	logger.Info("order paid")
	return order, nil
}

func (m *orderManager) CancelOrder(ctx context.Context, orderID int64) error {
	const op = "workflow.OrderManager.CancelOrder"
	logger := m.log.With(slog.String("op", op), slog.Int64("order_id", orderID))

	sess, err := requireSession(ctx, op)
	if err != nil {
		return err
	}

	if err := m.api.CancelOrder(ctx, sess.Token, orderID); err != nil {
		logger.Info("cancel order failed", slog.Any("error", err))
		return err
	}
	logger.Info("order cancelled")
	return nil
}

func (m *orderManager) ListOrdersForBuyer(ctx context.Context, userID int64) ([]models.Order, error) {
	const op = "workflow.OrderManager.ListOrdersForBuyer"

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}
	return m.api.ListBuyerOrders(ctx, sess.Token, userID)
}

func (m *orderManager) ListOrdersForSeller(ctx context.Context, userID int64) ([]models.Order, error) {
	const op = "workflow.OrderManager.ListOrdersForSeller"

	sess, err := requireSession(ctx, op)
	if err != nil {
		return nil, err
	}
	return m.api.ListSellerOrders(ctx, sess.Token, userID)
}
