package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/secondhand-shop/internal/broker"
	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/metrics"
	"github.com/linemk/secondhand-shop/internal/storage"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	Create(ctx context.Context, buyerID int64, req models.CreateOrderRequest) (*models.Order, error)
	Get(ctx context.Context, userID, orderID int64) (*models.Order, error)
	Pay(ctx context.Context, userID, orderID int64) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID int64) error
	Ship(ctx context.Context, userID, orderID int64) (*models.Order, error)
	Finish(ctx context.Context, userID, orderID int64) (*models.Order, error)
	ListByBuyer(ctx context.Context, userID, buyerID int64) ([]models.Order, error)
	ListBySeller(ctx context.Context, userID, sellerID int64) ([]models.Order, error)
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	productRepo storage.ProductStorage
	publisher   broker.Publisher
}

func NewOrderService(
	log *slog.Logger,
	db *sql.DB,
	orderRepo storage.OrderStorage,
	productRepo storage.ProductStorage,
	publisher broker.Publisher,
) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// NewOrderNo: "ORD" + unix millis + первые 8 символов UUID в верхнем регистре.
func NewOrderNo(now time.Time) string {
	return fmt.Sprintf("ORD%d%s", now.UnixMilli(), strings.ToUpper(uuid.NewString()[:8]))
}

// Create оформляет заказ в статусе pending. Продавец берётся из товара,
// сумма считается по текущей цене. Событие OrderCreated уходит в брокер;
// сбой публикации только логируется.
func (s *orderService) Create(ctx context.Context, buyerID int64, req models.CreateOrderRequest) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("buyerID", buyerID),
		slog.Int64("productID", req.ProductID),
	)

	order, err := s.create(ctx, logger, op, buyerID, req)
	metrics.RecordOrderOperation("create", err == nil)
	if err != nil {
		return nil, err
	}

	event := broker.OrderCreated{
		OrderID:         order.ID,
		OrderNo:         order.OrderNo,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
		ProductID:       order.ProductID,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		ContactPhone:    order.ContactPhone,
		CreateTime:      order.CreateTime,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		logger.Error("failed to publish order event, order is kept",
			slog.Int64("orderID", order.ID),
			slog.Any("error", err),
		)
	}

	logger.Info("order created", slog.Int64("orderID", order.ID), slog.String("orderNo", order.OrderNo))
	return order, nil
}

func (s *orderService) create(ctx context.Context, logger *slog.Logger, op string, buyerID int64, req models.CreateOrderRequest) (*models.Order, error) {
	if req.UserID != 0 && req.UserID != buyerID {
		logger.Warn("buyer mismatch", slog.Int64("requested", req.UserID))
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	product, err := s.productRepo.GetProduct(ctx, req.ProductID)
	if err != nil {
		if !errors.Is(err, storage.ErrProductNotFound) {
			logger.Error("failed to get product", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
	}
	if product.SellerID == buyerID {
		return nil, fmt.Errorf("%s: %w", op, ErrOwnProduct)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if product.Stock < quantity {
		logger.Info("product out of stock", slog.Int("stock", product.Stock))
		return nil, fmt.Errorf("%s: %w", op, ErrOutOfStock)
	}

	order, err := s.orderRepo.CreateOrder(ctx, &models.Order{
		OrderNo:         NewOrderNo(time.Now()),
		BuyerID:         buyerID,
		SellerID:        product.SellerID,
		ProductID:       product.ID,
		Quantity:        quantity,
		TotalAmount:     product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		ShippingAddress: req.ShippingAddress,
		ContactPhone:    req.ContactPhone,
		Status:          models.StatusPending,
	})
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}
	return order, nil
}

// Get доступен только участникам заказа.
func (s *orderService) Get(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderService.Get"

	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return order, nil
}

func (s *orderService) Pay(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderService.Pay"
	order, err := s.transition(ctx, op, userID, orderID, models.StatusPaid, "paid", byBuyer)
	metrics.RecordOrderOperation("pay", err == nil)
	return order, err
}

func (s *orderService) Cancel(ctx context.Context, userID, orderID int64) error {
	const op = "service.OrderService.Cancel"
	_, err := s.transition(ctx, op, userID, orderID, models.StatusCancelled, "cancelled", byBuyer)
	metrics.RecordOrderOperation("cancel", err == nil)
	return err
}

func (s *orderService) Ship(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderService.Ship"
	order, err := s.transition(ctx, op, userID, orderID, models.StatusShipped, "shipped", bySeller)
	metrics.RecordOrderOperation("ship", err == nil)
	return order, err
}

func (s *orderService) Finish(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderService.Finish"
	order, err := s.transition(ctx, op, userID, orderID, models.StatusCompleted, "finished", byBuyer)
	metrics.RecordOrderOperation("finish", err == nil)
	return order, err
}

type actor int

const (
	byBuyer actor = iota
	bySeller
)

// transition меняет статус под блокировкой строки заказа.
// При оплате в той же транзакции списывается остаток товара.
// Если что-то идет не так, транзакция откатывается.
func (s *orderService) transition(
	ctx context.Context,
	op string,
	userID, orderID int64,
	to models.OrderStatus,
	action string,
	who actor,
) (*models.Order, error) {
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("orderID", orderID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order, err := s.orderRepo.LockOrderTx(ctx, tx, orderID)
	if err != nil {
		rollback(tx, logger)
		logger.Warn("failed to lock order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to lock order: %w", op, err)
	}

	owner := order.BuyerID
	if who == bySeller {
		owner = order.SellerID
	}
	if owner != userID {
		rollback(tx, logger)
		logger.Warn("user is not allowed to change the order")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if !models.CanTransition(order.Status, to) {
		rollback(tx, logger)
		logger.Info("transition rejected", slog.String("from", order.Status.String()), slog.String("to", to.String()))
		return nil, fmt.Errorf("%s: %w", op, &TransitionError{Action: action, From: order.Status})
	}

	if to == models.StatusPaid {
		product, err := s.productRepo.LockProductTx(ctx, tx, order.ProductID)
		if err != nil {
			rollback(tx, logger)
			logger.Error("failed to lock product", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to lock product: %w", op, err)
		}
		if product.Stock < order.Quantity {
			rollback(tx, logger)
			logger.Info("product out of stock", slog.Int("stock", product.Stock))
			return nil, fmt.Errorf("%s: %w", op, ErrOutOfStock)
		}
		if err := s.productRepo.UpdateStockTx(ctx, tx, product.ID, product.Stock-order.Quantity); err != nil {
			rollback(tx, logger)
			logger.Error("failed to update stock", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to update stock: %w", op, err)
		}
	}

	if err := s.orderRepo.UpdateStatusTx(ctx, tx, order.ID, to); err != nil {
		rollback(tx, logger)
		logger.Error("failed to update order status", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update order status: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	order.Status = to
	logger.Info("order status changed", slog.String("status", to.String()))
	return order, nil
}

func rollback(tx *sql.Tx, logger *slog.Logger) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}

// ListByBuyer — покупатель видит только свои заказы.
func (s *orderService) ListByBuyer(ctx context.Context, userID, buyerID int64) ([]models.Order, error) {
	const op = "service.OrderService.ListByBuyer"

	if userID != buyerID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) ListBySeller(ctx context.Context, userID, sellerID int64) ([]models.Order, error) {
	const op = "service.OrderService.ListBySeller"

	if userID != sellerID {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	orders, err := s.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
