package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	// LockOrderTx блокирует строку заказа до конца транзакции.
	LockOrderTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Order, error)
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int64, status models.OrderStatus) error
	ListByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]models.Order, error)
	// HasPaidOrder — у покупателя есть заказ товара в статусе >= paid.
	HasPaidOrder(ctx context.Context, buyerID, productID int64) (bool, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_no, buyer_id, seller_id, product_id, quantity, total_amount,
	shipping_address, contact_phone, status, create_time`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{}
	if err := row.Scan(&o.ID, &o.OrderNo, &o.BuyerID, &o.SellerID, &o.ProductID, &o.Quantity,
		&o.TotalAmount, &o.ShippingAddress, &o.ContactPhone, &o.Status, &o.CreateTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	query := `INSERT INTO orders (order_no, buyer_id, seller_id, product_id, quantity, total_amount,
	              shipping_address, contact_phone, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, create_time`
	err := r.db.QueryRowContext(ctx, query,
		o.OrderNo, o.BuyerID, o.SellerID, o.ProductID, o.Quantity, o.TotalAmount,
		o.ShippingAddress, o.ContactPhone, o.Status,
	).Scan(&o.ID, &o.CreateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return o, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return scanOrder(r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
}

func (r *orderRepository) LockOrderTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Order, error) {
	o, err := scanOrder(tx.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1 FOR UPDATE NOWAIT", id))
	if err != nil {
		if isPQCode(err, pqLockNotAvailable) {
			return nil, fmt.Errorf("%w: %w", ErrLocked, err)
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int64, status models.OrderStatus) error {
	res, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1, update_time = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE buyer_id = $1 ORDER BY create_time DESC", buyerID)
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID int64) ([]models.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE seller_id = $1 ORDER BY create_time DESC", sellerID)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) HasPaidOrder(ctx context.Context, buyerID, productID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE buyer_id = $1 AND product_id = $2 AND status >= $3)`,
		buyerID, productID, models.StatusPaid,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
