package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

// ProductStorage описывает методы для работы с товарами.
type ProductStorage interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	// LockProductTx блокирует строку товара до конца транзакции.
	LockProductTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	UpdateStockTx(ctx context.Context, tx *sql.Tx, id int64, stock int) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, price, stock, category, seller_id, create_time"

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.SellerID, &p.CreateTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products ORDER BY create_time DESC")
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID int64) ([]models.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products WHERE seller_id = $1 ORDER BY create_time DESC", sellerID)
}

func (r *productRepository) list(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id))
}

func (r *productRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, description, price, stock, category, seller_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, create_time`,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.SellerID,
	).Scan(&p.ID, &p.CreateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *productRepository) LockProductTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1 FOR UPDATE NOWAIT", id)
	p, err := scanProduct(row)
	if err != nil {
		if isPQCode(err, pqLockNotAvailable) {
			return nil, fmt.Errorf("%w: %w", ErrLocked, err)
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) UpdateStockTx(ctx context.Context, tx *sql.Tx, id int64, stock int) error {
	res, err := tx.ExecContext(ctx, "UPDATE products SET stock = $1 WHERE id = $2", stock, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
