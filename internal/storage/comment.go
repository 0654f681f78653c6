package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Comment, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentStorage {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comments (product_id, user_id, order_id, content, rating)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, create_time`,
		c.ProductID, c.UserID, c.OrderID, c.Content, c.Rating,
	).Scan(&c.ID, &c.CreateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return c, nil
}

// ListByProduct — отзывы товара, новые сверху.
func (r *commentRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, user_id, order_id, content, rating, create_time
		 FROM comments WHERE product_id = $1 ORDER BY create_time DESC, id DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ProductID, &c.UserID, &c.OrderID, &c.Content, &c.Rating, &c.CreateTime); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
