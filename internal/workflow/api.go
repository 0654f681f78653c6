// Package workflow — сценарии клиента поверх API: жизненный цикл заказа,
// право на отзыв, отзывы, профиль и товары. Локального кэша нет, каждое чтение идёт на сервер.
package workflow

import (
	"context"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/session"
)

// OrderAPI — часть apiclient.Client, нужная для заказов.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.Order, error)
	PayOrder(ctx context.Context, token string, orderID int64) (*models.Order, error)
	CancelOrder(ctx context.Context, token string, orderID int64) error
	ListBuyerOrders(ctx context.Context, token string, buyerID int64) ([]models.Order, error)
	ListSellerOrders(ctx context.Context, token string, sellerID int64) ([]models.Order, error)
}

type CommentAPI interface {
	ListComments(ctx context.Context, productID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, token string, req models.CreateCommentRequest) (*models.Comment, error)
}

type UserAPI interface {
	GetUser(ctx context.Context, token string, userID int64) (*models.UserInfo, error)
	UpdateUser(ctx context.Context, token string, userID int64, req models.UpdateUserRequest) (*models.UserInfo, error)
}

type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (*models.Product, error)
	ListSellerProducts(ctx context.Context, token string, sellerID int64) ([]models.Product, error)
}

// requireSession достаёт сессию из контекста; без неё — ошибка валидации до любого вызова сети.
func requireSession(ctx context.Context, op string) (models.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return models.Session{}, apperr.Validation(op, "please log in first")
	}
	return sess, nil
}
