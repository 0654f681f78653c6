package workflow

import (
	"context"
	"log/slog"

	"github.com/linemk/secondhand-shop/internal/session"
)

// Eligibility решает, может ли пользователь оставить отзыв о товаре.
type Eligibility struct {
	log *slog.Logger
	api OrderAPI
}

func NewEligibility(log *slog.Logger, api OrderAPI) *Eligibility {
	return &Eligibility{log: log, api: api}
}

// CanComment — true, если у покупателя есть хотя бы один заказ этого товара со статусом >= paid.
// Привязки к конкретному заказу нет. Любая ошибка даёт false и не всплывает наружу.
func (e *Eligibility) CanComment(ctx context.Context, userID, productID int64) bool {
	const op = "workflow.Eligibility.CanComment"

	ok, err := e.Check(ctx, userID, productID)
	if err != nil {
		e.log.Debug("eligibility check failed",
			slog.String("op", op),
			slog.Int64("user_id", userID),
			slog.Int64("product_id", productID),
			slog.Any("error", err),
		)
		return false
	}
	return ok
}

// Check — то же правило, но ошибка запроса возвращается вызывающему.
// Без сессии — false без обращения к серверу.
func (e *Eligibility) Check(ctx context.Context, userID, productID int64) (bool, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return false, nil
	}

	orders, err := e.api.ListBuyerOrders(ctx, sess.Token, userID)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.ProductID == productID && o.Status.HasPaid() {
			return true, nil
		}
	}
	return false, nil
}
