// Package viewmodel превращает доменное состояние в простые структуры для отображения.
// Все функции чистые: без сети и без побочных эффектов.
package viewmodel

import (
	"time"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

const timeLayout = "2006-01-02 15:04"

// OrderCard — строка списка заказов.
type OrderCard struct {
	ID              int64
	OrderNo         string
	ProductID       int64
	Amount          string
	StatusLabel     string
	Status          models.OrderStatus
	ShippingAddress string
	CreatedAt       string
	CanPay          bool
	CanCancel       bool
}

// Orders строит карточки в исходном порядке. Кнопки оплаты и отмены
// показываются только покупателю (buyerActions) и только для pending.
func Orders(orders []models.Order, locale string, buyerActions bool) ([]OrderCard, error) {
	cards := make([]OrderCard, 0, len(orders))
	for _, o := range orders {
		label, err := StatusLabel(o.Status, locale)
		if err != nil {
			return nil, err
		}
		cards = append(cards, OrderCard{
			ID:              o.ID,
			OrderNo:         o.OrderNo,
			ProductID:       o.ProductID,
			Amount:          o.TotalAmount.StringFixed(2),
			StatusLabel:     label,
			Status:          o.Status,
			ShippingAddress: o.ShippingAddress,
			CreatedAt:       formatTime(o.CreateTime),
			CanPay:          buyerActions && o.CanPay(),
			CanCancel:       buyerActions && o.CanCancel(),
		})
	}
	return cards, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}
