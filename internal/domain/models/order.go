package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// API отдаёт суммы числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderStatus — статус заказа. Числовой порядок значим: status >= StatusPaid означает «оплачен».
type OrderStatus int

const (
	StatusPending   OrderStatus = 0 // ожидает оплаты
	StatusPaid      OrderStatus = 1 // оплачен
	StatusShipped   OrderStatus = 2 // отправлен
	StatusCompleted OrderStatus = 3 // завершён
	StatusCancelled OrderStatus = 4 // отменён, достижим только из pending
)

// допустимые переходы между статусами
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {StatusShipped: true},
	StatusShipped:   {StatusCompleted: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition сообщает, разрешён ли переход from -> to.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Valid возвращает false для значений вне 0..4 — это нарушение протокола сервером.
func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// Terminal — completed и cancelled, дальше клиент заказ не меняет.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HasPaid — числовое правило status >= paid. Отменённый (4) тоже проходит.
func (s OrderStatus) HasPaid() bool {
	return s >= StatusPaid
}

func (s OrderStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPaid:
		return "paid"
	case StatusShipped:
		return "shipped"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
}

// Order — проекция заказа, которым владеет сервер.
type Order struct {
	ID              int64           `json:"id"`
	OrderNo         string          `json:"orderNo"`
	BuyerID         int64           `json:"buyerId"`
	SellerID        int64           `json:"sellerId"`
	ProductID       int64           `json:"productId"`
	Quantity        int             `json:"quantity"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	ContactPhone    string          `json:"contactPhone"`
	Status          OrderStatus     `json:"status"`
	CreateTime      time.Time       `json:"createTime"`
}

// CanPay — оплатить можно только заказ в статусе pending.
func (o *Order) CanPay() bool {
	return CanTransition(o.Status, StatusPaid)
}

// CanCancel — отменить можно только заказ в статусе pending.
func (o *Order) CanCancel() bool {
	return CanTransition(o.Status, StatusCancelled)
}

// CreateOrderRequest — тело POST /order.
type CreateOrderRequest struct {
	UserID          int64           `json:"userId" validate:"gt=0"`
	ProductID       int64           `json:"productId" validate:"gt=0"`
	Quantity        int             `json:"quantity" validate:"eq=1"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	ShippingAddress string          `json:"shippingAddress" validate:"max=200"`
	ContactPhone    string          `json:"contactPhone" validate:"max=20"`
}
