package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product — товар на площадке; для ядра заказов только для чтения.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	SellerID    int64           `json:"sellerId"`
	CreateTime  time.Time       `json:"createTime"`
}

// CreateProductRequest — тело POST /product.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category" validate:"max=50"`
	SellerID    int64           `json:"sellerId" validate:"gt=0"`
}
