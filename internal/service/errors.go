package service

import (
	"errors"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrForbidden          = errors.New("forbidden")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrOwnProduct         = errors.New("cannot buy your own product")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrNotEligible        = errors.New("only buyers with a paid order can comment")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)

// TransitionError — недопустимый переход статуса. Текст совпадает с тем,
// по которому клиент распознаёт конфликт состояния ("Order cannot be paid").
type TransitionError struct {
	Action string
	From   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return "Order cannot be " + e.Action
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
