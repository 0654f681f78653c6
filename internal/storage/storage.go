package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username or email already taken")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrLocked          = errors.New("resource is locked, please try again")
)

// коды ошибок PostgreSQL
const (
	pqUniqueViolation  = "23505"
	pqLockNotAvailable = "55P03"
)

func isPQCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
