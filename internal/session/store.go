// Package session хранит личность пользователя клиента: текущую сессию и её сохранение между запусками.
package session

import (
	"context"
	"errors"
)

// Ключи сохранённой сессии. Сессия действительна, только если есть все три.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyUserID   = "userId"
)

var keys = []string{KeyToken, KeyUsername, KeyUserID}

var ErrStoreUnavailable = errors.New("session store unavailable")

// Store — долговременное key/value хранилище сессии.
type Store interface {
	// Get возвращает ok=false, если ключа нет.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
