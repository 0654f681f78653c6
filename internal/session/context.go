package session

import (
	"context"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

type ctxKey struct{}

// NewContext кладёт сессию в контекст вызова.
func NewContext(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext возвращает сессию; ok=false, если её нет или она неполная.
func FromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(models.Session)
	if !ok || !s.Valid() {
		return models.Session{}, false
	}
	return s, true
}
