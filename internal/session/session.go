package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/linemk/secondhand-shop/internal/domain/models"
)

var ErrNoSession = errors.New("no active session")

// Authenticator обменивает учётные данные на сессию (apiclient.Client).
type Authenticator interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
}

// Manager владеет текущей сессией: создаёт при входе, очищает при выходе.
type Manager struct {
	log   *slog.Logger
	auth  Authenticator
	store Store

	mu      sync.RWMutex
	current *models.Session
}

func NewManager(log *slog.Logger, auth Authenticator, store Store) *Manager {
	return &Manager{log: log, auth: auth, store: store}
}

// Login не повторяет запрос при ошибке; ошибка сервера возвращается как есть.
// Если хранилище недоступно, сессия остаётся только в памяти.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Session, error) {
	const op = "session.Manager.Login"
	logger := m.log.With(slog.String("op", op), slog.String("username", username))

	sess, err := m.auth.Login(ctx, username, password)
	if err != nil {
		logger.Info("login failed", slog.Any("error", err))
		return models.Session{}, err
	}

	m.mu.Lock()
	m.current = &sess
	m.mu.Unlock()

	if err := m.persist(ctx, sess); err != nil {
		logger.Warn("failed to persist session", slog.Any("error", err))
	}
	logger.Info("logged in", slog.Int64("user_id", sess.UserID))
	return sess, nil
}

// Logout очищает сессию в памяти и в хранилище. Без активной сессии — no-op для памяти.
func (m *Manager) Logout(ctx context.Context) error {
	const op = "session.Manager.Logout"

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.log.Info("logged out", slog.String("op", op))
	return nil
}

func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Restore поднимает сессию из хранилища при старте. Нет хотя бы одного ключа
// или userId не положительное число — считаем, что пользователь не вошёл.
func (m *Manager) Restore(ctx context.Context) (models.Session, bool, error) {
	const op = "session.Manager.Restore"
	logger := m.log.With(slog.String("op", op))

	values := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := m.store.Get(ctx, k)
		if err != nil {
			return models.Session{}, false, fmt.Errorf("%s: %w", op, err)
		}
		if !ok || v == "" {
			logger.Debug("session key missing", slog.String("key", k))
			return models.Session{}, false, nil
		}
		values[k] = v
	}

	id, err := strconv.ParseInt(values[KeyUserID], 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("stored user id is invalid", slog.String("value", values[KeyUserID]))
		return models.Session{}, false, nil
	}

	sess := models.Session{UserID: id, Username: values[KeyUsername], Token: values[KeyToken]}
	m.mu.Lock()
	m.current = &sess
	m.mu.Unlock()
	return sess, true, nil
}

func (m *Manager) persist(ctx context.Context, s models.Session) error {
	if err := m.store.Set(ctx, KeyToken, s.Token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyUsername, s.Username); err != nil {
		return err
	}
	return m.store.Set(ctx, KeyUserID, strconv.FormatInt(s.UserID, 10))
}
