package session_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linemk/secondhand-shop/internal/apperr"
	"github.com/linemk/secondhand-shop/internal/domain/models"
	"github.com/linemk/secondhand-shop/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth — фиктивный Authenticator.
type fakeAuth struct {
	sess  models.Session
	err   error
	calls int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (models.Session, error) {
	f.calls++
	return f.sess, f.err
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestManager_LoginPersistsAllKeys(t *testing.T) {
	store := session.NewMemoryStore()
	auth := &fakeAuth{sess: models.Session{UserID: 3, Username: "alice", Token: "tok"}}
	m := session.NewManager(newLogger(), auth, store)

	sess, err := m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), sess.UserID)

	cur, ok := m.Current()
	assert.True(t, ok, "session must be active after login")
	assert.Equal(t, sess, cur)

	for key, want := range map[string]string{session.KeyToken: "tok", session.KeyUsername: "alice", session.KeyUserID: "3"} {
		v, ok, err := store.Get(context.Background(), key)
		assert.NoError(t, err)
		assert.True(t, ok, "key %s must be stored", key)
		assert.Equal(t, want, v)
	}
}

func TestManager_LoginFailureKeepsLoggedOut(t *testing.T) {
	auth := &fakeAuth{err: apperr.Auth("apiclient.Login", 401, "用户名或密码错误")}
	m := session.NewManager(newLogger(), auth, session.NewMemoryStore())

	_, err := m.Login(context.Background(), "alice", "bad")
	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Equal(t, "用户名或密码错误", apperr.UserMessage(err))
	assert.Equal(t, 1, auth.calls, "login must not be retried")

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestManager_Logout(t *testing.T) {
	store := session.NewMemoryStore()
	auth := &fakeAuth{sess: models.Session{UserID: 3, Username: "alice", Token: "tok"}}
	m := session.NewManager(newLogger(), auth, store)

	_, err := m.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	require.NoError(t, m.Logout(context.Background()))

	_, ok := m.Current()
	assert.False(t, ok)
	_, ok, _ = store.Get(context.Background(), session.KeyToken)
	assert.False(t, ok, "token must be removed from the store")
}

func TestManager_Restore(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		wantOK bool
	}{
		{"all keys", map[string]string{"token": "tok", "username": "alice", "userId": "3"}, true},
		{"missing token", map[string]string{"username": "alice", "userId": "3"}, false},
		{"missing username", map[string]string{"token": "tok", "userId": "3"}, false},
		{"missing user id", map[string]string{"token": "tok", "username": "alice"}, false},
		{"non numeric user id", map[string]string{"token": "tok", "username": "alice", "userId": "abc"}, false},
		{"zero user id", map[string]string{"token": "tok", "username": "alice", "userId": "0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			for k, v := range tt.stored {
				_ = store.Set(context.Background(), k, v)
			}
			m := session.NewManager(newLogger(), &fakeAuth{}, store)

			sess, ok, err := m.Restore(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			_, active := m.Current()
			assert.Equal(t, tt.wantOK, active)
			if tt.wantOK {
				assert.Equal(t, models.Session{UserID: 3, Username: "alice", Token: "tok"}, sess)
			}
		})
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewFileStore(path)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, session.KeyToken)
	assert.NoError(t, err, "missing file is an empty store")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, session.KeyToken, "tok"))
	require.NoError(t, store.Set(ctx, session.KeyUserID, "3"))

	// новый экземпляр читает тот же файл
	again := session.NewFileStore(path)
	v, ok, err := again.Get(ctx, session.KeyUserID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, again.Delete(ctx, session.KeyToken, session.KeyUserID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty store removes the file")
}

func TestFileStore_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, _, err := session.NewFileStore(path).Get(context.Background(), session.KeyToken)
	assert.Error(t, err)
}

func TestRedisStore_Unavailable(t *testing.T) {
	rdb := session.NewRedisClient("127.0.0.1:1")
	defer rdb.Close()
	store := session.NewRedisStore(rdb, "secondhand:", time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, _, err := store.Get(ctx, session.KeyToken)
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
}

func TestContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	ctx := session.NewContext(context.Background(), models.Session{UserID: 3, Username: "alice"})
	_, ok = session.FromContext(ctx)
	assert.False(t, ok, "session without token is not valid")

	want := models.Session{UserID: 3, Username: "alice", Token: "tok"}
	got, ok := session.FromContext(session.NewContext(context.Background(), want))
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
