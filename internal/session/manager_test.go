package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-session-auth/internal/model"
)

type failingStore struct {
	*MemoryStore
	deleteErr error
}

func (f *failingStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryStore.Delete(ctx, id)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, time.Hour, CookieOptions{})
	ctx := context.Background()

	rec := httptest.NewRecorder()
	sess, err := mgr.Start(ctx, rec, httptest.NewRequest(http.MethodPost, "/login", nil), 1)
	require.NoError(t, err)

	cookie := findCookie(t, rec, CookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, sess.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	current, err := mgr.Current(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, current.UserID)

	rec = httptest.NewRecorder()
	require.NoError(t, mgr.Destroy(ctx, rec, req))
	cleared := findCookie(t, rec, CookieName)
	require.NotNil(t, cleared)
	assert.Equal(t, "", cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	_, err = mgr.Current(ctx, req)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.True(t, IsNotFound(err))

	require.NoError(t, mgr.Destroy(ctx, httptest.NewRecorder(), req), "destroying twice is a no-op")
}

func TestManagerStartRotatesPreviousSession(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, time.Hour, CookieOptions{Secure: true})
	ctx := context.Background()

	rec := httptest.NewRecorder()
	first, err := mgr.Start(ctx, rec, httptest.NewRequest(http.MethodPost, "/login", nil), 1)
	require.NoError(t, err)
	assert.True(t, findCookie(t, rec, CookieName).Secure)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: first.ID})
	second, err := mgr.Start(ctx, httptest.NewRecorder(), req, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestManagerCurrentWithoutCookie(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), time.Hour, CookieOptions{})

	_, err := mgr.Current(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestManagerDestroyStoreFailureKeepsCookie(t *testing.T) {
	boom := errors.New("store down")
	mgr := NewManager(&failingStore{MemoryStore: NewMemoryStore(), deleteErr: boom}, time.Hour, CookieOptions{})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid"})
	rec := httptest.NewRecorder()

	err := mgr.Destroy(context.Background(), rec, req)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, findCookie(t, rec, CookieName))
}
