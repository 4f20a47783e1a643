package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-session-auth/internal/model"
)

type stubVerifier struct {
	userID int
	err    error
	seen   string
}

func (s *stubVerifier) Verify(token string) (int, error) {
	s.seen = token
	return s.userID, s.err
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) model.MessageResponse {
	t.Helper()

	var body model.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRequireToken(t *testing.T) {
	var gotUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no cookie", func(t *testing.T) {
		verifier := &stubVerifier{userID: 1}
		rec := httptest.NewRecorder()
		NewAuthMiddleware(verifier).RequireToken(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "token not found", decodeMessage(t, rec).Message)
		assert.Empty(t, verifier.seen, "verifier must not run without a token")
	})

	t.Run("empty cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: ""})
		rec := httptest.NewRecorder()
		NewAuthMiddleware(&stubVerifier{}).RequireToken(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "token not found", decodeMessage(t, rec).Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "bad"})
		rec := httptest.NewRecorder()
		NewAuthMiddleware(&stubVerifier{err: errors.New("nope")}).RequireToken(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeMessage(t, rec)
		assert.Equal(t, "invalid token", body.Message)
		assert.Equal(t, "INVALID_TOKEN", body.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		verifier := &stubVerifier{userID: 7}
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "good"})
		rec := httptest.NewRecorder()
		NewAuthMiddleware(verifier).RequireToken(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "good", verifier.seen)
		assert.Equal(t, 7, gotUserID)
	})
}

func TestUserIDFromContextMissing(t *testing.T) {
	_, ok := UserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recovery(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unexpected server error", decodeMessage(t, rec).Message)
}

func TestLoggingSetsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	Logging(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	Logging(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestCORSAllowsCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	CORS([]string{"http://localhost:3000"})(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
