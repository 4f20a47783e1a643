package middleware

import (
	"context"
	"net/http"

	"go-session-auth/internal/model"
	"go-session-auth/internal/session"
)

// TokenCookieName is the cookie that carries the signed token.
const TokenCookieName = "token"

type tokenVerifier interface {
	Verify(tokenString string) (int, error)
}

type contextKey string

const userIDContextKey contextKey = "user_id"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireToken halts with 401 unless the request carries a valid token cookie.
func (m *AuthMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.CookieValue(r, TokenCookieName)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "TOKEN_NOT_FOUND", model.ErrTokenNotFound.Error())
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "INVALID_TOKEN", model.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
