package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go-session-auth/internal/middleware"
	"go-session-auth/internal/model"
	"go-session-auth/internal/session"
	"go-session-auth/pkg/apierror"
)

type credentialFinder interface {
	FindByCredentials(ctx context.Context, username string, password string) (model.User, error)
}

type tokenIssuer interface {
	Issue(subjectID int) (string, time.Time, error)
}

type AuthHandler struct {
	users    credentialFinder
	tokens   tokenIssuer
	sessions *session.Manager
}

func NewAuthHandler(users credentialFinder, tokens tokenIssuer, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, sessions: sessions}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		return
	}

	user, err := h.users.FindByCredentials(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, apierror.Internal(err, "login failed"))
		return
	}

	if _, err := h.sessions.Start(r.Context(), w, r, user.ID); err != nil {
		writeError(w, apierror.Internal(err, "login failed"))
		return
	}

	session.SetCookie(w, middleware.TokenCookieName, token, expiresAt, h.sessions.CookieOptions())
	slog.Info("login succeeded", "user_id", user.ID)
	writeMessage(w, http.StatusOK, "login successful")
}

// Dashboard needs both proofs: the gate's token subject and a live session for the same user.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidToken)
		return
	}

	sess, err := h.sessions.Current(r.Context(), r)
	if err != nil {
		if session.IsNotFound(err) {
			writeError(w, err)
			return
		}
		writeError(w, apierror.Internal(err, "session lookup failed"))
		return
	}

	if sess.UserID != userID {
		slog.Warn("session and token disagree", "token_user_id", userID, "session_user_id", sess.UserID)
		writeError(w, model.ErrSessionNotFound)
		return
	}

	writeMessage(w, http.StatusOK, "welcome")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		writeError(w, apierror.Internal(err, "logout failed"))
		return
	}

	session.ClearCookie(w, middleware.TokenCookieName, h.sessions.CookieOptions())
	writeMessage(w, http.StatusOK, "session closed")
}
