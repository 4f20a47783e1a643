package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-session-auth/internal/config"
	"go-session-auth/internal/handler"
	"go-session-auth/internal/middleware"
)

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, authHandler *handler.AuthHandler) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, cfg.TrustedProxies)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/login", authHandler.Login)
		api.With(authMiddleware.RequireToken).Get("/dashboard", authHandler.Dashboard)
		api.Get("/logout", authHandler.Logout)
	})

	return r
}
