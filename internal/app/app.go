package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-session-auth/internal/config"
	"go-session-auth/internal/handler"
	"go-session-auth/internal/middleware"
	"go-session-auth/internal/repository"
	"go-session-auth/internal/router"
	"go-session-auth/internal/service"
	"go-session-auth/internal/session"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	users, err := repository.LoadUsers(cfg.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	userRepo, err := repository.NewUserRepository(users)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	slog.Info("credential store ready", "users", userRepo.Count())

	tokenService, err := service.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	store, cleanupFuncs, err := newSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(store, cfg.SessionTTL, session.CookieOptions{Secure: cfg.CookieSecure})
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	authHandler := handler.NewAuthHandler(userRepo, tokenService, sessions)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router.New(cfg, authMiddleware, authHandler),
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

func newSessionStore(cfg *config.Config) (session.Store, []func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("connecting to Redis", "addr", cfg.RedisAddr)
		client, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("session store ready", "backend", config.SessionStoreRedis)

		return session.NewRedisStore(client), []func(){
			func() {
				if err := client.Close(); err != nil {
					slog.Warn("redis close failed", "error", err)
				}
			},
		}, nil
	default:
		store := session.NewMemoryStore()
		cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
		go store.StartCleanupTicker(cleanupCtx, cfg.SessionCleanupInterval)
		slog.Info("session store ready", "backend", config.SessionStoreMemory)

		return store, []func(){cleanupCancel}, nil
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.Shutdown(ctx)
}

// Shutdown drains in-flight requests and then releases the session backend.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
