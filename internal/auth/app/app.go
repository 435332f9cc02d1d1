package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tealsec/authd/internal/auth/domain"
	httpapi "github.com/tealsec/authd/internal/auth/http"
	"github.com/tealsec/authd/internal/auth/service"
	"github.com/tealsec/authd/internal/auth/store/drivers/memory"
	"github.com/tealsec/authd/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	store       *memory.Store
	authService *service.AuthService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initStore builds the in-memory credential store and seeds the demo
// account so the service is usable straight after boot.
func (app *Application) initStore() error {
	app.store = memory.NewStore()

	err := app.store.AddUser(domain.User{
		ID:       app.cfg.DemoUserID,
		Username: app.cfg.DemoUsername,
	}, app.cfg.DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	app.logger.Info("credential store seeded", "username", app.cfg.DemoUsername)
	return nil
}

func (app *Application) initServices() error {
	svc, err := service.NewAuthService(
		[]byte(app.cfg.JWTSecret),
		app.store,
		app.cfg.AccessTokenTTL,
		app.cfg.RefreshTokenTTL,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}

	app.authService = svc
	return nil
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(app.authService, app.cfg.AllowedOrigin, BuildVersion, app.logger)
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
