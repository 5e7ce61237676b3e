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

	"github.com/jonboulle/clockwork"

	httpapi "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/shopapi"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// Application encapsulates the storefront agent with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger
	clock  clockwork.Clock

	// Core dependencies
	db      store.Store
	sealer  *cryptox.Sealer
	session *authsdk.Session
	shop    *shopapi.Client

	// Services
	checkoutService     *service.CheckoutService
	reconcileService    *service.ReconcileService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:   cfg,
		clock: clockwork.NewRealClock(),
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
	}

	ctx := context.Background()

	db, err := OpenStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	sealer, err := NewSealer(cfg, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.sealer = sealer

	if err := app.initSession(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Session returns the shopper's session.
func (app *Application) Session() *authsdk.Session { return app.session }

// Checkout returns the checkout service.
func (app *Application) Checkout() *service.CheckoutService { return app.checkoutService }

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("storefront agent starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"api", app.cfg.APIBaseURL,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down storefront agent...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("storefront agent stopped")
	return nil
}

// Close releases the store. Commands that never call Run use it directly.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}
	return nil
}

// initSession restores the persisted credential. One sealed with another
// key is discarded and the shopper has to log in again.
func (app *Application) initSession(ctx context.Context) error {
	client := authsdk.NewSDKClient(app.cfg.APIBaseURL)
	client.HTTPClient.Timeout = app.cfg.HTTPTimeout

	cfg := authsdk.SessionConfig{
		Store:            store.NewCredentialStoreAdapter(app.db.Credentials(), app.sealer),
		Clock:            app.clock,
		RefreshThreshold: app.cfg.RefreshThreshold,
		RefreshTimeout:   app.cfg.RefreshTimeout,
		Logger:           app.logger,
	}

	session, err := client.NewSession(ctx, cfg)
	if errors.Is(err, store.ErrCredentialUnreadable) {
		app.logger.Warn("stored credential could not be opened, discarding it", "error", err)
		if err := app.db.Credentials().Delete(ctx); err != nil {
			return fmt.Errorf("failed to discard unreadable credential: %w", err)
		}
		session, err = client.NewSession(ctx, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	app.session = session
	app.shop = shopapi.NewClient(session)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.checkoutService = &service.CheckoutService{
		Store:         app.db.PendingPayments(),
		Orders:        app.shop,
		Promotions:    app.shop,
		Clock:         app.clock,
		PublicBaseURL: app.cfg.PublicBaseURL,
	}

	app.reconcileService = &service.ReconcileService{
		Store:    app.db.PendingPayments(),
		Payments: app.shop,
		Cart:     app.shop,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db.PendingPayments(),
		app.logger,
		app.clock,
		app.cfg.HousekeepingInterval,
		app.cfg.PendingTTL,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.session, app.logger)

	// Wire services to router
	router.CheckoutService = app.checkoutService
	router.ReconcileService = app.reconcileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
