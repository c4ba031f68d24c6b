package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/serahk/pantrylane/internal"
	"github.com/serahk/pantrylane/internal/catalog"
	"github.com/serahk/pantrylane/internal/email"
	"github.com/serahk/pantrylane/internal/handler/storefront"
	"github.com/serahk/pantrylane/internal/middleware"
	"github.com/serahk/pantrylane/internal/router"
	"github.com/serahk/pantrylane/internal/routes"
	"github.com/serahk/pantrylane/internal/service"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Load the product catalog
	logger.Info("Loading catalog...", "dir", cfg.CatalogDir)
	store, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	logger.Info("Catalog loaded",
		"categories", len(store.Categories()),
		"special_options", len(store.SpecialOptions()),
	)

	// Session-scoped state store with background expiry sweep
	sessions := service.NewSessionStore(service.DefaultSessionTTL)
	sessions.StartSweeper(ctx, time.Hour, logger)

	// Initialize services
	cartService := service.NewCartService(logger)

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	}, logger)
	sink := email.NewService(sender, cfg.Email.From, cfg.Email.To, logger)

	checkoutService := service.NewCheckoutService(cartService, sink, sessions, logger)
	wishlistService := service.NewWishlistService(sink, sessions, logger)

	// Prometheus metrics
	metrics := middleware.NewMetrics("")

	secure := cfg.Env == "prod"

	// Build route dependencies
	storefrontDeps := routes.StorefrontDeps{
		CatalogHandler:  storefront.NewCatalogHandler(store, logger),
		CartHandler:     storefront.NewCartHandler(cartService, store, logger, secure),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, logger, secure),
		WishlistHandler: storefront.NewWishlistHandler(wishlistService, logger, secure),
	}

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		router.CORS([]string{"*"}),
		router.Logger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  middleware.DefaultTimeout,
		WriteTimeout: middleware.DefaultTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
