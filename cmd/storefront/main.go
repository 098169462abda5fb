package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yallashop/storefront/config"
	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/service"
	"github.com/yallashop/storefront/internal/app/state"
	"github.com/yallashop/storefront/internal/guestcart"
	"github.com/yallashop/storefront/internal/scheduler"
	"github.com/yallashop/storefront/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	logger.Info("Starting storefront client", map[string]interface{}{
		"api_url":   cfg.API.BaseURL,
		"state_dir": cfg.Storage.Dir,
		"log_level": cfg.Log.Level,
	})

	// API client
	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create API client", err)
	}

	// State containers and session event bus
	events := state.NewBus()
	authState := state.NewAuth()
	cartState := state.NewCart()
	productState := state.NewProducts()

	// Local durable storage
	guestStore := guestcart.New(cfg.Storage.GuestCartPath())

	// Services
	cartService := service.NewCartService(client, guestStore, cartState, authState, events)
	authService := service.NewAuthService(client, authState, cartService, events, cfg.Storage.SessionPath())
	productService := service.NewProductService(client, productState)

	ctx := context.Background()

	// Restore a saved session if one exists; otherwise stay a guest.
	if err := authService.Bootstrap(ctx); err != nil {
		logger.Warn("Session restore failed, continuing as guest", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initial cart and catalog load
	if err := cartService.FetchCart(ctx); err != nil {
		logger.Warn("Initial cart fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	err = productService.FetchProducts(ctx, api.ListParams{Page: 1, Limit: cfg.Catalog.PageSize})
	if err != nil {
		logger.Warn("Initial catalog fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Background catalog refresh
	catalogScheduler := scheduler.NewCatalogScheduler(
		productService,
		cfg.Catalog.RefreshSpec,
		cfg.Catalog.PageSize,
	)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}

	logger.Info("Storefront client ready", map[string]interface{}{
		"authenticated": authState.IsAuthenticated(),
		"cart_items":    len(cartState.Items()),
		"products":      len(productState.Products()),
		"session_id":    client.SessionID(),
		"pid":           os.Getpid(),
	})

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down storefront client...")
	catalogScheduler.Stop()
	logger.Info("Storefront client stopped")
}
