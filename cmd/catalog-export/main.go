package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/yallashop/storefront/config"
	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/service"
	"github.com/yallashop/storefront/internal/guestcart"
)

// Usage:
//
//	catalog-export [path]        export the remote catalog
//	catalog-export cart [path]   export the local guest cart
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create API client:", err)
	}

	exportService := service.NewExportService(client)
	args := os.Args[1:]

	if len(args) > 0 && args[0] == "cart" {
		path := "cart.xlsx"
		if len(args) > 1 {
			path = args[1]
		}

		lines := guestcart.New(cfg.Storage.GuestCartPath()).Load()
		fmt.Printf("Exporting guest cart (%d lines)\n", len(lines))
		if err := exportService.ExportCart(context.Background(), lines, path); err != nil {
			log.Fatal("Export failed:", err)
		}

		fmt.Printf("Cart written to %s\n", path)
		return
	}

	path := cfg.Catalog.ExportPath
	if len(args) > 0 {
		path = args[0]
	}

	fmt.Printf("Exporting catalog from %s\n", cfg.API.BaseURL)
	if err := exportService.ExportCatalog(context.Background(), path); err != nil {
		log.Fatal("Export failed:", err)
	}

	fmt.Printf("Catalog written to %s\n", path)
}
