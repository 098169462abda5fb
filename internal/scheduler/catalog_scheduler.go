package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/service"
	"github.com/yallashop/storefront/pkg/logger"
)

// CatalogScheduler refreshes the loaded catalog page in the background
// so long-running sessions keep seeing current prices and stock.
type CatalogScheduler struct {
	cron           *cron.Cron
	productService service.ProductService
	spec           string
	pageSize       int
}

func NewCatalogScheduler(productService service.ProductService, spec string, pageSize int) *CatalogScheduler {
	return &CatalogScheduler{
		cron:           cron.New(),
		productService: productService,
		spec:           spec,
		pageSize:       pageSize,
	}
}

// Start registers the refresh job. An empty spec disables the scheduler.
func (s *CatalogScheduler) Start() error {
	if s.spec == "" {
		logger.Debug("Catalog refresh disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Debug("Refreshing catalog")

		err := s.productService.FetchProducts(context.Background(), api.ListParams{
			Page:  1,
			Limit: s.pageSize,
		})
		if err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Debug("Catalog refreshed")
	})
	if err != nil {
		logger.Error("Failed to add catalog refresh job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// Stop halts the scheduler.
func (s *CatalogScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped")
}
