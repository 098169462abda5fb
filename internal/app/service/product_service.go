package service

import (
	"context"
	"errors"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/model"
	"github.com/yallashop/storefront/internal/app/state"
	apperrors "github.com/yallashop/storefront/internal/errors"
	"github.com/yallashop/storefront/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService interface {
	FetchProducts(ctx context.Context, params api.ListParams) error
	SearchProducts(ctx context.Context, params api.ListParams) error
	FetchProductsByCategory(ctx context.Context, categoryID uint, params api.ListParams) error
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) error
	UpdateProduct(ctx context.Context, id uint, product model.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type productService struct {
	client   *api.Client
	products *state.Products
}

func NewProductService(client *api.Client, products *state.Products) ProductService {
	return &productService{client: client, products: products}
}

func (s *productService) resolvePage(page *api.ProductPage) {
	s.products.ResolvePage(page.Items, page.Pagination)
}

func (s *productService) FetchProducts(ctx context.Context, params api.ListParams) error {
	s.products.Begin()

	page, err := s.client.ListProducts(ctx, params)
	if err != nil {
		logger.Error("Failed to fetch products", err, map[string]interface{}{
			"page": params.Page,
		})
		s.products.Fail(apperrors.Parse(err))
		return err
	}

	s.resolvePage(page)
	return nil
}

func (s *productService) SearchProducts(ctx context.Context, params api.ListParams) error {
	s.products.Begin()

	page, err := s.client.SearchProducts(ctx, params)
	if err != nil {
		logger.Error("Failed to search products", err, map[string]interface{}{
			"query": params.Query,
		})
		s.products.Fail(apperrors.Parse(err))
		return err
	}

	s.resolvePage(page)
	return nil
}

func (s *productService) FetchProductsByCategory(ctx context.Context, categoryID uint, params api.ListParams) error {
	s.products.Begin()

	page, err := s.client.ProductsByCategory(ctx, categoryID, params)
	if err != nil {
		logger.Error("Failed to fetch category products", err, map[string]interface{}{
			"category_id": categoryID,
		})
		s.products.Fail(apperrors.Parse(err))
		return err
	}

	s.resolvePage(page)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.client.Product(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product model.Product) error {
	s.products.Begin()

	created, err := s.client.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		s.products.Fail(apperrors.Parse(err))
		return err
	}

	s.products.ResolveCreate(*created)
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, product model.Product) error {
	s.products.Begin()

	updated, err := s.client.UpdateProduct(ctx, id, product)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			s.products.Fail(apperrors.Parse(err))
			return ErrProductNotFound
		}
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		s.products.Fail(apperrors.Parse(err))
		return err
	}

	s.products.ResolveUpdate(*updated)
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	s.products.Begin()

	if err := s.client.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			s.products.Fail(apperrors.Parse(err))
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		s.products.Fail(apperrors.Parse(err))
		return err
	}

	s.products.ResolveDelete(id)
	return nil
}
