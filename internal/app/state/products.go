package state

import (
	"sync"

	"github.com/yallashop/storefront/internal/app/model"
	apperrors "github.com/yallashop/storefront/internal/errors"
)

// Products is the catalog state container.
type Products struct {
	mu         sync.RWMutex
	products   []model.Product
	pagination model.Pagination
	status     Status
	err        *apperrors.Info
}

func NewProducts() *Products {
	return &Products{
		status:     StatusIdle,
		pagination: model.Pagination{Page: 1, TotalPages: 1},
	}
}

// Begin marks a catalog operation as in flight.
func (p *Products) Begin() {
	p.mu.Lock()
	p.status = StatusLoading
	p.err = nil
	p.mu.Unlock()
}

// ResolvePage replaces the product list and, when the payload carried
// pagination, the pagination snapshot.
func (p *Products) ResolvePage(items []model.Product, pagination *model.Pagination) {
	p.mu.Lock()
	if items == nil {
		items = []model.Product{}
	}
	p.products = items
	if pagination != nil {
		p.pagination = *pagination
	}
	p.status = StatusSucceeded
	p.err = nil
	p.mu.Unlock()
}

// ResolveCreate prepends the created product.
func (p *Products) ResolveCreate(product model.Product) {
	p.mu.Lock()
	p.products = append([]model.Product{product}, p.products...)
	p.status = StatusSucceeded
	p.err = nil
	p.mu.Unlock()
}

// ResolveUpdate replaces the product with the same id in place.
func (p *Products) ResolveUpdate(product model.Product) {
	p.mu.Lock()
	for i := range p.products {
		if p.products[i].ID == product.ID {
			p.products[i] = product
			break
		}
	}
	p.status = StatusSucceeded
	p.err = nil
	p.mu.Unlock()
}

// ResolveDelete filters out the product with the given id.
func (p *Products) ResolveDelete(id uint) {
	p.mu.Lock()
	kept := make([]model.Product, 0, len(p.products))
	for _, product := range p.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	p.products = kept
	p.status = StatusSucceeded
	p.err = nil
	p.mu.Unlock()
}

// Fail records a rejected catalog operation.
func (p *Products) Fail(info *apperrors.Info) {
	p.mu.Lock()
	p.status = StatusFailed
	p.err = info
	p.mu.Unlock()
}

// Products returns a copy of the current product list.
func (p *Products) Products() []model.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	products := make([]model.Product, len(p.products))
	copy(products, p.products)
	return products
}

// Find returns the loaded product with the given id, or nil. Guest cart
// lines resolve their display data through this lookup.
func (p *Products) Find(id uint) *model.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.products {
		if p.products[i].ID == id {
			product := p.products[i]
			return &product
		}
	}
	return nil
}

// Pagination returns the current pagination snapshot.
func (p *Products) Pagination() model.Pagination {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pagination
}

// Status returns the status of the last catalog operation.
func (p *Products) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Err returns the rejection recorded by the last failed operation.
func (p *Products) Err() *apperrors.Info {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}
