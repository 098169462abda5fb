package state

import (
	"sync"

	"github.com/yallashop/storefront/internal/app/model"
	apperrors "github.com/yallashop/storefront/internal/errors"
)

// Cart is the cart state container: the ordered line items, the status
// of the last cart operation, and its error if it failed.
type Cart struct {
	mu     sync.RWMutex
	items  []model.CartLine
	status Status
	err    *apperrors.Info
}

func NewCart() *Cart {
	return &Cart{status: StatusIdle, items: []model.CartLine{}}
}

// Begin marks an operation as in flight.
func (c *Cart) Begin() {
	c.mu.Lock()
	c.status = StatusLoading
	c.mu.Unlock()
}

// ResolveItems replaces the items wholesale. Used when the operation's
// result is the full cart collection: every guest path, fetch, and the
// migration's adopted batch.
func (c *Cart) ResolveItems(items []model.CartLine) {
	c.mu.Lock()
	if items == nil {
		items = []model.CartLine{}
	}
	c.items = items
	c.status = StatusSucceeded
	c.err = nil
	c.mu.Unlock()
}

// ResolveAppend appends the single line returned by the authenticated
// add. No variant merge happens here: the server owns deduplication for
// authenticated carts, and the next fetch replaces this state wholesale.
func (c *Cart) ResolveAppend(line model.CartLine) {
	c.mu.Lock()
	c.items = append(c.items, line)
	c.status = StatusSucceeded
	c.err = nil
	c.mu.Unlock()
}

// ResolveRemove filters out the line with the given server-assigned id.
func (c *Cart) ResolveRemove(itemID uint) {
	c.mu.Lock()
	kept := make([]model.CartLine, 0, len(c.items))
	for _, item := range c.items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.status = StatusSucceeded
	c.err = nil
	c.mu.Unlock()
}

// ResolveClear empties the cart.
func (c *Cart) ResolveClear() {
	c.mu.Lock()
	c.items = []model.CartLine{}
	c.status = StatusSucceeded
	c.err = nil
	c.mu.Unlock()
}

// Fail records a rejection. Items are left untouched; no operation
// mutates them optimistically, so there is nothing to roll back.
func (c *Cart) Fail(info *apperrors.Info) {
	c.mu.Lock()
	c.status = StatusFailed
	c.err = info
	c.mu.Unlock()
}

// Reset returns the container to its initial state.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.items = []model.CartLine{}
	c.status = StatusIdle
	c.err = nil
	c.mu.Unlock()
}

// Items returns a copy of the current items.
func (c *Cart) Items() []model.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]model.CartLine, len(c.items))
	copy(items, c.items)
	return items
}

// Status returns the status of the last cart operation.
func (c *Cart) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Err returns the rejection recorded by the last failed operation.
func (c *Cart) Err() *apperrors.Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}
