package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/model"
	"github.com/yallashop/storefront/internal/app/state"
	apperrors "github.com/yallashop/storefront/internal/errors"
	"github.com/yallashop/storefront/internal/guestcart"
	"github.com/yallashop/storefront/pkg/logger"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

// AddItemInput describes the selection being added to the cart. Price is
// the catalog price snapshot at add time; it is not re-fetched.
type AddItemInput struct {
	ProductID uint
	SizeID    *uint
	ColorID   *uint
	Quantity  int
	Price     decimal.Decimal
}

// RemoveItemInput identifies the line to remove. ItemID addresses the
// server-assigned line for authenticated carts; the variant triple
// addresses the guest line.
type RemoveItemInput struct {
	ItemID    uint
	ProductID uint
	SizeID    *uint
	ColorID   *uint
}

type CartService interface {
	AddItem(ctx context.Context, input AddItemInput) error
	RemoveItem(ctx context.Context, input RemoveItemInput) error
	FetchCart(ctx context.Context) error
	ClearCart(ctx context.Context) error
	MergeGuestCart(ctx context.Context) error
}

type cartService struct {
	client *api.Client
	guest  *guestcart.Store
	cart   *state.Cart
	auth   *state.Auth

	// mu serializes cart mutations: one in-flight mutation at a time,
	// closing the read-modify-write race on concurrent same-variant adds.
	mu sync.Mutex
}

func NewCartService(
	client *api.Client,
	guest *guestcart.Store,
	cart *state.Cart,
	auth *state.Auth,
	events *state.Bus,
) CartService {
	s := &cartService{
		client: client,
		guest:  guest,
		cart:   cart,
		auth:   auth,
	}
	// Logout resets cart state without the auth side touching it.
	events.Subscribe(state.SessionEnded, s.cart.Reset)
	return s
}

func (s *cartService) AddItem(ctx context.Context, input AddItemInput) error {
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Adding item to cart", map[string]interface{}{
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
		"guest":      !s.auth.IsAuthenticated(),
	})

	s.cart.Begin()

	if user := s.auth.User(); user != nil {
		line, err := s.client.AddCartItem(ctx, api.CartItemRequest{
			UserID:    user.ID,
			ProductID: input.ProductID,
			SizeID:    input.SizeID,
			ColorID:   input.ColorID,
			Quantity:  input.Quantity,
		})
		if err != nil {
			logger.Error("Failed to add cart item", err, map[string]interface{}{
				"product_id": input.ProductID,
			})
			s.cart.Fail(apperrors.Parse(err))
			return err
		}
		s.cart.ResolveAppend(*line)
		return nil
	}

	line := model.CartLine{
		ProductID: input.ProductID,
		SizeID:    input.SizeID,
		ColorID:   input.ColorID,
		Quantity:  input.Quantity,
		UnitPrice: input.Price,
	}
	s.cart.ResolveItems(s.guest.Add(line))
	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, input RemoveItemInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Info("Removing cart item", map[string]interface{}{
		"item_id":    input.ItemID,
		"product_id": input.ProductID,
		"guest":      !s.auth.IsAuthenticated(),
	})

	s.cart.Begin()

	if s.auth.IsAuthenticated() {
		if err := s.client.RemoveCartItem(ctx, input.ItemID); err != nil {
			logger.Error("Failed to remove cart item", err, map[string]interface{}{
				"item_id": input.ItemID,
			})
			if errors.Is(err, api.ErrNotFound) {
				s.cart.Fail(&apperrors.Info{Code: apperrors.CartItemNotFound, Message: "cart item not found"})
				return ErrCartItemNotFound
			}
			s.cart.Fail(apperrors.Parse(err))
			return err
		}
		s.cart.ResolveRemove(input.ItemID)
		return nil
	}

	s.cart.ResolveItems(s.guest.Remove(input.ProductID, input.SizeID, input.ColorID))
	return nil
}

func (s *cartService) FetchCart(ctx context.Context) error {
	s.cart.Begin()

	if user := s.auth.User(); user != nil {
		lines, err := s.client.UserCart(ctx, user.ID)
		if err != nil {
			logger.Error("Failed to fetch user cart", err, map[string]interface{}{
				"user_id": user.ID,
			})
			s.cart.Fail(apperrors.Parse(err))
			return err
		}
		s.cart.ResolveItems(lines)
		return nil
	}

	s.cart.ResolveItems(s.guest.Load())
	return nil
}

func (s *cartService) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Begin()

	if user := s.auth.User(); user != nil {
		if err := s.client.ClearCart(ctx, user.ID); err != nil {
			logger.Error("Failed to clear user cart", err, map[string]interface{}{
				"user_id": user.ID,
			})
			s.cart.Fail(apperrors.Parse(err))
			return err
		}
		s.cart.ResolveClear()
		return nil
	}

	s.guest.Clear()
	s.cart.ResolveClear()
	return nil
}

// MergeGuestCart migrates the guest cart to the newly authenticated
// user. The steps are strictly sequential: submit the batch, clear the
// guest store only after the server acknowledged, then fetch the
// authoritative cart. A submit failure aborts with the guest cart
// intact, so re-running after a crash resubmits the still-present lines;
// after a successful clear a re-run finds no lines and is a no-op.
func (s *cartService) MergeGuestCart(ctx context.Context) error {
	user := s.auth.User()
	if user == nil {
		return errors.New("merge requires an authenticated session")
	}

	s.mu.Lock()

	lines := s.guest.Load()
	if len(lines) == 0 {
		s.mu.Unlock()
		logger.Debug("Guest cart empty, nothing to migrate", map[string]interface{}{
			"user_id": user.ID,
		})
		return s.FetchCart(ctx)
	}

	logger.Info("Migrating guest cart", map[string]interface{}{
		"user_id": user.ID,
		"lines":   len(lines),
	})

	s.cart.Begin()

	// Stamp each line with the adopting user.
	for i := range lines {
		lines[i].UserID = user.ID
	}

	if err := s.client.AddCartItems(ctx, api.CartBatchRequest{UserID: user.ID, Items: lines}); err != nil {
		logger.Error("Guest cart migration rejected, keeping guest cart", err, map[string]interface{}{
			"user_id": user.ID,
			"lines":   len(lines),
		})
		s.cart.Fail(apperrors.Parse(err))
		s.mu.Unlock()
		return err
	}

	// Server owns the cart now; the local copy must never be read again.
	s.guest.Clear()
	s.cart.ResolveItems(lines)
	s.mu.Unlock()

	logger.Info("Guest cart migrated", map[string]interface{}{
		"user_id": user.ID,
		"lines":   len(lines),
	})

	// Refresh from server truth. A failure here is reported separately:
	// migration already succeeded and is not re-triggered.
	return s.FetchCart(ctx)
}
