package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/model"
	"github.com/yallashop/storefront/internal/app/state"
	apperrors "github.com/yallashop/storefront/internal/errors"
	"github.com/yallashop/storefront/internal/guestcart"
)

func uintPtr(v uint) *uint {
	return &v
}

// cartFixture wires a cart service against a fake backend and fresh
// local state.
type cartFixture struct {
	service CartService
	guest   *guestcart.Store
	cart    *state.Cart
	auth    *state.Auth
	events  *state.Bus
}

func newCartFixture(t *testing.T, handler http.Handler) *cartFixture {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.Config{BaseURL: server.URL})
	require.NoError(t, err)

	f := &cartFixture{
		guest:  guestcart.New(filepath.Join(t.TempDir(), "guest_cart_items.json")),
		cart:   state.NewCart(),
		auth:   state.NewAuth(),
		events: state.NewBus(),
	}
	f.service = NewCartService(client, f.guest, f.cart, f.auth, f.events)
	return f
}

func (f *cartFixture) loginAs(userID uint) {
	f.auth.ResolveLogin(&model.User{ID: userID, Roles: []string{"user"}}, model.RoleUser)
}

func TestCartService_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())

	err := f.service.AddItem(context.Background(), AddItemInput{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddItem_GuestPersistsLocally(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())

	err := f.service.AddItem(context.Background(), AddItemInput{
		ProductID: 1,
		SizeID:    uintPtr(2),
		Quantity:  2,
		Price:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	items := f.cart.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Subtotal.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, state.StatusSucceeded, f.cart.Status())

	// The same state survives a store reload.
	assert.Len(t, f.guest.Load(), 1)
}

func TestCartService_AddItem_GuestMergesSameVariant(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())
	ctx := context.Background()

	input := AddItemInput{ProductID: 1, SizeID: uintPtr(2), Quantity: 1, Price: decimal.NewFromInt(10)}
	require.NoError(t, f.service.AddItem(ctx, input))
	input.Quantity = 2
	require.NoError(t, f.service.AddItem(ctx, input))

	items := f.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartService_AddItem_AuthenticatedAppendsServerLine(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/save", func(w http.ResponseWriter, r *http.Request) {
		var req api.CartItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(7), req.UserID)

		json.NewEncoder(w).Encode(model.CartLine{
			ItemID:    42,
			UserID:    req.UserID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	})

	f := newCartFixture(t, mux)
	f.loginAs(7)

	err := f.service.AddItem(context.Background(), AddItemInput{ProductID: 3, Quantity: 1})
	require.NoError(t, err)

	items := f.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(42), items[0].ItemID)

	// The guest document is not involved in authenticated adds.
	assert.Len(t, f.guest.Load(), 0)
}

func TestCartService_RemoveItem_GuestExactVariant(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())
	ctx := context.Background()

	require.NoError(t, f.service.AddItem(ctx, AddItemInput{ProductID: 9, Quantity: 1, Price: decimal.NewFromInt(5)}))
	require.NoError(t, f.service.AddItem(ctx, AddItemInput{ProductID: 9, SizeID: uintPtr(1), Quantity: 1, Price: decimal.NewFromInt(5)}))

	err := f.service.RemoveItem(ctx, RemoveItemInput{ProductID: 9})
	require.NoError(t, err)

	items := f.cart.Items()
	require.Len(t, items, 1)
	require.NotNil(t, items[0].SizeID)
	assert.Equal(t, uint(1), *items[0].SizeID)
}

func TestCartService_RemoveItem_AuthenticatedByItemID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/item/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	f := newCartFixture(t, mux)
	f.loginAs(7)
	f.cart.ResolveItems([]model.CartLine{{ItemID: 42}, {ItemID: 43}})

	err := f.service.RemoveItem(context.Background(), RemoveItemInput{ItemID: 42})
	require.NoError(t, err)

	items := f.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(43), items[0].ItemID)
}

func TestCartService_RemoveItem_AuthenticatedMiss(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/item/42", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	f := newCartFixture(t, mux)
	f.loginAs(7)
	f.cart.ResolveItems([]model.CartLine{{ItemID: 43}})

	err := f.service.RemoveItem(context.Background(), RemoveItemInput{ItemID: 42})
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	assert.Equal(t, state.StatusFailed, f.cart.Status())
	require.NotNil(t, f.cart.Err())
	assert.Equal(t, apperrors.CartItemNotFound, f.cart.Err().Code)
	assert.Len(t, f.cart.Items(), 1)
}

func TestCartService_FetchCart_GuestLoadsDocument(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())
	f.guest.Add(model.CartLine{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)})

	err := f.service.FetchCart(context.Background())
	require.NoError(t, err)
	assert.Len(t, f.cart.Items(), 1)
}

func TestCartService_MergeGuestCart_Success(t *testing.T) {
	var batch api.CartBatchRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/cart/user/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.CartLine{
			{ItemID: 100, UserID: 7, ProductID: 1, Quantity: 3},
		})
	})

	f := newCartFixture(t, mux)
	f.guest.Add(model.CartLine{ProductID: 1, SizeID: uintPtr(2), Quantity: 3, UnitPrice: decimal.NewFromInt(10)})
	f.loginAs(7)

	err := f.service.MergeGuestCart(context.Background())
	require.NoError(t, err)

	// Every submitted line was stamped with the adopting user.
	require.Len(t, batch.Items, 1)
	assert.Equal(t, uint(7), batch.UserID)
	assert.Equal(t, uint(7), batch.Items[0].UserID)

	// The guest document is gone and the server cart is authoritative.
	assert.Len(t, f.guest.Load(), 0)
	items := f.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(100), items[0].ItemID)
	assert.Equal(t, state.StatusSucceeded, f.cart.Status())
}

func TestCartService_MergeGuestCart_SubmitFailureKeepsGuestCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"cart adoption rejected"}`))
	})

	f := newCartFixture(t, mux)
	f.guest.Add(model.CartLine{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)})
	f.loginAs(7)

	err := f.service.MergeGuestCart(context.Background())
	require.Error(t, err)

	// Nothing was lost: the document survives for the next attempt.
	assert.Len(t, f.guest.Load(), 1)
	assert.Equal(t, state.StatusFailed, f.cart.Status())
	require.NotNil(t, f.cart.Err())
	assert.Equal(t, "cart adoption rejected", f.cart.Err().Message)
}

func TestCartService_MergeGuestCart_EmptyGuestFetchesOnly(t *testing.T) {
	var batchCalls, fetchCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		batchCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/cart/user/7", func(w http.ResponseWriter, r *http.Request) {
		fetchCalls.Add(1)
		json.NewEncoder(w).Encode([]model.CartLine{{ItemID: 1}})
	})

	f := newCartFixture(t, mux)
	f.loginAs(7)

	err := f.service.MergeGuestCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(0), batchCalls.Load())
	assert.Equal(t, int32(1), fetchCalls.Load())
	assert.Len(t, f.cart.Items(), 1)
}

func TestCartService_MergeGuestCart_FetchFailureAfterClear(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/cart/user/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	f := newCartFixture(t, mux)
	f.guest.Add(model.CartLine{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10)})
	f.loginAs(7)

	err := f.service.MergeGuestCart(context.Background())
	require.Error(t, err)

	// Migration itself completed; only the refresh failed. A second run
	// finds no guest lines and must not resubmit anything.
	assert.Len(t, f.guest.Load(), 0)
}

func TestCartService_MergeGuestCart_RequiresAuthentication(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())

	err := f.service.MergeGuestCart(context.Background())
	assert.Error(t, err)
}

func TestCartService_SessionEndedResetsCart(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())
	f.cart.ResolveItems([]model.CartLine{{ItemID: 1}})

	f.events.Publish(state.SessionEnded)

	assert.Len(t, f.cart.Items(), 0)
	assert.Equal(t, state.StatusIdle, f.cart.Status())
}

func TestCartService_ClearCart_Guest(t *testing.T) {
	f := newCartFixture(t, http.NewServeMux())
	f.guest.Add(model.CartLine{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10)})

	err := f.service.ClearCart(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.guest.Load(), 0)
	assert.Len(t, f.cart.Items(), 0)
}
