package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yallashop/storefront/internal/app/model"
	apperrors "github.com/yallashop/storefront/internal/errors"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestCart_InitialState(t *testing.T) {
	cart := NewCart()

	assert.Equal(t, StatusIdle, cart.Status())
	assert.NotNil(t, cart.Items())
	assert.Len(t, cart.Items(), 0)
	assert.Nil(t, cart.Err())
}

func TestCart_BeginMarksLoading(t *testing.T) {
	cart := NewCart()

	cart.Begin()
	assert.Equal(t, StatusLoading, cart.Status())
}

func TestCart_ResolveItemsReplacesWholesale(t *testing.T) {
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{{ProductID: 1}, {ProductID: 2}})

	cart.Begin()
	cart.ResolveItems([]model.CartLine{{ProductID: 3}})

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(3), items[0].ProductID)
	assert.Equal(t, StatusSucceeded, cart.Status())
}

func TestCart_ResolveItemsNilBecomesEmpty(t *testing.T) {
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{{ProductID: 1}})

	cart.ResolveItems(nil)
	assert.NotNil(t, cart.Items())
	assert.Len(t, cart.Items(), 0)
}

func TestCart_ResolveAppendKeepsDuplicateVariants(t *testing.T) {
	cart := NewCart()
	variant := model.CartLine{ProductID: 1, SizeID: uintPtr(2), Quantity: 1}

	cart.ResolveAppend(variant)
	cart.ResolveAppend(variant)

	// The server owns merging for authenticated carts; the container
	// just records what came back.
	assert.Len(t, cart.Items(), 2)
}

func TestCart_ResolveRemoveFiltersByItemID(t *testing.T) {
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{
		{ItemID: 10, ProductID: 1},
		{ItemID: 11, ProductID: 2},
	})

	cart.ResolveRemove(10)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, uint(11), items[0].ItemID)
}

func TestCart_FailLeavesItemsUntouched(t *testing.T) {
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{{ProductID: 1}})

	cart.Begin()
	cart.Fail(&apperrors.Info{Code: apperrors.NetworkUnavailable, Message: "offline"})

	assert.Equal(t, StatusFailed, cart.Status())
	require.NotNil(t, cart.Err())
	assert.Equal(t, apperrors.NetworkUnavailable, cart.Err().Code)
	assert.Len(t, cart.Items(), 1)
}

func TestCart_ResetReturnsToInitialState(t *testing.T) {
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{{ProductID: 1}})
	cart.Fail(&apperrors.Info{Code: apperrors.InternalError})

	cart.Reset()

	assert.Equal(t, StatusIdle, cart.Status())
	assert.Len(t, cart.Items(), 0)
	assert.Nil(t, cart.Err())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{{ProductID: 1, Quantity: 1}})

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestBus_SessionEndedResetsSubscribers(t *testing.T) {
	bus := NewBus()
	cart := NewCart()
	cart.ResolveItems([]model.CartLine{{ProductID: 1}})

	bus.Subscribe(SessionEnded, cart.Reset)
	bus.Publish(SessionEnded)

	assert.Equal(t, StatusIdle, cart.Status())
	assert.Len(t, cart.Items(), 0)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(SessionEnded)
	})
}
