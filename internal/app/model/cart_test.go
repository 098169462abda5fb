package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestVariantKey_NilIsPartOfIdentity(t *testing.T) {
	withSize := CartLine{ProductID: 9, SizeID: uintPtr(1)}
	withoutSize := CartLine{ProductID: 9}

	assert.NotEqual(t, withSize.Key(), withoutSize.Key())
	assert.Equal(t, withoutSize.Key(), NewVariantKey(9, nil, nil))
}

func TestVariantKey_SameTripleMatches(t *testing.T) {
	a := CartLine{ProductID: 1, SizeID: uintPtr(2), ColorID: uintPtr(3)}
	b := CartLine{ProductID: 1, SizeID: uintPtr(2), ColorID: uintPtr(3)}

	assert.Equal(t, a.Key(), b.Key())
}

func TestCartLine_SetQuantityRecomputesSubtotal(t *testing.T) {
	l := CartLine{UnitPrice: decimal.NewFromInt(10)}

	l.SetQuantity(3)

	assert.Equal(t, 3, l.Quantity)
	assert.True(t, l.Subtotal.Equal(decimal.NewFromInt(30)))
}

func TestCartTotal(t *testing.T) {
	lines := []CartLine{
		{Subtotal: decimal.NewFromInt(30)},
		{Subtotal: decimal.NewFromInt(12)},
	}

	assert.True(t, CartTotal(lines).Equal(decimal.NewFromInt(42)))
}

func TestUser_PrimaryRole(t *testing.T) {
	u := &User{Roles: []string{"admin", "user"}}

	role, err := u.PrimaryRole()
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
	assert.True(t, u.IsAdmin())
}

func TestUser_PrimaryRole_Empty(t *testing.T) {
	u := &User{}

	_, err := u.PrimaryRole()
	assert.ErrorIs(t, err, ErrNoRoles)
	assert.False(t, u.IsAdmin())
}
