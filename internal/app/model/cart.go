package model

import "github.com/shopspring/decimal"

// CartLine is one purchasable selection in a cart.
//
// Guest lines carry only the raw identifiers plus a price snapshot taken
// at add time; display data is resolved against the loaded catalog.
// Authenticated lines additionally carry the server-assigned ItemID and
// the denormalized product/size/color objects from the server response.
type CartLine struct {
	ItemID    uint            `json:"id,omitempty"`
	UserID    uint            `json:"user_id,omitempty"`
	ProductID uint            `json:"product_id"`
	SizeID    *uint           `json:"size_id"`
	ColorID   *uint           `json:"color_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`

	Product *Product `json:"product,omitempty"`
	Size    *Size    `json:"size,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// VariantKey identifies a unique purchasable line within one cart.
// A nil size or color id is part of the identity, not a wildcard.
type VariantKey struct {
	ProductID uint
	SizeID    uint
	HasSize   bool
	ColorID   uint
	HasColor  bool
}

// Key returns the line's variant key.
func (l *CartLine) Key() VariantKey {
	return NewVariantKey(l.ProductID, l.SizeID, l.ColorID)
}

// NewVariantKey builds a variant key from raw identifiers.
func NewVariantKey(productID uint, sizeID, colorID *uint) VariantKey {
	k := VariantKey{ProductID: productID}
	if sizeID != nil {
		k.SizeID = *sizeID
		k.HasSize = true
	}
	if colorID != nil {
		k.ColorID = *colorID
		k.HasColor = true
	}
	return k
}

// SetQuantity updates the quantity and recomputes the subtotal from the
// price snapshot.
func (l *CartLine) SetQuantity(quantity int) {
	l.Quantity = quantity
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CartTotal sums the subtotals of the given lines.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Subtotal)
	}
	return total
}
