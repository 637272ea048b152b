package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem represents one entry in a cart or completed transaction.
// It snapshots the source item's pricing at add-to-cart time; later edits
// to the catalog item never change an existing line item.
type LineItem struct {
	// ItemID is the id of the catalog item this line was created from.
	// It is the merge key: adding the same item again bumps the quantity.
	ItemID string `json:"item_id"`

	// Name is the item name as it read when added to the cart.
	Name string `json:"name"`

	// UnitPrice is the snapshotted per-unit price.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// FeePercent is the snapshotted fee percentage.
	FeePercent decimal.Decimal `json:"fee_percent"`

	// Quantity is the number of units; always a positive integer.
	Quantity int64 `json:"quantity"`
}

// NewLineItem snapshots a catalog item into a line item with the given
// quantity. Quantities below one and negative prices or fees are rejected
// with ErrInvalidLineItem.
func NewLineItem(item Item, quantity int64) (LineItem, error) {
	li := LineItem{
		ItemID:     item.ID,
		Name:       item.Name,
		UnitPrice:  item.UnitPrice,
		FeePercent: item.FeePercent,
		Quantity:   quantity,
	}
	if err := li.Validate(); err != nil {
		return LineItem{}, err
	}
	return li, nil
}

// Validate checks the line item invariants.
func (li LineItem) Validate() error {
	if li.Quantity < 1 {
		return fmt.Errorf("%w: quantity %d must be at least 1", ErrInvalidLineItem, li.Quantity)
	}
	if li.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price %s is negative", ErrInvalidLineItem, li.UnitPrice)
	}
	if li.FeePercent.IsNegative() {
		return fmt.Errorf("%w: fee percent %s is negative", ErrInvalidLineItem, li.FeePercent)
	}
	return nil
}
