package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a sellable catalog entry.
// The catalog owns items; carts copy their pricing into line items.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the display name of the item (e.g., "Latte", "Bagel").
	Name string `json:"name"`

	// UnitPrice is the price for a single unit, before the fee.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// FeePercent is the surcharge percentage baked into the line-item total,
	// e.g. 10 means a 10% fee on top of the unit price.
	FeePercent decimal.Decimal `json:"fee_percent"`
}

// NewItem creates a catalog item with a freshly generated ID.
// Empty names and negative prices or fees are rejected with ErrInvalidItem.
func NewItem(name string, unitPrice, feePercent decimal.Decimal) (Item, error) {
	item := Item{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		UnitPrice:  unitPrice,
		FeePercent: feePercent,
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate checks the item's fields against the catalog invariants.
func (i Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidItem)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price %s is negative", ErrInvalidItem, i.UnitPrice)
	}
	if i.FeePercent.IsNegative() {
		return fmt.Errorf("%w: fee percent %s is negative", ErrInvalidItem, i.FeePercent)
	}
	return nil
}
