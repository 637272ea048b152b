// Package register implements the cart lifecycle state machine.
//
// A Register owns exactly one open transaction (the current cart). Line
// items can be added, edited and removed while the cart is open; Checkout
// attaches the final payment list, freezes the transaction and hands it back
// for archival, then resets the cart. The register holds no hidden global
// state: the caller owns the instance and threads its cart value through
// persistence.
package register

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/ledger"
	"github.com/tillpoint/tillpoint/internal/models"
)

// Register holds the single open cart.
type Register struct {
	cart models.Transaction
}

// New creates a register with a fresh empty cart.
func New() *Register {
	return &Register{cart: newCart()}
}

// Resume creates a register from a previously persisted open cart.
// Frozen transactions cannot be resumed; they are history, not carts.
func Resume(cart models.Transaction) (*Register, error) {
	if cart.Frozen() {
		return nil, fmt.Errorf("cannot resume cart %s: %w", cart.ID, models.ErrTransactionCompleted)
	}
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	for _, li := range cart.LineItems {
		if err := li.Validate(); err != nil {
			return nil, fmt.Errorf("cannot resume cart %s: %w", cart.ID, err)
		}
	}
	return &Register{cart: cart.Clone()}, nil
}

func newCart() models.Transaction {
	return models.Transaction{ID: uuid.NewString()}
}

// Cart returns a copy of the current open cart.
func (r *Register) Cart() models.Transaction {
	return r.cart.Clone()
}

// AddLineItem snapshots a catalog item into the cart. If a line with the
// same item id already exists its quantity is incremented; otherwise a new
// line is appended. A quantity below one is rejected with ErrInvalidLineItem.
func (r *Register) AddLineItem(item models.Item, quantity int64) error {
	li, err := models.NewLineItem(item, quantity)
	if err != nil {
		return err
	}
	for i := range r.cart.LineItems {
		if r.cart.LineItems[i].ItemID == item.ID {
			r.cart.LineItems[i].Quantity += quantity
			return nil
		}
	}
	r.cart.LineItems = append(r.cart.LineItems, li)
	return nil
}

// LineItemUpdate carries the fields an edit may change.
// Nil fields are left untouched.
type LineItemUpdate struct {
	Name       *string
	UnitPrice  *decimal.Decimal
	FeePercent *decimal.Decimal
	Quantity   *int64
}

// EditLineItem applies an update to the line with the given item id.
// The edit is atomic: it either fully applies or leaves the cart untouched.
// Returns ErrNotFound if the id is absent and ErrInvalidLineItem if the
// updated fields violate the line item invariants.
func (r *Register) EditLineItem(itemID string, update LineItemUpdate) error {
	for i := range r.cart.LineItems {
		if r.cart.LineItems[i].ItemID != itemID {
			continue
		}
		updated := r.cart.LineItems[i]
		if update.Name != nil {
			updated.Name = *update.Name
		}
		if update.UnitPrice != nil {
			updated.UnitPrice = *update.UnitPrice
		}
		if update.FeePercent != nil {
			updated.FeePercent = *update.FeePercent
		}
		if update.Quantity != nil {
			updated.Quantity = *update.Quantity
		}
		if err := updated.Validate(); err != nil {
			return err
		}
		r.cart.LineItems[i] = updated
		return nil
	}
	return fmt.Errorf("line item %s: %w", itemID, models.ErrNotFound)
}

// RemoveLineItem deletes the line with the given item id.
// Returns ErrNotFound if the id is absent.
func (r *Register) RemoveLineItem(itemID string) error {
	for i := range r.cart.LineItems {
		if r.cart.LineItems[i].ItemID == itemID {
			r.cart.LineItems = append(r.cart.LineItems[:i], r.cart.LineItems[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("line item %s: %w", itemID, models.ErrNotFound)
}

// Clear resets the register to a fresh empty cart with a new id.
func (r *Register) Clear() {
	r.cart = newCart()
}

// Checkout attaches the final payment list and completes the transaction.
//
// The Completed flag is set iff the fee-adjusted paid total covers the
// subtotal; the transaction is archived either way (an underpaid checkout is
// a force-close, recorded as not completed). The returned transaction is
// frozen and the cart is reset to a fresh empty one. On error the cart is
// left untouched.
func (r *Register) Checkout(payments []models.Payment) (models.Transaction, error) {
	if len(r.cart.LineItems) == 0 {
		return models.Transaction{}, models.ErrEmptyCart
	}
	if len(payments) == 0 {
		return models.Transaction{}, fmt.Errorf("%w: at least one payment is required", models.ErrInvalidPayment)
	}
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return models.Transaction{}, err
		}
	}

	txn := r.cart.Clone()
	txn.Payments = make([]models.Payment, len(payments))
	copy(txn.Payments, payments)
	txn.Completed = !ledger.Remaining(txn.LineItems, txn.Payments).IsPositive()
	txn.CreatedAt = time.Now().UnixMilli()

	r.cart = newCart()
	return txn, nil
}
