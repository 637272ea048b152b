package models

// Transaction represents a cart moving through its lifecycle.
//
// While open it is the single "current cart": line items can be added,
// edited and removed, and CreatedAt stays zero. Checkout attaches the final
// payment list, sets Completed per the remaining-balance rule, stamps
// CreatedAt and freezes the transaction; frozen transactions live in history
// and the only further operation is deletion.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// LineItems are the cart entries, in insertion order.
	LineItems []LineItem `json:"line_items"`

	// Payments are the tender entries attached at checkout.
	// Empty while the transaction is open.
	Payments []Payment `json:"payments"`

	// Completed records whether the fee-adjusted paid total covered the
	// subtotal at checkout time. It is fixed then and never recomputed.
	Completed bool `json:"completed"`

	// CreatedAt is the Unix timestamp in milliseconds stamped at checkout.
	// Zero while the transaction is still open.
	CreatedAt int64 `json:"created_at"`
}

// Frozen reports whether the transaction has been checked out into history.
// Frozen transactions reject all mutation.
func (t Transaction) Frozen() bool {
	return t.CreatedAt != 0
}

// Clone returns a deep copy so callers can hand out transaction values
// without exposing the internal slices to mutation.
func (t Transaction) Clone() Transaction {
	out := t
	out.LineItems = make([]LineItem, len(t.LineItems))
	copy(out.LineItems, t.LineItems)
	out.Payments = make([]Payment, len(t.Payments))
	copy(out.Payments, t.Payments)
	return out
}
