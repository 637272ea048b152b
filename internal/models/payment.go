package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenderType identifies the payment method for a single tender entry.
type TenderType string

const (
	TenderCash   TenderType = "cash"
	TenderCredit TenderType = "credit"
	TenderDebit  TenderType = "debit"
)

// Valid reports whether t is one of the recognized tender types.
func (t TenderType) Valid() bool {
	switch t {
	case TenderCash, TenderCredit, TenderDebit:
		return true
	}
	return false
}

// Payment represents a single tender entry within a payment session.
// Payments are append-only: never mutated after creation.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// Type is the tender type (cash, credit or debit).
	Type TenderType `json:"type"`

	// Amount is the amount the customer tendered, before any surcharge.
	Amount decimal.Decimal `json:"amount"`

	// CreatedAt is the Unix timestamp in milliseconds when the payment was
	// recorded.
	CreatedAt int64 `json:"created_at"`
}

// NewPayment creates a validated payment stamped with the current time.
// Non-positive amounts and unknown tender types are rejected with
// ErrInvalidPayment.
func NewPayment(tender TenderType, amount decimal.Decimal) (Payment, error) {
	p := Payment{
		ID:        uuid.NewString(),
		Type:      tender,
		Amount:    amount,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := p.Validate(); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// Validate checks the payment invariants.
func (p Payment) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown tender type %q", ErrInvalidPayment, p.Type)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount %s must be positive", ErrInvalidPayment, p.Amount)
	}
	return nil
}
