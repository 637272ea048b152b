package models

import "errors"

var (
	// ErrInvalidItem is returned when a catalog item has an empty name or a
	// negative price or fee percent.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidLineItem is returned when a line item is created or edited
	// with a negative price, a negative fee percent, or a quantity below one.
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrInvalidPayment is returned when a payment has a non-positive amount
	// or an unrecognized tender type.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrNotFound is returned when an operation references an id that is
	// absent from the relevant collection.
	ErrNotFound = errors.New("not found")

	// ErrTransactionCompleted is returned when a mutation is attempted on a
	// transaction that has already been checked out into history.
	ErrTransactionCompleted = errors.New("transaction already completed")

	// ErrEmptyCart is returned when checkout is attempted on a cart with no
	// line items.
	ErrEmptyCart = errors.New("cart is empty")
)
