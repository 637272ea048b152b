// Package models defines the core domain models for Tillpoint.
//
// # Models
//
//   - Item: a sellable catalog entry with a unit price and a fee percent
//   - LineItem: a priced snapshot of an Item inside a cart, with a quantity
//   - Payment: a single tender entry (cash, credit or debit)
//   - Transaction: the cart itself, open while being edited and frozen once
//     checked out into history
//
// # Design Principles
//
//  1. **Validation at the boundary**: constructors reject bad input with a
//     typed error instead of clamping it to a default. A negative price is a
//     data-entry bug, not a zero-dollar item.
//  2. **Snapshot, don't reference**: a LineItem copies the Item's pricing at
//     add-to-cart time; later catalog edits never change existing carts.
//  3. **Exact money**: all amounts are decimal.Decimal. Rounding to two places
//     happens only at presentation boundaries, never in intermediate sums.
//  4. **Caller-owned state**: models are plain values with no hidden globals;
//     the register and storage layers thread them through explicitly.
package models
