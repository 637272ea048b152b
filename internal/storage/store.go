// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/tillpoint/tillpoint/internal/models"
)

// Store defines the interface for catalog, history and cart persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the handler layer.
type Store interface {
	// ListItems returns all catalog items ordered by name.
	ListItems(ctx context.Context) ([]models.Item, error)

	// GetItem retrieves a catalog item by id.
	// Returns models.ErrNotFound if the id is absent.
	GetItem(ctx context.Context, itemID string) (models.Item, error)

	// InsertItem persists a new catalog item.
	InsertItem(ctx context.Context, item models.Item) error

	// UpdateItem overwrites an existing catalog item.
	// Returns models.ErrNotFound if the id is absent.
	UpdateItem(ctx context.Context, item models.Item) error

	// DeleteItem removes a catalog item.
	// Returns models.ErrNotFound if the id is absent.
	DeleteItem(ctx context.Context, itemID string) error

	// AppendTransaction archives a completed transaction with its line
	// items and payments.
	AppendTransaction(ctx context.Context, txn models.Transaction) error

	// GetTransaction retrieves an archived transaction by id.
	// Returns models.ErrNotFound if the id is absent.
	GetTransaction(ctx context.Context, txnID string) (models.Transaction, error)

	// ListTransactions returns archived transactions, newest first.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	// DeleteTransaction removes an archived transaction and its line items
	// and payments. Returns models.ErrNotFound if the id is absent.
	DeleteTransaction(ctx context.Context, txnID string) error

	// SaveCart persists the current open cart snapshot.
	SaveCart(ctx context.Context, cart models.Transaction) error

	// LoadCart restores the open cart snapshot. A missing or malformed
	// snapshot restores fail-closed to (zero, false, nil) so the caller
	// starts a fresh cart instead of crashing.
	LoadCart(ctx context.Context) (models.Transaction, bool, error)

	// Close releases any resources held by the store.
	Close() error
}
