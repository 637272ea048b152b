// Package catalog manages the inventory of sellable items.
//
// The catalog is independent of the cart: the register copies item pricing
// into line items at add-to-cart time, so catalog edits never retroactively
// change open carts or archived transactions.
package catalog

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/models"
	"github.com/tillpoint/tillpoint/internal/storage"
)

// Service provides catalog CRUD over the storage backend.
type Service struct {
	store storage.Store
}

// NewService creates a catalog service with the given storage backend.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// List returns all catalog items.
func (s *Service) List(ctx context.Context) ([]models.Item, error) {
	return s.store.ListItems(ctx)
}

// Get retrieves a single item by id.
func (s *Service) Get(ctx context.Context, itemID string) (models.Item, error) {
	return s.store.GetItem(ctx, itemID)
}

// Insert validates and persists a new catalog item.
func (s *Service) Insert(ctx context.Context, name string, unitPrice, feePercent decimal.Decimal) (models.Item, error) {
	item, err := models.NewItem(name, unitPrice, feePercent)
	if err != nil {
		return models.Item{}, err
	}
	if err := s.store.InsertItem(ctx, item); err != nil {
		return models.Item{}, err
	}
	slog.Info("Catalog item created", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// ItemUpdate carries the fields an item edit may change.
// Nil fields are left untouched.
type ItemUpdate struct {
	Name       *string
	UnitPrice  *decimal.Decimal
	FeePercent *decimal.Decimal
}

// Update applies an edit to an existing item and returns the updated value.
// The edit is atomic: validation failures leave the stored item untouched.
func (s *Service) Update(ctx context.Context, itemID string, update ItemUpdate) (models.Item, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, err
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.UnitPrice != nil {
		item.UnitPrice = *update.UnitPrice
	}
	if update.FeePercent != nil {
		item.FeePercent = *update.FeePercent
	}
	if err := item.Validate(); err != nil {
		return models.Item{}, err
	}
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return models.Item{}, err
	}
	slog.Info("Catalog item updated", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// Delete removes an item from the catalog. Existing carts keep their
// snapshotted line items.
func (s *Service) Delete(ctx context.Context, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	slog.Info("Catalog item deleted", "item_id", itemID)
	return nil
}
