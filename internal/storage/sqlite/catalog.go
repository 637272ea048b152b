package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/models"
)

// InsertItem persists a new catalog item.
func (s *SQLiteStore) InsertItem(ctx context.Context, item models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO items (id, name, unit_price, fee_percent) VALUES (?, ?, ?, ?)",
		item.ID, item.Name, item.UnitPrice.String(), item.FeePercent.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves a catalog item by id.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	var (
		item       models.Item
		unitPrice  string
		feePercent string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, unit_price, fee_percent FROM items WHERE id = ?",
		itemID,
	).Scan(&item.ID, &item.Name, &unitPrice, &feePercent)
	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to get item: %w", err)
	}

	if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return models.Item{}, fmt.Errorf("failed to parse unit price for item %s: %w", itemID, err)
	}
	if item.FeePercent, err = decimal.NewFromString(feePercent); err != nil {
		return models.Item{}, fmt.Errorf("failed to parse fee percent for item %s: %w", itemID, err)
	}
	return item, nil
}

// ListItems returns all catalog items ordered by name.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, unit_price, fee_percent FROM items ORDER BY name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			item       models.Item
			unitPrice  string
			feePercent string
		)
		if err := rows.Scan(&item.ID, &item.Name, &unitPrice, &feePercent); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse unit price for item %s: %w", item.ID, err)
		}
		if item.FeePercent, err = decimal.NewFromString(feePercent); err != nil {
			return nil, fmt.Errorf("failed to parse fee percent for item %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem overwrites an existing catalog item in place.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item models.Item) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = ?, unit_price = ?, fee_percent = ? WHERE id = ?",
		item.Name, item.UnitPrice.String(), item.FeePercent.String(), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", item.ID, models.ErrNotFound)
	}
	return nil
}

// DeleteItem removes a catalog item by id.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}
	return nil
}
