package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tillpoint/tillpoint/internal/models"
)

// SaveCart persists the open cart as a JSON snapshot in a single-row table.
func (s *SQLiteStore) SaveCart(ctx context.Context, cart models.Transaction) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cart_snapshot (id, payload) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// LoadCart restores the open cart snapshot.
//
// Restoration fails closed: a missing or malformed snapshot yields
// (zero, false, nil) so the caller starts from a fresh empty cart instead of
// crashing on bad persisted state.
func (s *SQLiteStore) LoadCart(ctx context.Context) (models.Transaction, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM cart_snapshot WHERE id = 1",
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.Transaction{}, false, nil
	}
	if err != nil {
		return models.Transaction{}, false, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var cart models.Transaction
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		slog.Warn("Discarding malformed cart snapshot", "error", err)
		return models.Transaction{}, false, nil
	}
	return cart, true, nil
}
