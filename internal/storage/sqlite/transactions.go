package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/models"
)

// AppendTransaction archives a completed transaction with its line items and
// payments inside a single database transaction.
func (s *SQLiteStore) AppendTransaction(ctx context.Context, txn models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	completed := 0
	if txn.Completed {
		completed = 1
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO transactions (id, completed, created_at) VALUES (?, ?, ?)",
		txn.ID, completed, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for i, li := range txn.LineItems {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO line_items (transaction_id, position, item_id, name, unit_price, fee_percent, quantity)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, i, li.ItemID, li.Name, li.UnitPrice.String(), li.FeePercent.String(), li.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}

	for i, p := range txn.Payments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (id, transaction_id, position, tender, amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, txn.ID, i, string(p.Type), p.Amount.String(), p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves an archived transaction by id, including all line
// items and payments.
func (s *SQLiteStore) GetTransaction(ctx context.Context, txnID string) (models.Transaction, error) {
	var (
		txn       models.Transaction
		completed int
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, completed, created_at FROM transactions WHERE id = ?",
		txnID,
	).Scan(&txn.ID, &completed, &txn.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", txnID, models.ErrNotFound)
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}
	txn.Completed = completed != 0

	if txn.LineItems, err = s.lineItemsFor(ctx, txnID); err != nil {
		return models.Transaction{}, err
	}
	if txn.Payments, err = s.paymentsFor(ctx, txnID); err != nil {
		return models.Transaction{}, err
	}
	return txn, nil
}

// ListTransactions returns archived transactions, newest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, completed, created_at FROM transactions ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var (
			txn       models.Transaction
			completed int
		)
		if err := rows.Scan(&txn.ID, &completed, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Completed = completed != 0
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	for i := range txns {
		if txns[i].LineItems, err = s.lineItemsFor(ctx, txns[i].ID); err != nil {
			return nil, err
		}
		if txns[i].Payments, err = s.paymentsFor(ctx, txns[i].ID); err != nil {
			return nil, err
		}
	}
	return txns, nil
}

// DeleteTransaction removes an archived transaction; line items and payments
// cascade via foreign keys.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, txnID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", txnID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", txnID, models.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) lineItemsFor(ctx context.Context, txnID string) ([]models.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, name, unit_price, fee_percent, quantity
		 FROM line_items WHERE transaction_id = ? ORDER BY position`,
		txnID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get line items: %w", err)
	}
	defer rows.Close()

	var lineItems []models.LineItem
	for rows.Next() {
		var (
			li         models.LineItem
			unitPrice  string
			feePercent string
		)
		if err := rows.Scan(&li.ItemID, &li.Name, &unitPrice, &feePercent, &li.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		if li.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse line item unit price: %w", err)
		}
		if li.FeePercent, err = decimal.NewFromString(feePercent); err != nil {
			return nil, fmt.Errorf("failed to parse line item fee percent: %w", err)
		}
		lineItems = append(lineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}
	return lineItems, nil
}

func (s *SQLiteStore) paymentsFor(ctx context.Context, txnID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tender, amount, created_at
		 FROM payments WHERE transaction_id = ? ORDER BY position`,
		txnID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var (
			p      models.Payment
			tender string
			amount string
		)
		if err := rows.Scan(&p.ID, &tender, &amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Type = models.TenderType(tender)
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse payment amount: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
