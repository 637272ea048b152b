package server

import (
	"github.com/tillpoint/tillpoint/internal/calculator"
	"github.com/tillpoint/tillpoint/internal/ledger"
	"github.com/tillpoint/tillpoint/internal/models"
)

// Receipt is the presentation view of a transaction. This is the one place
// where currency values are rounded to two decimal places; every field is the
// display string of an exact decimal computed by the core.
type Receipt struct {
	ID        string           `json:"id"`
	LineItems []ReceiptLine    `json:"line_items"`
	Payments  []ReceiptPayment `json:"payments"`
	ItemCount int64            `json:"item_count"`
	Subtotal  string           `json:"subtotal"`
	TotalPaid string           `json:"total_paid"`
	Remaining string           `json:"remaining"`
	Change    string           `json:"change"`
	Completed bool             `json:"completed"`
	CreatedAt int64            `json:"created_at,omitempty"`
}

// ReceiptLine is the presentation view of one line item.
type ReceiptLine struct {
	ItemID     string `json:"item_id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	FeePercent string `json:"fee_percent"`
	Quantity   int64  `json:"quantity"`
	Total      string `json:"total"`
}

// ReceiptPayment is the presentation view of one tender entry.
type ReceiptPayment struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
	// Effective is the amount credited toward the balance after the card
	// surcharge.
	Effective string `json:"effective"`
	CreatedAt int64  `json:"created_at"`
}

// buildReceipt computes totals for a transaction and formats them for
// display.
func buildReceipt(txn models.Transaction) Receipt {
	receipt := Receipt{
		ID:        txn.ID,
		LineItems: make([]ReceiptLine, 0, len(txn.LineItems)),
		Payments:  make([]ReceiptPayment, 0, len(txn.Payments)),
		ItemCount: calculator.ItemCount(txn.LineItems),
		Subtotal:  calculator.Subtotal(txn.LineItems).StringFixed(2),
		TotalPaid: ledger.TotalPaid(txn.Payments).StringFixed(2),
		Remaining: ledger.Remaining(txn.LineItems, txn.Payments).StringFixed(2),
		Change:    ledger.Change(txn.LineItems, txn.Payments).StringFixed(2),
		Completed: txn.Completed,
		CreatedAt: txn.CreatedAt,
	}
	for _, li := range txn.LineItems {
		receipt.LineItems = append(receipt.LineItems, ReceiptLine{
			ItemID:     li.ItemID,
			Name:       li.Name,
			UnitPrice:  li.UnitPrice.StringFixed(2),
			FeePercent: li.FeePercent.String(),
			Quantity:   li.Quantity,
			Total:      calculator.LineItemTotal(li).StringFixed(2),
		})
	}
	for _, p := range txn.Payments {
		receipt.Payments = append(receipt.Payments, ReceiptPayment{
			ID:        p.ID,
			Type:      string(p.Type),
			Amount:    p.Amount.StringFixed(2),
			Effective: ledger.EffectiveAmount(p).StringFixed(2),
			CreatedAt: p.CreatedAt,
		})
	}
	return receipt
}
