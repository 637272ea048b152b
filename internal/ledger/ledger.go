// Package ledger computes how recorded payments pay down a transaction.
//
// Card tenders (credit and debit) carry a flat 2% processing surcharge that
// is credited toward the balance: a card payment of A reduces the outstanding
// balance by 1.02*A. Cash reduces it by exactly the tendered amount.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/calculator"
	"github.com/tillpoint/tillpoint/internal/models"
)

// cardMultiplier is the balance-reduction factor for credit and debit
// tenders. Must stay exact; rounding happens only at display time.
var cardMultiplier = decimal.RequireFromString("1.02")

// EffectiveAmount returns a payment's contribution toward reducing the
// outstanding balance: amount for cash, amount*1.02 for credit and debit.
func EffectiveAmount(p models.Payment) decimal.Decimal {
	switch p.Type {
	case models.TenderCredit, models.TenderDebit:
		return p.Amount.Mul(cardMultiplier)
	default:
		return p.Amount
	}
}

// TotalPaid sums EffectiveAmount over all payments.
func TotalPaid(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(EffectiveAmount(p))
	}
	return total
}

// Remaining returns the unpaid balance, clamped at zero.
func Remaining(lineItems []models.LineItem, payments []models.Payment) decimal.Decimal {
	rem := calculator.Subtotal(lineItems).Sub(TotalPaid(payments))
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// Change returns the overpayment amount, clamped at zero.
func Change(lineItems []models.LineItem, payments []models.Payment) decimal.Decimal {
	change := TotalPaid(payments).Sub(calculator.Subtotal(lineItems))
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}
