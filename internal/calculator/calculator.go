// Package calculator computes line-item and transaction totals.
//
// All arithmetic is exact decimal; callers round to two places only when
// formatting for display so that rounding error never compounds across
// many line items.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/models"
)

var hundred = decimal.NewFromInt(100)

// UnitTotal returns the fee-adjusted price for a single unit:
// unitPrice + unitPrice * feePercent/100.
func UnitTotal(li models.LineItem) decimal.Decimal {
	fee := li.UnitPrice.Mul(li.FeePercent).Div(hundred)
	return li.UnitPrice.Add(fee)
}

// LineItemTotal returns the fee-adjusted total for the whole line:
// UnitTotal * quantity. Linear in quantity for a fixed item.
func LineItemTotal(li models.LineItem) decimal.Decimal {
	return UnitTotal(li).Mul(decimal.NewFromInt(li.Quantity))
}

// Subtotal sums LineItemTotal over the given line items.
// An empty slice yields zero.
func Subtotal(lineItems []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range lineItems {
		total = total.Add(LineItemTotal(li))
	}
	return total
}

// ItemCount returns the total number of units across all line items.
func ItemCount(lineItems []models.LineItem) int64 {
	var n int64
	for _, li := range lineItems {
		n += li.Quantity
	}
	return n
}
