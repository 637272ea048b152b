package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint/internal/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestLineItemTotal(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  string
		feePercent string
		quantity   int64
		want       string
	}{
		{
			name:       "price 10 with 10% fee, qty 2",
			unitPrice:  "10",
			feePercent: "10",
			quantity:   2,
			want:       "22",
		},
		{
			name:       "zero fee leaves the price alone",
			unitPrice:  "5.50",
			feePercent: "0",
			quantity:   3,
			want:       "16.50",
		},
		{
			name:       "fractional fee stays exact",
			unitPrice:  "19.99",
			feePercent: "2.5",
			quantity:   1,
			want:       "20.489750",
		},
		{
			name:       "zero price",
			unitPrice:  "0",
			feePercent: "15",
			quantity:   7,
			want:       "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := models.LineItem{
				UnitPrice:  dec(t, tt.unitPrice),
				FeePercent: dec(t, tt.feePercent),
				Quantity:   tt.quantity,
			}
			got := LineItemTotal(li)
			if !got.Equal(dec(t, tt.want)) {
				t.Errorf("LineItemTotal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineItemTotalLinearInQuantity(t *testing.T) {
	li := models.LineItem{
		UnitPrice:  dec(t, "7.25"),
		FeePercent: dec(t, "3"),
	}

	// The increment between consecutive quantities must be constant.
	li.Quantity = 1
	unit := LineItemTotal(li)
	prev := decimal.Zero
	for qty := int64(1); qty <= 10; qty++ {
		li.Quantity = qty
		total := LineItemTotal(li)
		if !total.Sub(prev).Equal(unit) {
			t.Fatalf("increment at qty %d = %s, want %s", qty, total.Sub(prev), unit)
		}
		prev = total
	}
}

func TestSubtotal(t *testing.T) {
	line := models.LineItem{
		UnitPrice:  dec(t, "10"),
		FeePercent: dec(t, "10"),
		Quantity:   2,
	}

	t.Run("empty cart is zero", func(t *testing.T) {
		if got := Subtotal(nil); !got.IsZero() {
			t.Errorf("Subtotal(nil) = %s, want 0", got)
		}
	})

	t.Run("two identical lines", func(t *testing.T) {
		got := Subtotal([]models.LineItem{line, line})
		if !got.Equal(dec(t, "44")) {
			t.Errorf("Subtotal = %s, want 44", got)
		}
	})

	t.Run("no intermediate rounding across many lines", func(t *testing.T) {
		// 0.10 with a 5% fee is 0.105 per unit; summed 100 times it must be
		// exactly 10.50, not a drifted float sum.
		penny := models.LineItem{
			UnitPrice:  dec(t, "0.10"),
			FeePercent: dec(t, "5"),
			Quantity:   1,
		}
		lines := make([]models.LineItem, 100)
		for i := range lines {
			lines[i] = penny
		}
		if got := Subtotal(lines); !got.Equal(dec(t, "10.50")) {
			t.Errorf("Subtotal = %s, want 10.50", got)
		}
	})
}

func TestItemCount(t *testing.T) {
	lines := []models.LineItem{
		{Quantity: 2},
		{Quantity: 5},
	}
	if got := ItemCount(lines); got != 7 {
		t.Errorf("ItemCount = %d, want 7", got)
	}
	if got := ItemCount(nil); got != 0 {
		t.Errorf("ItemCount(nil) = %d, want 0", got)
	}
}
