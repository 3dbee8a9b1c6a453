package quotations

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeLine(t *testing.T) {
	p := ComputeLine(d("100"), 3, 10, 18)

	assert.True(t, p.DiscountedPrice.Equal(d("90")), "discounted price: %s", p.DiscountedPrice)
	assert.True(t, p.ExpandedPrice.Equal(d("270")), "expanded price: %s", p.ExpandedPrice)
	assert.True(t, p.GSTAmount.Equal(d("48.60")), "gst amount: %s", p.GSTAmount)
	assert.True(t, p.TotalValue.Equal(d("318.60")), "total value: %s", p.TotalValue)
}

func TestComputeLineZeroDiscount(t *testing.T) {
	p := ComputeLine(d("250.50"), 2, 0, 12)

	assert.True(t, p.DiscountedPrice.Equal(d("250.50")))
	assert.True(t, p.ExpandedPrice.Equal(d("501")))
	assert.True(t, p.GSTAmount.Equal(d("60.12")))
	assert.True(t, p.TotalValue.Equal(d("561.12")))
}

func TestComputeLineFullDiscount(t *testing.T) {
	p := ComputeLine(d("100"), 5, 100, 18)

	assert.True(t, p.ExpandedPrice.IsZero())
	assert.True(t, p.GSTAmount.IsZero())
	assert.True(t, p.TotalValue.IsZero())
}

func TestComputeLineFractionalQuantity(t *testing.T) {
	// Quantities are not restricted to integers (e.g. 2.5 L of a solvent).
	p := ComputeLine(d("100"), 0.5, 0, 18)

	assert.True(t, p.ExpandedPrice.Equal(d("50")))
	assert.True(t, p.TotalValue.Equal(d("59")))
}

func TestComputeTotals(t *testing.T) {
	lines := []LinePricing{
		ComputeLine(d("100"), 3, 10, 18),
		ComputeLine(d("33.33"), 1, 0, 12),
		ComputeLine(d("999.99"), 2, 5, 18),
	}
	totals := ComputeTotals(lines)

	wantSub := decimal.Zero
	wantGST := decimal.Zero
	for _, l := range lines {
		wantSub = wantSub.Add(l.ExpandedPrice)
		wantGST = wantGST.Add(l.GSTAmount)
	}

	require.True(t, totals.SubTotal.Equal(wantSub))
	require.True(t, totals.TotalGST.Equal(wantGST))

	// Without intermediate rounding the grand total equals subtotal + GST
	// exactly, and also equals the sum of line totals.
	assert.True(t, totals.GrandTotal.Equal(totals.SubTotal.Add(totals.TotalGST)))
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.True(t, totals.SubTotal.IsZero())
	assert.True(t, totals.TotalGST.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}
