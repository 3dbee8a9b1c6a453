package quotations

import "github.com/shopspring/decimal"

// Pricing is done entirely in decimal arithmetic. Intermediate values keep
// full precision; rounding happens only when figures are rendered.

var hundred = decimal.NewFromInt(100)

// LinePricing is the computed money breakdown of a single quotation line.
type LinePricing struct {
	DiscountedPrice decimal.Decimal
	ExpandedPrice   decimal.Decimal
	GSTAmount       decimal.Decimal
	TotalValue      decimal.Decimal
}

// ComputeLine prices one line: the unit rate is discounted, expanded by the
// quantity, and taxed at the line's GST rate.
func ComputeLine(unitRate decimal.Decimal, quantity, discountPercent, gstPercent float64) LinePricing {
	discounted := unitRate.Mul(hundred.Sub(decimal.NewFromFloat(discountPercent))).Div(hundred)
	expanded := discounted.Mul(decimal.NewFromFloat(quantity))
	gst := expanded.Mul(decimal.NewFromFloat(gstPercent)).Div(hundred)

	return LinePricing{
		DiscountedPrice: discounted,
		ExpandedPrice:   expanded,
		GSTAmount:       gst,
		TotalValue:      expanded.Add(gst),
	}
}

// Totals aggregates line pricings. The grand total is defined as the sum of
// line totals, which equals subtotal plus GST exactly because no intermediate
// rounding takes place.
type Totals struct {
	SubTotal   decimal.Decimal
	TotalGST   decimal.Decimal
	GrandTotal decimal.Decimal
}

func ComputeTotals(lines []LinePricing) Totals {
	t := Totals{
		SubTotal:   decimal.Zero,
		TotalGST:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
	for _, l := range lines {
		t.SubTotal = t.SubTotal.Add(l.ExpandedPrice)
		t.TotalGST = t.TotalGST.Add(l.GSTAmount)
		t.GrandTotal = t.GrandTotal.Add(l.TotalValue)
	}
	return t
}
