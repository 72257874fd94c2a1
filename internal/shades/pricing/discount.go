package pricing

import "shade-store/internal/shades/catalog"

// ============================================================
// Cart totals
// ============================================================

type CartTotals struct {
	Subtotal     float64 `json:"subtotal"`
	ItemCount    int     `json:"itemCount"`
	BulkDiscount bool    `json:"bulkDiscount"`
	DiscountRate float64 `json:"discountRate"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// Totals sums line totals and applies the bulk discount to the whole cart
// when the subtotal or the number of lines is over its threshold.
func Totals(rule catalog.BulkDiscount, lineTotals []float64) CartTotals {
	t := CartTotals{ItemCount: len(lineTotals)}
	for _, v := range lineTotals {
		t.Subtotal += v
	}

	if t.Subtotal > rule.SubtotalThreshold || t.ItemCount > rule.ItemThreshold {
		t.BulkDiscount = true
		t.DiscountRate = rule.Rate
		t.Discount = t.Subtotal * rule.Rate
	}
	t.Total = t.Subtotal - t.Discount
	return t
}

// CartTotals is Totals using the engine's discount rule.
func (e *Engine) CartTotals(lineTotals []float64) CartTotals {
	return Totals(e.modifiers.BulkDiscount, lineTotals)
}
