// Package rollup computes quote totals and flattens the line-item tree for
// rendering and persistence collaborators. It is independent of which
// aggregation policy produced the tree.
package rollup

import (
	"github.com/choozin/paintmatepro/pkg/api"
)

// Totals sums every non-header node and its sub-items. Header amounts are
// informational section subtotals and are excluded to avoid double counting.
// Tax applies only when the configuration shows a tax line; no currency
// rounding happens here, that is a presentation concern.
func Totals(items []api.LineItem, taxRatePercent float64, cfg api.QuoteConfiguration) api.QuoteTotals {
	var subtotal float64
	for _, li := range items {
		subtotal += li.SubtreeAmount()
	}

	var tax float64
	if cfg.ShowTaxLine && taxRatePercent > 0 {
		tax = subtotal * taxRatePercent / 100
	}

	return api.QuoteTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// SummaryLines renders the trailing tax and total rows for displays that want
// them as line items.
func SummaryLines(totals api.QuoteTotals, cfg api.QuoteConfiguration) []api.LineItem {
	lines := make([]api.LineItem, 0, 2)
	if cfg.ShowTaxLine && totals.Tax > 0 {
		lines = append(lines, api.LineItem{
			ID:          "li-tax",
			Description: "Sales Tax",
			Amount:      totals.Tax,
			Type:        api.ItemTax,
		})
	}
	lines = append(lines, api.LineItem{
		ID:          "li-total",
		Description: "Total",
		Amount:      totals.Total,
		Type:        api.ItemTotal,
	})
	return lines
}
