package rollup

import (
	"strings"

	"github.com/choozin/paintmatepro/pkg/api"
)

// Flatten produces one row per item plus an indented row per sub-item, in
// tree order. Headers render as upper-cased zero-quantity rows carrying the
// section's rolled-up amount, which is how the PDF renderer and the quote
// preview consume them.
func Flatten(items []api.LineItem) []api.FlatRow {
	rows := make([]api.FlatRow, 0, len(items)*2)
	for _, li := range items {
		if li.Type == api.ItemHeader {
			rows = append(rows, api.FlatRow{
				Description: strings.ToUpper(li.Description),
				Amount:      li.Amount,
				IsHeader:    true,
			})
			continue
		}
		rows = append(rows, api.FlatRow{
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			Rate:        li.Rate,
			Amount:      li.Amount,
		})
		for _, sub := range li.SubItems {
			rows = append(rows, api.FlatRow{
				Description: sub.Description,
				Quantity:    sub.Quantity,
				Unit:        sub.Unit,
				Rate:        sub.Rate,
				Amount:      sub.Amount,
				Indent:      1,
			})
		}
	}
	return rows
}

// SumRows totals the non-header rows of a flattened quote.
func SumRows(rows []api.FlatRow) float64 {
	var total float64
	for _, r := range rows {
		if r.IsHeader {
			continue
		}
		total += r.Amount
	}
	return total
}
