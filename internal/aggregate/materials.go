package aggregate

import (
	"fmt"

	"github.com/choozin/paintmatepro/pkg/api"
)

// deferredLine is a cost collected during group processing and flushed as a
// project-wide section at the end of the quote.
type deferredLine struct {
	desc   string
	qty    float64
	unit   string
	rate   float64
	amount float64
}

// accumulator is the explicit second channel of the aggregation pass: costs
// that must leave their room/axis section travel here and nowhere else. It is
// passed and returned openly rather than captured by closures.
type accumulator struct {
	setupTotal   float64
	sectionLines []deferredLine
	paintLines   []deferredLine
	matLines     []deferredLine
}

func (a *accumulator) deferPaint(d deferredLine) {
	a.paintLines = mergeDeferred(a.paintLines, d)
}

func (a *accumulator) deferMaterial(d deferredLine) {
	a.matLines = mergeDeferred(a.matLines, d)
}

// mergeDeferred merges an entry into an existing one with the same
// description, unit, and rate, so a product used in five rooms emits one
// section line with summed gallons rather than five repeats.
func mergeDeferred(list []deferredLine, d deferredLine) []deferredLine {
	for i := range list {
		if list[i].desc == d.desc && list[i].unit == d.unit && list[i].rate == d.rate {
			list[i].qty += d.qty
			list[i].amount += d.amount
			return list
		}
	}
	return append(list, d)
}

// Section titles for the flushed material/paint areas.
const (
	materialsSectionTitle     = "Materials"
	paintSectionTitle         = "Paint Products"
	suppliesSectionTitle      = "Materials & Supplies"
	jointSectionTitle         = "Paint & Materials"
	materialsPackageLineTitle = "Project Materials & Supplies Package"
	allowanceLineTitle        = "Materials Allowance"
)

// flush renders the accumulated end-of-quote sections in fixed order:
// materials package/section/allowance first, then the separate-area paint and
// material sections.
func (e *Engine) flush(acc *accumulator, cfg api.QuoteConfiguration) []api.LineItem {
	items := make([]api.LineItem, 0, 4)

	switch cfg.MaterialStrategy {
	case api.MaterialCombinedSetup:
		if acc.setupTotal > 0 {
			line := api.LineItem{
				ID:          "li-materials-package",
				Description: materialsPackageLineTitle,
				Quantity:    1,
				Unit:        "lot",
				Rate:        acc.setupTotal,
				Amount:      acc.setupTotal,
				Type:        api.ItemMaterial,
				GroupTitle:  materialsSectionTitle,
			}
			items = append(items, headerFor("hdr-materials", materialsSectionTitle, []api.LineItem{line}), line)
		}
	case api.MaterialCombinedSection:
		if len(acc.sectionLines) > 0 {
			lines := renderDeferred("li-materials", materialsSectionTitle, acc.sectionLines)
			items = append(items, headerFor("hdr-materials", materialsSectionTitle, lines))
			items = append(items, lines...)
		}
	case api.MaterialAllowance:
		if cfg.MaterialAllowance > 0 {
			line := api.LineItem{
				ID:          "li-materials-allowance",
				Description: allowanceLineTitle,
				Quantity:    1,
				Unit:        "lot",
				Rate:        cfg.MaterialAllowance,
				Amount:      cfg.MaterialAllowance,
				Type:        api.ItemMaterial,
				GroupTitle:  materialsSectionTitle,
			}
			items = append(items, headerFor("hdr-materials", materialsSectionTitle, []api.LineItem{line}), line)
		}
	}

	joint := cfg.PaintPlacement == api.PlacementSeparateArea &&
		cfg.MaterialPlacement == api.PlacementSeparateArea &&
		cfg.SeparateAreaStrategy == api.SeparateAreaCombined

	if joint && (len(acc.paintLines) > 0 || len(acc.matLines) > 0) {
		combined := append(append([]deferredLine{}, acc.paintLines...), acc.matLines...)
		lines := renderDeferred("li-area", jointSectionTitle, combined)
		items = append(items, headerFor("hdr-paint-materials", jointSectionTitle, lines))
		items = append(items, lines...)
		return items
	}

	if len(acc.paintLines) > 0 {
		lines := renderDeferred("li-paint-area", paintSectionTitle, acc.paintLines)
		items = append(items, headerFor("hdr-paint", paintSectionTitle, lines))
		items = append(items, lines...)
	}
	if len(acc.matLines) > 0 {
		lines := renderDeferred("li-mat-area", suppliesSectionTitle, acc.matLines)
		items = append(items, headerFor("hdr-supplies", suppliesSectionTitle, lines))
		items = append(items, lines...)
	}
	return items
}

func renderDeferred(idPrefix, title string, deferred []deferredLine) []api.LineItem {
	lines := make([]api.LineItem, 0, len(deferred))
	for i, d := range deferred {
		itemType := api.ItemMaterial
		if d.unit == "gal" {
			itemType = api.ItemPaint
		}
		lines = append(lines, api.LineItem{
			ID:          fmt.Sprintf("%s-%d", idPrefix, i),
			Description: d.desc,
			Quantity:    d.qty,
			Unit:        d.unit,
			Rate:        d.rate,
			Amount:      d.amount,
			Type:        itemType,
			GroupTitle:  title,
		})
	}
	return lines
}
