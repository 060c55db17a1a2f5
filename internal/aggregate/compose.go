package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/choozin/paintmatepro/pkg/api"
)

const hoursPerWorkDay = 8.0

// unitTotals is the summed ledger of one work unit.
type unitTotals struct {
	labor    float64
	material float64
	hours    float64
	quantity float64
	unit     string
	unitOK   bool

	// Paint detail. taskPaint is the portion already inside material;
	// paintCost additionally includes catalog-priced paint for misc entries.
	taskPaint float64
	paintCost float64
	paintRate float64
	gallons   float64
	supplies  float64
	product   string
	coats     int
	billable  bool
}

func (e *Engine) unitTotals(u workUnit) unitTotals {
	var tot unitTotals
	tot.unitOK = true

	for i, t := range u.tasks {
		if i == 0 {
			tot.unit = t.Unit
		} else if t.Unit != tot.unit {
			tot.unitOK = false
		}
		tot.labor += t.LaborCost
		tot.material += t.MaterialCost
		tot.hours += t.Hours
		tot.quantity += t.Quantity
		tot.taskPaint += t.PaintCost()
		tot.gallons += t.Gallons
		if tot.product == "" {
			tot.product = t.ProductName
		}
		if t.CoatCount > tot.coats {
			tot.coats = t.CoatCount
		}
		if t.PaintBillable {
			tot.billable = true
		}
	}
	tot.paintCost = tot.taskPaint

	// Misc entries referencing a catalog product get their paint priced here;
	// the decomposer has no catalog access. Gallons round up once per merged
	// entry, over the summed quantity.
	if u.named && len(u.tasks) > 0 {
		t0 := u.tasks[0]
		if item, ok := e.catalog[t0.PaintProductID]; ok && t0.PaintProductID != "" {
			coverage := t0.Coverage
			if coverage == 0 {
				coverage = item.CoverageSqft
			}
			if coverage > 0 && t0.Width > 0 {
				gallons := math.Ceil(tot.quantity * t0.Width / coverage)
				rate := item.UnitPrice
				if !tot.billable {
					rate = 0
				}
				tot.gallons += gallons
				tot.paintCost += gallons * rate
				if tot.product == "" {
					tot.product = item.Name
				}
			}
		}
	}

	if tot.gallons > 0 {
		tot.paintRate = tot.paintCost / tot.gallons
	}
	tot.supplies = tot.material - tot.taskPaint
	if tot.supplies < 0 {
		tot.supplies = 0
	}
	return tot
}

// unitLines renders one work unit as its line item(s): the priced main line,
// optional paint/material sub-items or siblings, and any cost deferred into
// the accumulator for the project-wide sections.
func (e *Engine) unitLines(g taskGroup, u workUnit, cfg api.QuoteConfiguration, acc *accumulator) []api.LineItem {
	if len(u.tasks) == 0 {
		return nil
	}
	tot := e.unitTotals(u)
	id := "li-" + u.tasks[0].ID

	desc := describe(u.surface, u.phase)
	if u.named {
		desc = u.name
		if u.count > 1 {
			desc = fmt.Sprintf("%s (x%d)", u.name, u.count)
		}
	}

	// Step E: paint placement.
	var paintChild, paintSibling *api.LineItem
	var inlinePaint float64
	annotatePaint := false
	if tot.gallons > 0 {
		label := tot.product
		if label == "" {
			label = "Paint: " + surfaceTitle(u.surface)
		}
		switch cfg.PaintPlacement {
		case api.PlacementSubline:
			paintChild = &api.LineItem{
				ID:          id + "-paint",
				Description: label,
				Quantity:    tot.gallons,
				Unit:        "gal",
				Rate:        tot.paintRate,
				Amount:      tot.paintCost,
				Type:        api.ItemPaint,
				GroupTitle:  g.title,
			}
		case api.PlacementSeparateArea:
			acc.deferPaint(deferredLine{
				desc: label, qty: tot.gallons, unit: "gal",
				rate: tot.paintRate, amount: tot.paintCost,
			})
		default: // inline
			inlinePaint = tot.paintCost
			annotatePaint = true
		}
	}

	// Step D: incidental material strategy and placement.
	var supplyChild, supplySibling *api.LineItem
	var inlineSupplies, hiddenFold float64
	switch cfg.MaterialStrategy {
	case api.MaterialHidden:
		hiddenFold = tot.supplies
	case api.MaterialCombinedSetup:
		acc.setupTotal += tot.supplies
	case api.MaterialCombinedSection:
		if tot.supplies > 0 {
			acc.sectionLines = append(acc.sectionLines, deferredLine{
				desc: "Materials: " + desc, amount: tot.supplies,
			})
		}
	case api.MaterialAllowance:
		// Itemized incidentals are replaced by the flat allowance section.
	default: // itemized_per_task
		if tot.supplies > 0 {
			label := "Paint & Supplies: " + surfaceTitle(u.surface)
			if u.named {
				label = "Materials: " + u.name
			}
			line := api.LineItem{
				ID:          id + "-mat",
				Description: label,
				Amount:      tot.supplies,
				Type:        api.ItemMaterial,
				GroupTitle:  g.title,
			}
			switch cfg.MaterialPlacement {
			case api.PlacementSubline:
				supplyChild = &line
			case api.PlacementSeparateArea:
				acc.deferMaterial(deferredLine{desc: label, amount: tot.supplies})
			default: // inline
				if cfg.ItemComposition == api.CompositionBundled {
					inlineSupplies = tot.supplies
				} else {
					supplySibling = &line
				}
			}
		}
	}

	// Separated composition keeps labor lines clean: inline paint lands on the
	// material line, or becomes its own paint line when there is none.
	if cfg.ItemComposition == api.CompositionSeparated && inlinePaint > 0 {
		if supplySibling != nil {
			supplySibling.Amount += inlinePaint
			supplySibling.Description = "Paint & Supplies: " + surfaceTitle(u.surface)
		} else {
			label := tot.product
			if label == "" {
				label = "Paint: " + surfaceTitle(u.surface)
			}
			paintSibling = &api.LineItem{
				ID:          id + "-paint",
				Description: label,
				Quantity:    tot.gallons,
				Unit:        "gal",
				Rate:        tot.paintRate,
				Amount:      inlinePaint,
				Type:        api.ItemPaint,
				GroupTitle:  g.title,
			}
		}
		inlinePaint = 0
	}

	main := api.LineItem{
		ID:          id,
		Description: desc,
		Type:        mainType(u, cfg),
		GroupTitle:  g.title,
	}
	amount := tot.labor + inlinePaint + inlineSupplies

	if u.named {
		main.Quantity = tot.quantity
		main.Unit = tot.unit
		main.Rate = u.tasks[0].Rate
		main.Amount = amount
	} else {
		qty := tot.quantity
		if !tot.unitOK {
			qty = 0
		}
		priceByModel(&main, amount, tot.hours, qty, tot.unit, cfg.LaborPricingModel)
	}

	if annotatePaint {
		main.Description = annotate(main.Description, tot, cfg)
	}

	// Explicit fold of hidden material into the line just built.
	if hiddenFold > 0 {
		main.Amount += hiddenFold
		if main.Quantity > 0 {
			main.Rate = main.Amount / main.Quantity
		}
	}

	if paintChild != nil {
		main.SubItems = append(main.SubItems, *paintChild)
	}
	if supplyChild != nil {
		main.SubItems = append(main.SubItems, *supplyChild)
	}

	lines := []api.LineItem{main}
	if paintSibling != nil {
		lines = append(lines, *paintSibling)
	}
	if supplySibling != nil {
		lines = append(lines, *supplySibling)
	}
	return lines
}

func mainType(u workUnit, cfg api.QuoteConfiguration) api.LineItemType {
	if u.phase == api.PhasePrep {
		return api.ItemPrep
	}
	if cfg.ItemComposition == api.CompositionSeparated {
		return api.ItemLabor
	}
	return api.ItemCombined
}

// priceByModel derives quantity, unit, and rate from the labor pricing model.
// When the model's preferred unit is unavailable (no hours, unit mismatch) it
// quietly falls back to a single lot priced at the full amount.
func priceByModel(li *api.LineItem, amount, hours, qty float64, unit string, model api.LaborPricingModel) {
	li.Amount = amount
	switch model {
	case api.PricingHourly:
		h := math.Ceil(hours)
		if h > 0 {
			li.Quantity, li.Unit, li.Rate = h, "hours", amount/h
			return
		}
	case api.PricingUnitSqft:
		if unit == "sqft" && qty > 0 {
			li.Quantity, li.Unit, li.Rate = qty, "sqft", amount/qty
			return
		}
	case api.PricingDayRate:
		days := math.Ceil(hours / hoursPerWorkDay)
		if days > 0 {
			li.Quantity, li.Unit, li.Rate = days, "days", amount/days
			return
		}
	}
	li.Quantity, li.Unit, li.Rate = 1, "lot", amount
}

// annotate appends paint product and coat count to an inline-paint line.
func annotate(desc string, tot unitTotals, cfg api.QuoteConfiguration) string {
	parts := make([]string, 0, 2)
	if tot.product != "" {
		parts = append(parts, tot.product)
	}
	if cfg.ShowCoatCounts && tot.coats > 0 {
		word := "coats"
		if tot.coats == 1 {
			word = "coat"
		}
		parts = append(parts, fmt.Sprintf("%d %s", tot.coats, word))
	}
	if len(parts) == 0 {
		return desc
	}
	return fmt.Sprintf("%s (%s)", desc, strings.Join(parts, ", "))
}
