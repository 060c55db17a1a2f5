// Package aggregate is the Line-Item Aggregator: it groups atomic tasks into
// the hierarchical, human-presentable quote tree according to the quote
// configuration. Every transform here is presentation-only; unless a policy
// explicitly prices outside the task ledger (material allowance), the summed
// output equals the summed task costs.
package aggregate

import (
	"github.com/choozin/paintmatepro/pkg/api"
)

// Engine aggregates tasks into line items. It is stateless across calls and
// safe for concurrent use; the catalog lookup map is built once and only read.
type Engine struct {
	catalog map[string]api.CatalogItem
}

// NewEngine creates an aggregation engine over an optional product catalog.
func NewEngine(catalog []api.CatalogItem) *Engine {
	lookup := make(map[string]api.CatalogItem, len(catalog))
	for _, item := range catalog {
		lookup[item.ID] = item
	}
	return &Engine{catalog: lookup}
}

// Aggregate is the package-level convenience entry point.
func Aggregate(tasks []api.AtomicTask, cfg api.QuoteConfiguration, catalog []api.CatalogItem) []api.LineItem {
	return NewEngine(catalog).Aggregate(tasks, cfg)
}

// Aggregate builds the quote tree: one header per group, line items per work
// unit, optional sub-items, and deferred project-wide sections flushed at the
// end. Identical inputs always produce structurally identical output.
func (e *Engine) Aggregate(tasks []api.AtomicTask, cfg api.QuoteConfiguration) []api.LineItem {
	groups := partition(tasks, cfg.Organization)
	acc := &accumulator{}
	items := make([]api.LineItem, 0, len(groups)*4)

	for _, g := range groups {
		units := buildUnits(g.tasks, cfg)

		groupLines := make([]api.LineItem, 0, len(units))
		for _, u := range units {
			groupLines = append(groupLines, e.unitLines(g, u, cfg, acc)...)
		}
		if len(groupLines) == 0 {
			continue
		}

		items = append(items, headerFor("hdr-"+g.key.value, g.title, groupLines))
		items = append(items, groupLines...)
	}

	items = append(items, e.flush(acc, cfg)...)
	scrubDisplay(items, cfg)
	return items
}

// headerFor builds a section header whose amount is the rolled-up total of
// the section's lines (sub-items included).
func headerFor(id, title string, lines []api.LineItem) api.LineItem {
	var total float64
	for _, li := range lines {
		total += li.SubtreeAmount()
	}
	return api.LineItem{
		ID:          id,
		Description: title,
		Amount:      total,
		Type:        api.ItemHeader,
		GroupTitle:  title,
	}
}

// scrubDisplay applies the cosmetic display toggles. It touches only the
// rate/unit presentation fields, never amounts, so totals are unaffected.
func scrubDisplay(items []api.LineItem, cfg api.QuoteConfiguration) {
	for i := range items {
		if !cfg.ShowRates {
			items[i].Rate = 0
		}
		if !cfg.ShowUnits {
			items[i].Unit = ""
		}
		scrubDisplay(items[i].SubItems, cfg)
	}
}
