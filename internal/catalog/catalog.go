// Package catalog supplies the paint-product catalog consumed by the
// aggregator. The engine only ever sees []api.CatalogItem; stores exist so
// the CLI and server can load that slice from somewhere real.
package catalog

import (
	"context"

	"github.com/choozin/paintmatepro/pkg/api"
)

// Store provides paint-product lookup.
type Store interface {
	// Product returns one catalog item; ok is false when the ID is unknown.
	Product(ctx context.Context, id string) (api.CatalogItem, bool, error)

	// Products returns the full catalog in a stable order.
	Products(ctx context.Context) ([]api.CatalogItem, error)
}

// MemoryStore is a fixture-backed Store used by tests and as the CLI default
// when no database is configured.
type MemoryStore struct {
	items []api.CatalogItem
	index map[string]int
}

// NewMemoryStore builds a store over a fixed item list.
func NewMemoryStore(items []api.CatalogItem) *MemoryStore {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}
	return &MemoryStore{items: items, index: index}
}

func (s *MemoryStore) Product(_ context.Context, id string) (api.CatalogItem, bool, error) {
	if i, ok := s.index[id]; ok {
		return s.items[i], true, nil
	}
	return api.CatalogItem{}, false, nil
}

func (s *MemoryStore) Products(_ context.Context) ([]api.CatalogItem, error) {
	out := make([]api.CatalogItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// DefaultItems is the starter catalog shipped with the CLI.
func DefaultItems() []api.CatalogItem {
	return []api.CatalogItem{
		{ID: "interior-latex", SKU: "INT-LTX-EG", Name: "Interior Latex Eggshell", UnitPrice: 42, CoverageSqft: 350, Unit: "gal"},
		{ID: "interior-premium", SKU: "INT-PRM-MT", Name: "Premium Interior Matte", UnitPrice: 68, CoverageSqft: 400, Unit: "gal"},
		{ID: "trim-semigloss", SKU: "TRM-SG", Name: "Trim Semi-Gloss Enamel", UnitPrice: 55, CoverageSqft: 300, Unit: "gal"},
		{ID: "ceiling-flat", SKU: "CLG-FLT", Name: "Ceiling Flat White", UnitPrice: 38, CoverageSqft: 380, Unit: "gal"},
		{ID: "primer-multi", SKU: "PRM-MS", Name: "Multi-Surface Primer", UnitPrice: 30, CoverageSqft: 300, Unit: "gal"},
	}
}
