package api

import (
	qerr "github.com/choozin/paintmatepro/pkg/errors"
)

// Organization is the grouping axis used to cluster tasks into sections.
type Organization string

const (
	OrganizeByRoom    Organization = "room"
	OrganizeBySurface Organization = "surface"
	OrganizeByPhase   Organization = "phase"
	OrganizeByFloor   Organization = "floor"
)

// ItemComposition selects one combined line or distinct labor/material lines
// per unit of work.
type ItemComposition string

const (
	CompositionBundled   ItemComposition = "bundled"
	CompositionSeparated ItemComposition = "separated"
)

// LaborPricingModel selects how a priced line derives quantity, unit, and rate.
type LaborPricingModel string

const (
	PricingHourly   LaborPricingModel = "hourly"
	PricingUnitSqft LaborPricingModel = "unit_sqft"
	PricingDayRate  LaborPricingModel = "day_rate"
	PricingLump     LaborPricingModel = "lump"
)

// Placement selects where a cost displays: inside its owning line, as a
// one-level sub-line, or deferred to a project-wide section.
type Placement string

const (
	PlacementInline       Placement = "inline"
	PlacementSubline      Placement = "subline"
	PlacementSeparateArea Placement = "separate_area"
)

// PrimerStrategy selects whether primer work keeps its own line or merges into
// the finish line of the same surface.
type PrimerStrategy string

const (
	PrimerSeparateLine PrimerStrategy = "separate_line"
	PrimerCombined     PrimerStrategy = "combined"
)

// MaterialStrategy selects how incidental (non-paint) materials are presented.
type MaterialStrategy string

const (
	MaterialItemizedPerTask MaterialStrategy = "itemized_per_task"
	MaterialCombinedSetup   MaterialStrategy = "combined_setup"
	MaterialCombinedSection MaterialStrategy = "combined_section"
	MaterialHidden          MaterialStrategy = "hidden"
	MaterialAllowance       MaterialStrategy = "allowance"
)

// SeparateAreaStrategy selects whether deferred paint and deferred materials
// share one section or get two. Only meaningful when both placements are
// separate_area.
type SeparateAreaStrategy string

const (
	SeparateAreaCombined SeparateAreaStrategy = "combined"
	SeparateAreaSeparate SeparateAreaStrategy = "separate"
)

// QuoteConfiguration is the full set of presentation policy knobs. It is pure
// data: the display toggles are cosmetic and must never change totals.
type QuoteConfiguration struct {
	Organization         Organization         `json:"organization"`
	ItemComposition      ItemComposition      `json:"item_composition"`
	LaborPricingModel    LaborPricingModel    `json:"labor_pricing_model"`
	PaintPlacement       Placement            `json:"paint_placement"`
	MaterialPlacement    Placement            `json:"material_placement"`
	PrimerStrategy       PrimerStrategy       `json:"primer_strategy"`
	MaterialStrategy     MaterialStrategy     `json:"material_strategy"`
	SeparateAreaStrategy SeparateAreaStrategy `json:"separate_area_strategy"`

	// MaterialAllowance is the flat amount billed when MaterialStrategy is
	// allowance.
	MaterialAllowance float64 `json:"material_allowance,omitempty"`

	// Display toggles (cosmetic only).
	ShowCoatCounts  bool `json:"show_coat_counts"`
	ShowUnits       bool `json:"show_units"`
	ShowRates       bool `json:"show_rates"`
	ShowTaxLine     bool `json:"show_tax_line"`
	ShowDisclaimers bool `json:"show_disclaimers"`
}

// DefaultConfiguration returns the configuration the quote wizard starts from.
func DefaultConfiguration() QuoteConfiguration {
	return QuoteConfiguration{
		Organization:         OrganizeByRoom,
		ItemComposition:      CompositionBundled,
		LaborPricingModel:    PricingLump,
		PaintPlacement:       PlacementInline,
		MaterialPlacement:    PlacementInline,
		PrimerStrategy:       PrimerSeparateLine,
		MaterialStrategy:     MaterialItemizedPerTask,
		SeparateAreaStrategy: SeparateAreaCombined,
		ShowCoatCounts:       true,
		ShowUnits:            true,
		ShowRates:            true,
		ShowTaxLine:          true,
	}
}

// Validate fails fast on values outside the closed policy sets. The
// aggregation algorithm itself never validates; callers must reject bad
// configurations at the boundary.
func (c QuoteConfiguration) Validate() error {
	switch c.Organization {
	case OrganizeByRoom, OrganizeBySurface, OrganizeByPhase, OrganizeByFloor:
	default:
		return qerr.NewInvalidConfigError("organization", string(c.Organization))
	}

	switch c.ItemComposition {
	case CompositionBundled, CompositionSeparated:
	default:
		return qerr.NewInvalidConfigError("item_composition", string(c.ItemComposition))
	}

	switch c.LaborPricingModel {
	case PricingHourly, PricingUnitSqft, PricingDayRate:
	case PricingLump:
		// Lump pricing only makes sense when labor and material collapse into
		// one line.
		if c.ItemComposition == CompositionSeparated {
			return qerr.NewInvalidConfigError("labor_pricing_model", "lump (requires bundled composition)")
		}
	default:
		return qerr.NewInvalidConfigError("labor_pricing_model", string(c.LaborPricingModel))
	}

	switch c.PaintPlacement {
	case PlacementInline, PlacementSubline, PlacementSeparateArea:
	default:
		return qerr.NewInvalidConfigError("paint_placement", string(c.PaintPlacement))
	}

	switch c.MaterialPlacement {
	case PlacementInline, PlacementSubline, PlacementSeparateArea:
	default:
		return qerr.NewInvalidConfigError("material_placement", string(c.MaterialPlacement))
	}

	switch c.PrimerStrategy {
	case PrimerSeparateLine, PrimerCombined:
	default:
		return qerr.NewInvalidConfigError("primer_strategy", string(c.PrimerStrategy))
	}

	switch c.MaterialStrategy {
	case MaterialItemizedPerTask, MaterialCombinedSetup, MaterialCombinedSection,
		MaterialHidden, MaterialAllowance:
	default:
		return qerr.NewInvalidConfigError("material_strategy", string(c.MaterialStrategy))
	}

	switch c.SeparateAreaStrategy {
	case SeparateAreaCombined, SeparateAreaSeparate:
	default:
		return qerr.NewInvalidConfigError("separate_area_strategy", string(c.SeparateAreaStrategy))
	}

	return nil
}
