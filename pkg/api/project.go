package api

// Project is the job being quoted: business settings plus any project-level
// misc work. Room geometry lives in the Room list passed alongside it.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Supply PaintConfig `json:"supply_config"`
	Labor  LaborConfig `json:"labor_config"`

	// MiscItems are billable work items attached to the project as a whole
	// rather than to a room (e.g. "Move furniture").
	MiscItems []MiscMeasurement `json:"misc_items,omitempty"`
}

// PaintConfig holds project-level paint and supply settings.
type PaintConfig struct {
	ProductName       string  `json:"product_name,omitempty"`
	CoveragePerGallon float64 `json:"coverage_per_gallon"`
	PricePerGallon    float64 `json:"price_per_gallon"`
	WallCoats         int     `json:"wall_coats"`

	// Ceiling-specific values; zero falls back to the wall values.
	CeilingCoats    int     `json:"ceiling_coats,omitempty"`
	CeilingCoverage float64 `json:"ceiling_coverage,omitempty"`

	// Trim paint; zero coverage means trim is labor-only (no gallons).
	TrimProductName    string  `json:"trim_product_name,omitempty"`
	TrimPricePerGallon float64 `json:"trim_price_per_gallon,omitempty"`
	TrimCoverage       float64 `json:"trim_coverage,omitempty"`

	PrimerPricePerGallon float64 `json:"primer_price_per_gallon,omitempty"`

	// Inclusion toggles.
	IncludeCeiling  bool `json:"include_ceiling"`
	IncludeTrim     bool `json:"include_trim"`
	IncludePrimer   bool `json:"include_primer"`
	RemoveWallpaper bool `json:"remove_wallpaper"`

	// BillablePaint false keeps paint on the quote as information only:
	// gallons and product still display, the customer price contribution is 0.
	BillablePaint bool `json:"billable_paint"`

	// SuppliesRate adds incidental materials (tape, plastic, sundries) to room
	// prep at $/sqft of wall area.
	SuppliesRate float64 `json:"supplies_rate,omitempty"`
}

// LaborConfig holds project-level labor settings.
type LaborConfig struct {
	// ProductionRate is paintable area per hour (sqft/hr).
	ProductionRate float64 `json:"production_rate"`
	HourlyWage     float64 `json:"hourly_wage"`

	// LaborRate is $/sqft of finished surface. When zero it is derived from
	// HourlyWage / ProductionRate.
	LaborRate float64 `json:"labor_rate,omitempty"`

	// DifficultyFactor scales labor; zero means 1.0.
	DifficultyFactor float64 `json:"difficulty_factor,omitempty"`
}

// Room is one measured space. Geometry is in feet; the engine treats rooms as
// immutable input.
type Room struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Floor string `json:"floor,omitempty"`

	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Paint overrides the project supply settings for this room only.
	Paint *PaintOverride `json:"paint,omitempty"`

	PrepTasks []PrepTask        `json:"prep_tasks,omitempty"`
	MiscItems []MiscMeasurement `json:"misc_items,omitempty"`
}

// PaintOverride is a partial, per-room override of PaintConfig. Zero-valued
// fields keep the project default; toggle overrides use pointers so "false"
// can be expressed.
type PaintOverride struct {
	ProductName       string  `json:"product_name,omitempty"`
	PricePerGallon    float64 `json:"price_per_gallon,omitempty"`
	CoveragePerGallon float64 `json:"coverage_per_gallon,omitempty"`
	WallCoats         int     `json:"wall_coats,omitempty"`
	CeilingCoats      int     `json:"ceiling_coats,omitempty"`

	IncludeCeiling *bool `json:"include_ceiling,omitempty"`
	IncludeTrim    *bool `json:"include_trim,omitempty"`
	IncludePrimer  *bool `json:"include_primer,omitempty"`
}

// PrepTask is ad hoc preparation work attached to a room. Cost wins when set;
// otherwise Hours is priced at the project hourly wage.
type PrepTask struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours,omitempty"`
	Cost  float64 `json:"cost,omitempty"`
}

// MiscMeasurement is ad hoc billable work not tied to a standard surface:
// doors, fixtures, custom labor. Rate is $/unit of labor; MaterialRate adds
// non-paint material per unit. A PaintProductID plus Width and Coverage lets
// the aggregator price paint for the item from the catalog.
type MiscMeasurement struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	Rate           float64 `json:"rate"`
	MaterialRate   float64 `json:"material_rate,omitempty"`
	PaintProductID string  `json:"paint_product_id,omitempty"`
	Width          float64 `json:"width,omitempty"`
	Coverage       float64 `json:"coverage,omitempty"`
}

// CatalogItem is a paint product the aggregator can reference by ID.
type CatalogItem struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku,omitempty"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	CoverageSqft float64 `json:"coverage_sqft,omitempty"`
	Unit         string  `json:"unit,omitempty"`
}
