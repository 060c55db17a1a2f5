// Package api defines the shared contracts of the quote generation engine:
// project inputs, atomic tasks, quote configuration, and line-item output.
// These types are intentionally dependency-free so every layer (engine, CLI,
// HTTP server, persistence collaborators) can share them.
package api

// GlobalRoomID marks tasks that represent project-wide overhead rather than
// work inside a specific room (mobilization, cleanup).
const GlobalRoomID = "global"

// SurfaceType identifies the surface a task applies to.
type SurfaceType string

const (
	SurfaceWall      SurfaceType = "wall"
	SurfaceCeiling   SurfaceType = "ceiling"
	SurfaceTrim      SurfaceType = "trim"
	SurfaceDoor      SurfaceType = "door"
	SurfaceWindow    SurfaceType = "window"
	SurfaceCabinet   SurfaceType = "cabinet"
	SurfaceWallpaper SurfaceType = "wallpaper"
	SurfaceOther     SurfaceType = "other"
)

// Phase identifies the stage of work a task belongs to.
type Phase string

const (
	PhasePrep    Phase = "prep"
	PhasePrime   Phase = "prime"
	PhaseFinish  Phase = "finish"
	PhaseCleanup Phase = "cleanup"
)

// AtomicTask is the smallest priced unit of work: one surface in one phase in
// one room. Tasks are created once by the decomposer and never mutated; they
// are the ledger entries downstream aggregation must conserve.
type AtomicTask struct {
	// Identity
	ID       string `json:"id"`
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name,omitempty"`
	Floor    string `json:"floor,omitempty"`

	// Name labels ad hoc work (prep tasks, misc items, global tasks).
	// Standard surface tasks leave it empty and are described by
	// surface x phase instead.
	Name string `json:"name,omitempty"`

	SurfaceType SurfaceType `json:"surface_type"`
	Phase       Phase       `json:"phase"`

	// Money. Cost == LaborCost + MaterialCost always.
	LaborCost    float64 `json:"labor_cost"`
	MaterialCost float64 `json:"material_cost"`
	Cost         float64 `json:"cost"`

	Hours    float64 `json:"hours"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`

	// Paint detail. Gallons stays populated even when the paint is not
	// billable so displays can still show product and quantity; PaintRate is
	// zero in that case and the paint contributes nothing to MaterialCost.
	ProductName   string  `json:"product_name,omitempty"`
	CoatCount     int     `json:"coat_count,omitempty"`
	Gallons       float64 `json:"gallons,omitempty"`
	PaintRate     float64 `json:"paint_rate,omitempty"`
	PaintBillable bool    `json:"paint_billable,omitempty"`

	// Structural identity of recurring misc work. Two misc tasks merge on
	// presentation only when all of these match.
	Rate           float64 `json:"rate,omitempty"`
	PaintProductID string  `json:"paint_product_id,omitempty"`
	Width          float64 `json:"width,omitempty"`
	Coverage       float64 `json:"coverage,omitempty"`
}

// PaintCost returns the paint portion of MaterialCost.
func (t AtomicTask) PaintCost() float64 {
	return t.Gallons * t.PaintRate
}

// IsGlobal reports whether the task is project-wide overhead.
func (t AtomicTask) IsGlobal() bool {
	return t.RoomID == GlobalRoomID
}

// SumCost totals the authoritative cost of a task list.
func SumCost(tasks []AtomicTask) float64 {
	var total float64
	for _, t := range tasks {
		total += t.Cost
	}
	return total
}
