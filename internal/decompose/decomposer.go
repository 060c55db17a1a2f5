// Package decompose converts a project's rooms and business settings into the
// flat list of atomic tasks that is the single source of cost truth. Nothing
// downstream may alter these amounts, only where they display.
package decompose

import (
	"fmt"
	"math"

	"github.com/choozin/paintmatepro/pkg/api"
)

// Result contains the decomposed task list plus statistics.
type Result struct {
	Tasks []api.AtomicTask `json:"tasks"`

	// Statistics
	RoomsProcessed int     `json:"rooms_processed"`
	TasksCreated   int     `json:"tasks_created"`
	TotalCost      float64 `json:"total_cost"`
	TotalHours     float64 `json:"total_hours"`
}

// Decompose emits one atomic task per surface x phase per room, in stable
// order: rooms in input order, a fixed surface order within each room, and the
// two global overhead tasks last. Malformed numeric inputs (negative, NaN,
// infinite) are clamped to zero before any arithmetic, so every output field
// is finite and non-negative.
func Decompose(project api.Project, rooms []api.Room) *Result {
	res := &Result{Tasks: make([]api.AtomicTask, 0, len(rooms)*4+2)}

	for _, room := range rooms {
		res.RoomsProcessed++
		res.add(roomTasks(project, room)...)
	}

	for i, item := range project.MiscItems {
		res.add(miscTask(api.GlobalRoomID, "", "", i, item))
	}

	res.add(
		api.AtomicTask{
			ID:          "global_setup",
			RoomID:      api.GlobalRoomID,
			Name:        "Job Site Setup & Protection",
			SurfaceType: api.SurfaceOther,
			Phase:       api.PhasePrep,
			LaborCost:   globalSetupCost,
			Cost:        globalSetupCost,
			Quantity:    1,
			Unit:        "each",
			Rate:        globalSetupCost,
		},
		api.AtomicTask{
			ID:          "global_cleanup",
			RoomID:      api.GlobalRoomID,
			Name:        "Final Cleanup",
			SurfaceType: api.SurfaceOther,
			Phase:       api.PhaseCleanup,
			LaborCost:   globalCleanupCost,
			Cost:        globalCleanupCost,
			Quantity:    1,
			Unit:        "each",
			Rate:        globalCleanupCost,
		},
	)

	return res
}

func (r *Result) add(tasks ...api.AtomicTask) {
	for _, t := range tasks {
		r.Tasks = append(r.Tasks, t)
		r.TasksCreated++
		r.TotalCost += t.Cost
		r.TotalHours += t.Hours
	}
}

func roomTasks(project api.Project, room api.Room) []api.AtomicTask {
	supply := effectiveSupply(project.Supply, room.Paint)
	labor := project.Labor

	length := clamp(room.Length)
	width := clamp(room.Width)
	height := clamp(room.Height)

	wallArea := 2 * (length + width) * height
	ceilingArea := length * width
	perimeter := 2 * (length + width)

	difficulty := clamp(labor.DifficultyFactor)
	if difficulty == 0 {
		difficulty = 1
	}
	rate := effectiveLaborRate(labor)
	wage := clamp(labor.HourlyWage)
	prodRate := clamp(labor.ProductionRate)

	wallCoats := supply.WallCoats
	if wallCoats < 1 {
		wallCoats = 1
	}
	coverage := clamp(supply.CoveragePerGallon)
	price := clamp(supply.PricePerGallon)

	tasks := make([]api.AtomicTask, 0, 8)

	if supply.RemoveWallpaper {
		tasks = append(tasks, task(room, api.SurfaceWallpaper, api.PhasePrep, taskSpec{
			labor:    wallArea * wallpaperRemovalRatePerSqft * difficulty,
			quantity: wallArea,
			unit:     "sqft",
		}))
	}

	// Standard wall prep. Incidental supplies (tape, plastic, sundries) ride
	// on this task when a supplies rate is configured.
	tasks = append(tasks, task(room, api.SurfaceWall, api.PhasePrep, taskSpec{
		labor:    wallArea * wallPrepRatePerSqft * difficulty,
		material: wallArea * clamp(supply.SuppliesRate),
		quantity: wallArea,
		unit:     "sqft",
	}))

	if supply.IncludePrimer {
		primerPrice := clamp(supply.PrimerPricePerGallon)
		if primerPrice == 0 {
			primerPrice = price
		}
		gallons := gallonsFor(wallArea, 1, coverage)
		tasks = append(tasks, paintTask(room, api.SurfaceWall, api.PhasePrime, supply.BillablePaint, taskSpec{
			labor:    wallArea * rate * primerLaborFactor * difficulty,
			hours:    hoursFor(wallArea, 1, prodRate),
			quantity: wallArea,
			unit:     "sqft",
			gallons:  gallons,
			rate:     primerPrice,
			product:  "Primer",
			coats:    1,
		}))
	}

	tasks = append(tasks, paintTask(room, api.SurfaceWall, api.PhaseFinish, supply.BillablePaint, taskSpec{
		labor:    wallArea * rate * difficulty,
		hours:    hoursFor(wallArea, wallCoats, prodRate),
		quantity: wallArea,
		unit:     "sqft",
		gallons:  gallonsFor(wallArea, wallCoats, coverage),
		rate:     price,
		product:  supply.ProductName,
		coats:    wallCoats,
	}))

	if supply.IncludeCeiling {
		ceilCoats := supply.CeilingCoats
		if ceilCoats < 1 {
			ceilCoats = wallCoats
		}
		ceilCoverage := clamp(supply.CeilingCoverage)
		if ceilCoverage == 0 {
			ceilCoverage = coverage
		}
		tasks = append(tasks, paintTask(room, api.SurfaceCeiling, api.PhaseFinish, supply.BillablePaint, taskSpec{
			labor:    ceilingArea * rate * ceilingLaborFactor * difficulty,
			hours:    hoursFor(ceilingArea, ceilCoats, prodRate),
			quantity: ceilingArea,
			unit:     "sqft",
			gallons:  gallonsFor(ceilingArea, ceilCoats, ceilCoverage),
			rate:     price,
			product:  supply.ProductName,
			coats:    ceilCoats,
		}))
	}

	if supply.IncludeTrim {
		trimCoverage := clamp(supply.TrimCoverage)
		trimPrice := clamp(supply.TrimPricePerGallon)
		if trimPrice == 0 {
			trimPrice = price
		}
		var gallons float64
		if trimCoverage > 0 {
			gallons = gallonsFor(perimeter, 1, trimCoverage)
		}
		tasks = append(tasks, paintTask(room, api.SurfaceTrim, api.PhaseFinish, supply.BillablePaint, taskSpec{
			labor:    perimeter * trimRatePerLinearFt * difficulty,
			hours:    hoursFor(perimeter, 1, prodRate),
			quantity: perimeter,
			unit:     "linft",
			gallons:  gallons,
			rate:     trimPrice,
			product:  supply.TrimProductName,
			coats:    1,
		}))
	}

	for i, prep := range room.PrepTasks {
		cost := clamp(prep.Cost)
		hours := clamp(prep.Hours)
		if cost == 0 {
			cost = hours * wage * difficulty
		}
		tasks = append(tasks, api.AtomicTask{
			ID:          fmt.Sprintf("%s-prep-%d", room.ID, i),
			RoomID:      room.ID,
			RoomName:    room.Name,
			Floor:       room.Floor,
			Name:        prep.Name,
			SurfaceType: api.SurfaceOther,
			Phase:       api.PhasePrep,
			LaborCost:   cost,
			Cost:        cost,
			Hours:       hours,
			Quantity:    1,
			Unit:        "each",
			Rate:        cost,
		})
	}

	for i, item := range room.MiscItems {
		tasks = append(tasks, miscTask(room.ID, room.Name, room.Floor, i, item))
	}

	return tasks
}

// taskSpec carries the computed pieces of one task.
type taskSpec struct {
	labor    float64
	material float64
	hours    float64
	quantity float64
	unit     string
	gallons  float64
	rate     float64
	product  string
	coats    int
}

func task(room api.Room, surface api.SurfaceType, phase api.Phase, spec taskSpec) api.AtomicTask {
	labor := clamp(spec.labor)
	material := clamp(spec.material)
	return api.AtomicTask{
		ID:           fmt.Sprintf("%s-%s-%s", room.ID, surface, phase),
		RoomID:       room.ID,
		RoomName:     room.Name,
		Floor:        room.Floor,
		SurfaceType:  surface,
		Phase:        phase,
		LaborCost:    labor,
		MaterialCost: material,
		Cost:         labor + material,
		Hours:        clamp(spec.hours),
		Quantity:     clamp(spec.quantity),
		Unit:         spec.unit,
	}
}

func paintTask(room api.Room, surface api.SurfaceType, phase api.Phase, billable bool, spec taskSpec) api.AtomicTask {
	paintRate := spec.rate
	if !billable {
		// Paint becomes informational: gallons and product stay visible, the
		// customer-facing contribution is zero.
		paintRate = 0
	}
	spec.material += spec.gallons * paintRate
	t := task(room, surface, phase, spec)
	t.Gallons = spec.gallons
	t.PaintRate = paintRate
	t.PaintBillable = billable
	t.ProductName = spec.product
	t.CoatCount = spec.coats
	return t
}

func miscTask(roomID, roomName, floor string, index int, item api.MiscMeasurement) api.AtomicTask {
	qty := clamp(item.Quantity)
	rate := clamp(item.Rate)
	labor := qty * rate
	material := qty * clamp(item.MaterialRate)
	return api.AtomicTask{
		ID:             fmt.Sprintf("%s-misc-%d", roomID, index),
		RoomID:         roomID,
		RoomName:       roomName,
		Floor:          floor,
		Name:           item.Name,
		SurfaceType:    api.SurfaceOther,
		Phase:          api.PhaseFinish,
		LaborCost:      labor,
		MaterialCost:   material,
		Cost:           labor + material,
		Quantity:       qty,
		Unit:           item.Unit,
		Rate:           rate,
		PaintProductID: item.PaintProductID,
		Width:          clamp(item.Width),
		Coverage:       clamp(item.Coverage),
		PaintBillable:  true,
	}
}

func effectiveSupply(base api.PaintConfig, ov *api.PaintOverride) api.PaintConfig {
	if ov == nil {
		return base
	}
	out := base
	if ov.ProductName != "" {
		out.ProductName = ov.ProductName
	}
	if ov.PricePerGallon > 0 {
		out.PricePerGallon = ov.PricePerGallon
	}
	if ov.CoveragePerGallon > 0 {
		out.CoveragePerGallon = ov.CoveragePerGallon
	}
	if ov.WallCoats > 0 {
		out.WallCoats = ov.WallCoats
	}
	if ov.CeilingCoats > 0 {
		out.CeilingCoats = ov.CeilingCoats
	}
	if ov.IncludeCeiling != nil {
		out.IncludeCeiling = *ov.IncludeCeiling
	}
	if ov.IncludeTrim != nil {
		out.IncludeTrim = *ov.IncludeTrim
	}
	if ov.IncludePrimer != nil {
		out.IncludePrimer = *ov.IncludePrimer
	}
	return out
}

// effectiveLaborRate returns $/sqft, deriving from wage and production rate
// when no explicit rate is configured.
func effectiveLaborRate(l api.LaborConfig) float64 {
	rate := clamp(l.LaborRate)
	if rate > 0 {
		return rate
	}
	prod := clamp(l.ProductionRate)
	if prod > 0 {
		return clamp(l.HourlyWage) / prod
	}
	return 0
}

func hoursFor(area float64, coats int, productionRate float64) float64 {
	if productionRate <= 0 {
		return 0
	}
	return area / productionRate * float64(coats)
}

func gallonsFor(area float64, coats int, coverage float64) float64 {
	if coverage <= 0 {
		return 0
	}
	return math.Ceil(area * float64(coats) / coverage)
}

// clamp coerces malformed numeric input (NaN, infinite, negative) to zero.
func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
