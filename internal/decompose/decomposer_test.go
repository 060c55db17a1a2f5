package decompose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choozin/paintmatepro/pkg/api"
)

func baseProject() api.Project {
	return api.Project{
		ID:   "prj-1",
		Name: "Smith Residence",
		Supply: api.PaintConfig{
			CoveragePerGallon: 350,
			PricePerGallon:    45,
			WallCoats:         2,
			BillablePaint:     true,
		},
		Labor: api.LaborConfig{
			ProductionRate: 150,
			HourlyWage:     30,
			LaborRate:      1.5,
		},
	}
}

func baseRoom() api.Room {
	return api.Room{ID: "room-1", Name: "Living Room", Length: 10, Width: 10, Height: 8}
}

func findTask(t *testing.T, tasks []api.AtomicTask, surface api.SurfaceType, phase api.Phase) api.AtomicTask {
	t.Helper()
	for _, task := range tasks {
		if task.SurfaceType == surface && task.Phase == phase && !task.IsGlobal() {
			return task
		}
	}
	t.Fatalf("no task for %s/%s", surface, phase)
	return api.AtomicTask{}
}

func TestDecompose_SingleRoomExample(t *testing.T) {
	res := Decompose(baseProject(), []api.Room{baseRoom()})

	// wall prep, wall finish, global setup, global cleanup
	require.Len(t, res.Tasks, 4)

	prep := findTask(t, res.Tasks, api.SurfaceWall, api.PhasePrep)
	assert.InDelta(t, 320*0.20, prep.Cost, 1e-9, "wall prep at 0.20/sqft")
	assert.InDelta(t, 320, prep.Quantity, 1e-9)

	finish := findTask(t, res.Tasks, api.SurfaceWall, api.PhaseFinish)
	assert.InDelta(t, 320, finish.Quantity, 1e-9, "wall area = 2x(10+10)x8")
	assert.InDelta(t, 2, finish.Gallons, 1e-9, "ceil(320x2/350) gallons")
	assert.InDelta(t, 90, finish.MaterialCost, 1e-9, "2 gal x $45")
	assert.InDelta(t, 320*1.5, finish.LaborCost, 1e-9)
	assert.InDelta(t, 320.0/150*2, finish.Hours, 1e-9)
	assert.Equal(t, 2, finish.CoatCount)

	assert.InDelta(t, 64+480+90+250, res.TotalCost, 1e-9)
}

func TestDecompose_CostInvariant(t *testing.T) {
	project := baseProject()
	project.Supply.IncludeCeiling = true
	project.Supply.IncludeTrim = true
	project.Supply.IncludePrimer = true
	project.Supply.RemoveWallpaper = true
	project.Supply.SuppliesRate = 0.05

	room := baseRoom()
	room.PrepTasks = []api.PrepTask{{Name: "Patch drywall", Hours: 2}}
	room.MiscItems = []api.MiscMeasurement{{Name: "Closet Door", Quantity: 2, Unit: "each", Rate: 35, MaterialRate: 5}}

	res := Decompose(project, []api.Room{room})
	for _, task := range res.Tasks {
		assert.InDelta(t, task.LaborCost+task.MaterialCost, task.Cost, 1e-9, task.ID)
		assert.False(t, math.IsNaN(task.Cost) || math.IsInf(task.Cost, 0), task.ID)
		assert.GreaterOrEqual(t, task.Hours, 0.0, task.ID)
		assert.GreaterOrEqual(t, task.LaborCost, 0.0, task.ID)
		assert.GreaterOrEqual(t, task.MaterialCost, 0.0, task.ID)
	}
}

func TestDecompose_GlobalTasksExactlyOnceAndLast(t *testing.T) {
	rooms := []api.Room{baseRoom(), {ID: "room-2", Length: 12, Width: 10, Height: 9}}
	res := Decompose(baseProject(), rooms)

	n := len(res.Tasks)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, "global_setup", res.Tasks[n-2].ID)
	assert.Equal(t, "global_cleanup", res.Tasks[n-1].ID)
	assert.InDelta(t, 150, res.Tasks[n-2].Cost, 1e-9)
	assert.InDelta(t, 100, res.Tasks[n-1].Cost, 1e-9)

	count := 0
	for _, task := range res.Tasks {
		if task.IsGlobal() {
			count++
		}
	}
	assert.Equal(t, 2, count, "exactly two global tasks regardless of room count")
}

func TestDecompose_StableOrder(t *testing.T) {
	rooms := []api.Room{
		{ID: "b", Length: 8, Width: 8, Height: 8},
		{ID: "a", Length: 9, Width: 9, Height: 8},
	}
	res := Decompose(baseProject(), rooms)

	assert.Equal(t, "b", res.Tasks[0].RoomID, "rooms keep input order")
	assert.Equal(t, "a", res.Tasks[2].RoomID)
}

func TestDecompose_ClampsMalformedInput(t *testing.T) {
	project := baseProject()
	project.Labor.LaborRate = math.NaN()
	project.Labor.ProductionRate = -10

	room := baseRoom()
	room.Height = math.Inf(1)

	res := Decompose(project, []api.Room{room})
	for _, task := range res.Tasks {
		assert.False(t, math.IsNaN(task.Cost), task.ID)
		assert.False(t, math.IsInf(task.Cost, 0), task.ID)
		assert.GreaterOrEqual(t, task.Cost, 0.0, task.ID)
	}
}

func TestDecompose_BillablePaintOff(t *testing.T) {
	project := baseProject()
	project.Supply.BillablePaint = false
	project.Supply.ProductName = "Budget Matte"

	res := Decompose(project, []api.Room{baseRoom()})
	finish := findTask(t, res.Tasks, api.SurfaceWall, api.PhaseFinish)

	assert.InDelta(t, 2, finish.Gallons, 1e-9, "gallons stay for display")
	assert.Equal(t, "Budget Matte", finish.ProductName)
	assert.Zero(t, finish.MaterialCost, "no paint charge")
	assert.Zero(t, finish.PaintRate)
}

func TestDecompose_CeilingFallsBackToWallSettings(t *testing.T) {
	project := baseProject()
	project.Supply.IncludeCeiling = true

	res := Decompose(project, []api.Room{baseRoom()})
	ceiling := findTask(t, res.Tasks, api.SurfaceCeiling, api.PhaseFinish)

	assert.InDelta(t, 100, ceiling.Quantity, 1e-9, "ceiling area = 10x10")
	assert.Equal(t, 2, ceiling.CoatCount, "falls back to wall coats")
	assert.InDelta(t, 100*1.5*0.8, ceiling.LaborCost, 1e-9, "reduced ceiling labor")
	assert.InDelta(t, 1, ceiling.Gallons, 1e-9, "ceil(100x2/350)")
}

func TestDecompose_RoomOverrides(t *testing.T) {
	project := baseProject()
	on := true
	room := baseRoom()
	room.Paint = &api.PaintOverride{WallCoats: 3, PricePerGallon: 60, IncludeCeiling: &on}

	res := Decompose(project, []api.Room{room})

	finish := findTask(t, res.Tasks, api.SurfaceWall, api.PhaseFinish)
	assert.Equal(t, 3, finish.CoatCount)
	assert.InDelta(t, math.Ceil(320*3.0/350)*60, finish.MaterialCost, 1e-9)

	findTask(t, res.Tasks, api.SurfaceCeiling, api.PhaseFinish)
}

func TestDecompose_WallpaperRemoval(t *testing.T) {
	project := baseProject()
	project.Supply.RemoveWallpaper = true

	res := Decompose(project, []api.Room{baseRoom()})
	removal := findTask(t, res.Tasks, api.SurfaceWallpaper, api.PhasePrep)

	assert.InDelta(t, 320*0.50, removal.LaborCost, 1e-9)
	assert.Zero(t, removal.MaterialCost)
}

func TestDecompose_PrepTaskPricing(t *testing.T) {
	room := baseRoom()
	room.PrepTasks = []api.PrepTask{
		{Name: "Patch ceiling crack", Hours: 3},
		{Name: "Haul debris", Cost: 75},
	}

	res := Decompose(baseProject(), []api.Room{room})

	var patch, haul api.AtomicTask
	for _, task := range res.Tasks {
		switch task.Name {
		case "Patch ceiling crack":
			patch = task
		case "Haul debris":
			haul = task
		}
	}
	assert.InDelta(t, 3*30, patch.Cost, 1e-9, "hours x wage")
	assert.InDelta(t, 75, haul.Cost, 1e-9, "flat cost wins")
}

func TestDecompose_MiscItemCarriesStructuralIdentity(t *testing.T) {
	room := baseRoom()
	room.MiscItems = []api.MiscMeasurement{{
		Name: "Door Trim", Quantity: 17, Unit: "linft", Rate: 2.5,
		PaintProductID: "trim-semigloss", Width: 0.5, Coverage: 300,
	}}

	res := Decompose(baseProject(), []api.Room{room})

	var misc api.AtomicTask
	for _, task := range res.Tasks {
		if task.Name == "Door Trim" {
			misc = task
		}
	}
	require.NotEmpty(t, misc.ID)
	assert.InDelta(t, 17*2.5, misc.LaborCost, 1e-9)
	assert.Equal(t, "trim-semigloss", misc.PaintProductID)
	assert.InDelta(t, 0.5, misc.Width, 1e-9)
	assert.InDelta(t, 300, misc.Coverage, 1e-9)
}
