package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choozin/paintmatepro/internal/catalog"
	"github.com/choozin/paintmatepro/internal/decompose"
	"github.com/choozin/paintmatepro/pkg/api"
)

func exampleProject() api.Project {
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

func exampleRoom() api.Room {
	return api.Room{ID: "room-1", Name: "Living Room", Length: 10, Width: 10, Height: 8}
}

// richProject exercises every task kind the decomposer can emit.
func richProject() (api.Project, []api.Room) {
	project := exampleProject()
	project.Supply.IncludeCeiling = true
	project.Supply.IncludeTrim = true
	project.Supply.IncludePrimer = true
	project.Supply.SuppliesRate = 0.05
	project.Supply.ProductName = "Premium Eggshell"
	project.MiscItems = []api.MiscMeasurement{{Name: "Garage Door", Quantity: 1, Unit: "each", Rate: 120}}

	rooms := []api.Room{
		exampleRoom(),
		{
			ID: "room-2", Name: "Bedroom", Floor: "Second Floor",
			Length: 12, Width: 11, Height: 8,
			PrepTasks: []api.PrepTask{{Name: "Patch drywall", Hours: 2}},
			MiscItems: []api.MiscMeasurement{
				{Name: "Closet Door", Quantity: 2, Unit: "each", Rate: 35, MaterialRate: 5},
			},
		},
	}
	return project, rooms
}

func treeTotal(items []api.LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.SubtreeAmount()
	}
	return total
}

func findLine(t *testing.T, items []api.LineItem, desc string) api.LineItem {
	t.Helper()
	for _, li := range items {
		if li.Description == desc {
			return li
		}
	}
	t.Fatalf("no line item %q", desc)
	return api.LineItem{}
}

func hasLine(items []api.LineItem, desc string) bool {
	for _, li := range items {
		if li.Description == desc {
			return true
		}
	}
	return false
}

func headers(items []api.LineItem) []api.LineItem {
	var out []api.LineItem
	for _, li := range items {
		if li.Type == api.ItemHeader {
			out = append(out, li)
		}
	}
	return out
}

func TestAggregate_SingleRoomSqftExample(t *testing.T) {
	res := decompose.Decompose(exampleProject(), []api.Room{exampleRoom()})

	cfg := api.DefaultConfiguration()
	cfg.LaborPricingModel = api.PricingUnitSqft

	items := Aggregate(res.Tasks, cfg, nil)

	require.NotEmpty(t, items)
	assert.Equal(t, api.ItemHeader, items[0].Type)
	assert.Equal(t, "Living Room", items[0].Description)
	assert.InDelta(t, 634, items[0].Amount, 1e-9, "prep 64 + walls 570")

	walls := findLine(t, items, "Paint Walls (2 coats)")
	assert.InDelta(t, 320, walls.Quantity, 1e-9)
	assert.Equal(t, "sqft", walls.Unit)
	assert.InDelta(t, 570, walls.Amount, 1e-9, "480 labor + 90 paint")
	assert.InDelta(t, 570.0/320, walls.Rate, 1e-9)

	prep := findLine(t, items, "Surface Preparation")
	assert.Equal(t, api.ItemPrep, prep.Type)
	assert.InDelta(t, 64, prep.Amount, 1e-9)

	hdrs := headers(items)
	require.Len(t, hdrs, 2)
	assert.Equal(t, "Project General", hdrs[1].Description)
	assert.InDelta(t, 250, hdrs[1].Amount, 1e-9)

	setup := findLine(t, items, "Job Site Setup & Protection")
	assert.InDelta(t, 150, setup.Amount, 1e-9)
	assert.InDelta(t, 1, setup.Quantity, 1e-9)

	assert.InDelta(t, res.TotalCost, treeTotal(items), 1e-9)
}

func TestAggregate_TotalMatchesTaskLedger(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)
	want := api.SumCost(res.Tasks)

	cfgs := []api.QuoteConfiguration{
		api.DefaultConfiguration(),
		func() api.QuoteConfiguration {
			c := api.DefaultConfiguration()
			c.Organization = api.OrganizeBySurface
			c.PaintPlacement = api.PlacementSubline
			c.MaterialPlacement = api.PlacementSubline
			return c
		}(),
		func() api.QuoteConfiguration {
			c := api.DefaultConfiguration()
			c.Organization = api.OrganizeByPhase
			c.PaintPlacement = api.PlacementSeparateArea
			c.MaterialPlacement = api.PlacementSeparateArea
			c.SeparateAreaStrategy = api.SeparateAreaSeparate
			return c
		}(),
		func() api.QuoteConfiguration {
			c := api.DefaultConfiguration()
			c.Organization = api.OrganizeByFloor
			c.ItemComposition = api.CompositionSeparated
			c.LaborPricingModel = api.PricingHourly
			c.MaterialStrategy = api.MaterialCombinedSetup
			return c
		}(),
		func() api.QuoteConfiguration {
			c := api.DefaultConfiguration()
			c.LaborPricingModel = api.PricingDayRate
			c.MaterialStrategy = api.MaterialCombinedSection
			c.PrimerStrategy = api.PrimerCombined
			return c
		}(),
		func() api.QuoteConfiguration {
			c := api.DefaultConfiguration()
			c.MaterialStrategy = api.MaterialHidden
			c.ShowRates = false
			c.ShowUnits = false
			return c
		}(),
	}

	for i, cfg := range cfgs {
		items := Aggregate(res.Tasks, cfg, nil)
		assert.InDeltaf(t, want, treeTotal(items), 1e-6, "config %d changed the total", i)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)
	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSeparateArea
	cfg.MaterialPlacement = api.PlacementSeparateArea

	first := Aggregate(res.Tasks, cfg, catalog.DefaultItems())
	second := Aggregate(res.Tasks, cfg, catalog.DefaultItems())
	require.Equal(t, first, second)
}

func TestAggregate_MiscMergeByStructuralIdentity(t *testing.T) {
	room := exampleRoom()
	room.MiscItems = []api.MiscMeasurement{
		{Name: "Interior Door", Quantity: 1, Unit: "each", Rate: 45},
		{Name: "Interior Door", Quantity: 1, Unit: "each", Rate: 45},
		{Name: "Interior Door", Quantity: 1, Unit: "each", Rate: 45},
		{Name: "Interior Door", Quantity: 1, Unit: "each", Rate: 60},
	}
	res := decompose.Decompose(exampleProject(), []api.Room{room})
	items := Aggregate(res.Tasks, api.DefaultConfiguration(), nil)

	merged := findLine(t, items, "Interior Door (x3)")
	assert.InDelta(t, 3, merged.Quantity, 1e-9)
	assert.InDelta(t, 135, merged.Amount, 1e-9)
	assert.InDelta(t, 45, merged.Rate, 1e-9)

	// The differing rate keeps its own line, never averaged in.
	odd := findLine(t, items, "Interior Door")
	assert.InDelta(t, 60, odd.Amount, 1e-9)
}

func TestAggregate_PaintSubline(t *testing.T) {
	res := decompose.Decompose(exampleProject(), []api.Room{exampleRoom()})
	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSubline

	items := Aggregate(res.Tasks, cfg, nil)
	walls := findLine(t, items, "Paint Walls")
	require.Len(t, walls.SubItems, 1)

	paint := walls.SubItems[0]
	assert.Equal(t, api.ItemPaint, paint.Type)
	assert.InDelta(t, 2, paint.Quantity, 1e-9)
	assert.Equal(t, "gal", paint.Unit)
	assert.InDelta(t, 90, paint.Amount, 1e-9)
	assert.InDelta(t, 480, walls.Amount, 1e-9, "labor only on the parent")
}

func TestAggregate_SeparateAreaCombinedSection(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSeparateArea
	cfg.MaterialPlacement = api.PlacementSeparateArea
	cfg.SeparateAreaStrategy = api.SeparateAreaCombined

	items := Aggregate(res.Tasks, cfg, nil)

	hdrs := headers(items)
	last := hdrs[len(hdrs)-1]
	assert.Equal(t, "Paint & Materials", last.Description)
	for _, h := range hdrs[:len(hdrs)-1] {
		assert.NotContains(t, []string{"Paint Products", "Materials & Supplies"}, h.Description)
	}

	// Same product across rooms merges into one section line with summed gallons.
	paint := findLine(t, items, "Premium Eggshell")
	assert.Greater(t, paint.Quantity, 2.0)
	assert.Equal(t, "gal", paint.Unit)

	assert.InDelta(t, api.SumCost(res.Tasks), treeTotal(items), 1e-6)
}

func TestAggregate_SeparateAreaSplitSections(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSeparateArea
	cfg.MaterialPlacement = api.PlacementSeparateArea
	cfg.SeparateAreaStrategy = api.SeparateAreaSeparate

	items := Aggregate(res.Tasks, cfg, nil)
	var sawPaint, sawSupplies bool
	for _, h := range headers(items) {
		switch h.Description {
		case "Paint Products":
			sawPaint = true
		case "Materials & Supplies":
			sawSupplies = true
		case "Paint & Materials":
			t.Fatal("joint section must not render when strategy is separate")
		}
	}
	assert.True(t, sawPaint)
	assert.True(t, sawSupplies)
}

func TestAggregate_NonBillablePaintContributesZero(t *testing.T) {
	project := exampleProject()
	project.Supply.BillablePaint = false
	res := decompose.Decompose(project, []api.Room{exampleRoom()})

	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSubline

	items := Aggregate(res.Tasks, cfg, nil)
	walls := findLine(t, items, "Paint Walls")
	require.Len(t, walls.SubItems, 1)

	paint := walls.SubItems[0]
	assert.InDelta(t, 2, paint.Quantity, 1e-9, "gallons stay visible")
	assert.Zero(t, paint.Amount)
	assert.Zero(t, paint.Rate)
	assert.InDelta(t, api.SumCost(res.Tasks), treeTotal(items), 1e-9)
}

func TestAggregate_HeaderAmountsRollUpSections(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSubline
	items := Aggregate(res.Tasks, cfg, nil)

	var current *api.LineItem
	var section float64
	check := func() {
		if current != nil {
			assert.InDeltaf(t, section, current.Amount, 1e-9, "header %q", current.Description)
		}
	}
	for i := range items {
		if items[i].Type == api.ItemHeader {
			check()
			current = &items[i]
			section = 0
			continue
		}
		section += items[i].SubtreeAmount()
	}
	check()
}

func TestAggregate_DisplayTogglesAreCosmetic(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	cfg := api.DefaultConfiguration()
	cfg.PaintPlacement = api.PlacementSubline
	shown := Aggregate(res.Tasks, cfg, nil)

	cfg.ShowRates = false
	cfg.ShowUnits = false
	cfg.ShowCoatCounts = false
	hidden := Aggregate(res.Tasks, cfg, nil)

	assert.InDelta(t, treeTotal(shown), treeTotal(hidden), 1e-9)

	var assertScrubbed func(items []api.LineItem)
	assertScrubbed = func(items []api.LineItem) {
		for _, li := range items {
			assert.Zero(t, li.Rate, li.Description)
			assert.Empty(t, li.Unit, li.Description)
			assertScrubbed(li.SubItems)
		}
	}
	assertScrubbed(hidden)
}

func TestAggregate_PricingModels(t *testing.T) {
	res := decompose.Decompose(exampleProject(), []api.Room{exampleRoom()})

	cfg := api.DefaultConfiguration()
	cfg.LaborPricingModel = api.PricingHourly
	walls := findLine(t, Aggregate(res.Tasks, cfg, nil), "Paint Walls (2 coats)")
	assert.InDelta(t, 5, walls.Quantity, 1e-9, "ceil(320/150 x 2) hours")
	assert.Equal(t, "hours", walls.Unit)
	assert.InDelta(t, walls.Amount/5, walls.Rate, 1e-9)

	cfg.LaborPricingModel = api.PricingDayRate
	walls = findLine(t, Aggregate(res.Tasks, cfg, nil), "Paint Walls (2 coats)")
	assert.InDelta(t, 1, walls.Quantity, 1e-9)
	assert.Equal(t, "days", walls.Unit)

	cfg.LaborPricingModel = api.PricingLump
	walls = findLine(t, Aggregate(res.Tasks, cfg, nil), "Paint Walls (2 coats)")
	assert.InDelta(t, 1, walls.Quantity, 1e-9)
	assert.Equal(t, "lot", walls.Unit)
	assert.InDelta(t, walls.Amount, walls.Rate, 1e-9)
}

func TestAggregate_UnitMismatchFallsBackToLot(t *testing.T) {
	project := exampleProject()
	project.Supply.IncludeTrim = true
	res := decompose.Decompose(project, []api.Room{exampleRoom()})

	cfg := api.DefaultConfiguration()
	cfg.Organization = api.OrganizeByPhase
	cfg.LaborPricingModel = api.PricingUnitSqft
	items := Aggregate(res.Tasks, cfg, nil)

	// Trim measures linear feet; the sqft model cannot price it.
	trim := findLine(t, items, "Paint Trim")
	assert.Equal(t, "lot", trim.Unit)
	assert.InDelta(t, 1, trim.Quantity, 1e-9)
}

func TestAggregate_PrimerStrategies(t *testing.T) {
	project := exampleProject()
	project.Supply.IncludePrimer = true
	res := decompose.Decompose(project, []api.Room{exampleRoom()})

	separate := Aggregate(res.Tasks, api.DefaultConfiguration(), nil)
	prime := findLine(t, separate, "Prime Walls (Primer, 1 coat)")
	assert.Greater(t, prime.Amount, 0.0)

	cfg := api.DefaultConfiguration()
	cfg.PrimerStrategy = api.PrimerCombined
	combined := Aggregate(res.Tasks, cfg, nil)
	assert.False(t, hasLine(combined, "Prime Walls (Primer, 1 coat)"))
	assert.False(t, hasLine(combined, "Prime Walls"))

	assert.InDelta(t, treeTotal(separate), treeTotal(combined), 1e-9,
		"folding primer moves cost, never changes it")
}

func TestAggregate_CatalogPricedMiscPaint(t *testing.T) {
	room := exampleRoom()
	room.MiscItems = []api.MiscMeasurement{{
		Name: "Accent Wall", Quantity: 10, Unit: "linft", Rate: 3,
		PaintProductID: "interior-latex", Width: 2,
	}}
	res := decompose.Decompose(exampleProject(), []api.Room{room})

	items := Aggregate(res.Tasks, api.DefaultConfiguration(), catalog.DefaultItems())

	// ceil(10 x 2 / 350) = 1 gallon at the catalog price of $42.
	accent := findLine(t, items, "Accent Wall (Interior Latex Eggshell)")
	assert.InDelta(t, 30+42, accent.Amount, 1e-9)
	assert.InDelta(t, api.SumCost(res.Tasks)+42, treeTotal(items), 1e-9)
}

func TestAggregate_MaterialAllowance(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	var incidentals float64
	for _, task := range res.Tasks {
		incidentals += task.MaterialCost - task.PaintCost()
	}

	cfg := api.DefaultConfiguration()
	cfg.MaterialStrategy = api.MaterialAllowance
	cfg.MaterialAllowance = 200

	items := Aggregate(res.Tasks, cfg, nil)
	allowance := findLine(t, items, "Materials Allowance")
	assert.InDelta(t, 200, allowance.Amount, 1e-9)

	want := api.SumCost(res.Tasks) - incidentals + 200
	assert.InDelta(t, want, treeTotal(items), 1e-6)
}

func TestAggregate_CombinedSetupPackage(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	cfg := api.DefaultConfiguration()
	cfg.MaterialStrategy = api.MaterialCombinedSetup

	items := Aggregate(res.Tasks, cfg, nil)
	pkg := findLine(t, items, "Project Materials & Supplies Package")

	var incidentals float64
	for _, task := range res.Tasks {
		incidentals += task.MaterialCost - task.PaintCost()
	}
	assert.InDelta(t, incidentals, pkg.Amount, 1e-6)
	assert.InDelta(t, api.SumCost(res.Tasks), treeTotal(items), 1e-6)
}

func TestAggregate_SeparatedCompositionSplitsLaborAndPaint(t *testing.T) {
	res := decompose.Decompose(exampleProject(), []api.Room{exampleRoom()})

	cfg := api.DefaultConfiguration()
	cfg.ItemComposition = api.CompositionSeparated
	cfg.LaborPricingModel = api.PricingUnitSqft

	items := Aggregate(res.Tasks, cfg, nil)

	labor := findLine(t, items, "Paint Walls (2 coats)")
	assert.Equal(t, api.ItemLabor, labor.Type)
	assert.InDelta(t, 480, labor.Amount, 1e-9, "labor only")

	paint := findLine(t, items, "Paint: Walls")
	assert.Equal(t, api.ItemPaint, paint.Type)
	assert.InDelta(t, 90, paint.Amount, 1e-9)

	assert.InDelta(t, api.SumCost(res.Tasks), treeTotal(items), 1e-9)
}

func TestAggregate_GroupAxes(t *testing.T) {
	project, rooms := richProject()
	res := decompose.Decompose(project, rooms)

	byFloor := Aggregate(res.Tasks, func() api.QuoteConfiguration {
		c := api.DefaultConfiguration()
		c.Organization = api.OrganizeByFloor
		return c
	}(), nil)
	floors := headers(byFloor)
	require.Len(t, floors, 3)
	assert.Equal(t, "Main Floor", floors[0].Description)
	assert.Equal(t, "Second Floor", floors[1].Description)
	assert.Equal(t, "Project General", floors[2].Description, "overhead always trails")

	bySurface := Aggregate(res.Tasks, func() api.QuoteConfiguration {
		c := api.DefaultConfiguration()
		c.Organization = api.OrganizeBySurface
		return c
	}(), nil)
	surfaces := headers(bySurface)
	assert.Equal(t, "Project General", surfaces[len(surfaces)-1].Description)
}

func TestAggregate_EmptyInput(t *testing.T) {
	items := Aggregate(nil, api.DefaultConfiguration(), nil)
	assert.Empty(t, items)
}
