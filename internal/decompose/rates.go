package decompose

// Calibration constants carried over from the estimating workbook. These are
// business rates, not algorithmic requirements; confirm against current
// pricing rules before adjusting.
const (
	// wallPrepRatePerSqft prices standard wall preparation per sqft of wall.
	wallPrepRatePerSqft = 0.20

	// ceilingLaborFactor discounts ceiling labor relative to walls: ceilings
	// cut in slower but roll faster.
	ceilingLaborFactor = 0.8

	// primerLaborFactor discounts a primer coat relative to a finish coat.
	primerLaborFactor = 0.6

	// trimRatePerLinearFt prices trim work per linear foot of perimeter.
	trimRatePerLinearFt = 1.10

	// wallpaperRemovalRatePerSqft prices wallpaper stripping per sqft of wall.
	wallpaperRemovalRatePerSqft = 0.50

	// Mobilization overhead, billed exactly once per quote.
	globalSetupCost   = 150.0
	globalCleanupCost = 100.0
)
