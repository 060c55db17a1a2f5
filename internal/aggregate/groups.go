package aggregate

import (
	"fmt"

	"github.com/choozin/paintmatepro/pkg/api"
)

// groupKey identifies one outer section of the quote. Global overhead tasks
// use the zero axis so they can never collide with a configurable group.
type groupKey struct {
	axis  api.Organization
	value string
}

// taskGroup is one outer section: the tasks that will render under one header.
type taskGroup struct {
	key   groupKey
	title string
	tasks []api.AtomicTask
}

const generalGroupTitle = "Project General"
const defaultFloorTitle = "Main Floor"

// partition splits tasks along the configured organization axis, preserving
// first-appearance order. Global tasks always form a trailing "Project
// General" group regardless of the axis; that override is fixed behavior, not
// a policy knob.
func partition(tasks []api.AtomicTask, org api.Organization) []taskGroup {
	groups := make([]taskGroup, 0, 8)
	index := make(map[groupKey]int)
	globalIdx := -1

	for _, t := range tasks {
		var key groupKey
		var title string

		if t.IsGlobal() {
			key = groupKey{value: api.GlobalRoomID}
			title = generalGroupTitle
		} else {
			switch org {
			case api.OrganizeBySurface:
				key = groupKey{axis: org, value: string(t.SurfaceType)}
				title = surfaceTitle(t.SurfaceType)
			case api.OrganizeByPhase:
				key = groupKey{axis: org, value: string(t.Phase)}
				title = phaseTitle(t.Phase)
			case api.OrganizeByFloor:
				floor := t.Floor
				if floor == "" {
					floor = defaultFloorTitle
				}
				key = groupKey{axis: org, value: floor}
				title = floor
			default: // room
				key = groupKey{axis: api.OrganizeByRoom, value: t.RoomID}
				title = t.RoomName
				if title == "" {
					title = t.RoomID
				}
			}
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, taskGroup{key: key, title: title})
			if t.IsGlobal() {
				globalIdx = i
			}
		}
		groups[i].tasks = append(groups[i].tasks, t)
	}

	// Project General renders last, matching decomposer task order.
	if globalIdx >= 0 && globalIdx != len(groups)-1 {
		g := groups[globalIdx]
		groups = append(groups[:globalIdx], groups[globalIdx+1:]...)
		groups = append(groups, g)
	}

	return groups
}

// subKey is the structural sub-group key: tasks only merge within the same
// surface x phase, no matter how coarse the outer grouping is.
type subKey struct {
	surface api.SurfaceType
	phase   api.Phase
}

// miscKey is the structural identity of recurring misc work. Entries merge on
// presentation only when every attribute matches; a differing rate (or any
// other field) keeps them as distinct lines.
type miscKey struct {
	name           string
	unit           string
	rate           float64
	paintProductID string
	width          float64
	coverage       float64
}

// workUnit is a priceable cluster inside a group: either a standard
// surface x phase sub-group or one merged named entry (misc item, prep task,
// global overhead).
type workUnit struct {
	surface api.SurfaceType
	phase   api.Phase
	named   bool
	name    string
	count   int
	tasks   []api.AtomicTask
}

// buildUnits splits a group's tasks into work units in first-appearance order.
// Named tasks merge by structural key; standard tasks merge by surface x phase.
// When the primer strategy is combined, prime-phase sub-groups fold into the
// finish sub-group of the same surface.
func buildUnits(tasks []api.AtomicTask, cfg api.QuoteConfiguration) []workUnit {
	units := make([]workUnit, 0, len(tasks))
	stdIndex := make(map[subKey]int)
	namedIndex := make(map[miscKey]int)

	for _, t := range tasks {
		if t.Name != "" {
			key := miscKey{
				name:           t.Name,
				unit:           t.Unit,
				rate:           t.Rate,
				paintProductID: t.PaintProductID,
				width:          t.Width,
				coverage:       t.Coverage,
			}
			i, ok := namedIndex[key]
			if !ok {
				i = len(units)
				namedIndex[key] = i
				units = append(units, workUnit{
					surface: t.SurfaceType,
					phase:   t.Phase,
					named:   true,
					name:    t.Name,
				})
			}
			units[i].count++
			units[i].tasks = append(units[i].tasks, t)
			continue
		}

		key := subKey{surface: t.SurfaceType, phase: t.Phase}
		if cfg.PrimerStrategy == api.PrimerCombined && t.Phase == api.PhasePrime {
			key.phase = api.PhaseFinish
		}
		i, ok := stdIndex[key]
		if !ok {
			i = len(units)
			stdIndex[key] = i
			units = append(units, workUnit{surface: key.surface, phase: key.phase, count: 1})
		}
		units[i].tasks = append(units[i].tasks, t)
	}

	return units
}

func surfaceTitle(s api.SurfaceType) string {
	switch s {
	case api.SurfaceWall:
		return "Walls"
	case api.SurfaceCeiling:
		return "Ceilings"
	case api.SurfaceTrim:
		return "Trim"
	case api.SurfaceDoor:
		return "Doors"
	case api.SurfaceWindow:
		return "Windows"
	case api.SurfaceCabinet:
		return "Cabinets"
	case api.SurfaceWallpaper:
		return "Wallpaper"
	default:
		return "Other Work"
	}
}

func phaseTitle(p api.Phase) string {
	switch p {
	case api.PhasePrep:
		return "Preparation"
	case api.PhasePrime:
		return "Priming"
	case api.PhaseFinish:
		return "Finish Work"
	case api.PhaseCleanup:
		return "Cleanup"
	default:
		return "Work"
	}
}

// describe names a standard sub-group line.
func describe(s api.SurfaceType, p api.Phase) string {
	switch {
	case s == api.SurfaceWallpaper && p == api.PhasePrep:
		return "Wallpaper Removal"
	case p == api.PhasePrep:
		return "Surface Preparation"
	case p == api.PhasePrime && s == api.SurfaceWall:
		return "Prime Walls"
	case p == api.PhasePrime:
		return "Prime " + surfaceTitle(s)
	case p == api.PhaseCleanup:
		return "Cleanup"
	case s == api.SurfaceWall:
		return "Paint Walls"
	case s == api.SurfaceCeiling:
		return "Paint Ceiling"
	case s == api.SurfaceTrim:
		return "Paint Trim"
	case s == api.SurfaceDoor:
		return "Paint Doors"
	case s == api.SurfaceWindow:
		return "Paint Windows"
	case s == api.SurfaceCabinet:
		return "Paint Cabinets"
	default:
		return fmt.Sprintf("%s (%s)", surfaceTitle(s), phaseTitle(p))
	}
}
