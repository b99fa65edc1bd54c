package sim

import (
	"math"
	"strings"
)

// Formation is the spatial layout of a spawn group.
type Formation int

const (
	FormationLine Formation = iota
	FormationV
	FormationGrid
	FormationScatter
	FormationSingleFile
	FormationCircle
	FormationCount // Sentinel for counting formations
)

var formationNames = [FormationCount]string{"line", "v", "grid", "scatter", "single_file", "circle"}

// String returns the name used in level files.
func (f Formation) String() string {
	if f < 0 || f >= FormationCount {
		return "unknown"
	}
	return formationNames[f]
}

// ParseFormation looks up a formation by name. "v_shape" and "single-file"
// are accepted as aliases.
func ParseFormation(name string) (Formation, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	if name == "v_shape" {
		name = "v"
	}
	for i, n := range formationNames {
		if n == name {
			return Formation(i), true
		}
	}
	return FormationLine, false
}

const (
	formationGapX = 12
	formationGapY = 10
	formationTop  = 10 // Clearance above the top edge
)

type point struct {
	X, Y float64
}

// formationSlots returns top-left spawn positions for count enemies of size
// w x h, all above the top edge. Only scatter uses the RNG.
func formationSlots(s *State, f Formation, count int, w, h float64) []point {
	if count <= 0 {
		return nil
	}
	fieldW := s.field().W
	centerX := fieldW/2 - w/2
	top := -h - formationTop
	slots := make([]point, 0, count)

	switch f {
	case FormationV:
		for i := 0; i < count; i++ {
			rank := float64((i + 1) / 2)
			side := 1.0
			if i%2 == 1 {
				side = -1
			}
			slots = append(slots, point{centerX + side*rank*(w+formationGapX), top - rank*(h+formationGapY)})
		}
	case FormationGrid:
		cols := int(math.Ceil(math.Sqrt(float64(count))))
		rowW := float64(cols)*(w+formationGapX) - formationGapX
		left := fieldW/2 - rowW/2
		for i := 0; i < count; i++ {
			col, row := i%cols, i/cols
			slots = append(slots, point{left + float64(col)*(w+formationGapX), top - float64(row)*(h+formationGapY)})
		}
	case FormationScatter:
		for i := 0; i < count; i++ {
			x := s.RNG.Range(10, math.Max(11, fieldW-w-10))
			y := top - s.RNG.Range(0, 200)
			slots = append(slots, point{x, y})
		}
	case FormationSingleFile:
		for i := 0; i < count; i++ {
			slots = append(slots, point{centerX, top - float64(i)*(h+formationGapY+4)})
		}
	case FormationCircle:
		radius := math.Max(40, float64(count)*(w+formationGapX)/(2*math.Pi))
		cy := top - radius
		for i := 0; i < count; i++ {
			a := 2 * math.Pi * float64(i) / float64(count)
			slots = append(slots, point{centerX + math.Cos(a)*radius, cy + math.Sin(a)*radius})
		}
	default: // FormationLine and unknown shapes
		rowW := float64(count)*(w+formationGapX) - formationGapX
		left := fieldW/2 - rowW/2
		for i := 0; i < count; i++ {
			slots = append(slots, point{left + float64(i)*(w+formationGapX), top})
		}
	}

	for i := range slots {
		slots[i].X = clampF(slots[i].X, 0, math.Max(0, fieldW-w))
	}
	fitAboveCull(slots, top, -s.env.Config.Enemies.CullAbove+h)
	return slots
}

// fitAboveCull squeezes the slots vertically toward top so the highest one
// sits no higher than limit. Enemies spawned past the cull line would be
// removed before ever reaching the playfield.
func fitAboveCull(slots []point, top, limit float64) {
	highest := top
	for _, p := range slots {
		highest = math.Min(highest, p.Y)
	}
	if highest >= limit {
		return
	}
	k := math.Max(0, (top-limit)/(top-highest))
	for i := range slots {
		slots[i].Y = top - (top-slots[i].Y)*k
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
