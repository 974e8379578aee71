package provisioning

import (
	"fmt"
	"strings"

	"github.com/xelth-com/eckslotgo/internal/geometry"
)

// Summary is the human facing preview of a plan
type Summary struct {
	Cell           int                 `json:"cell"`
	Aisles         string              `json:"aisles"`
	Levels         string              `json:"levels"`
	AisleSides     int                 `json:"aisleSides"`
	Bays           int                 `json:"bays"`
	Locations      int                 `json:"locations"`
	PickingEnabled bool                `json:"pickingEnabled"`
	Ranges         geometry.SideRanges `json:"ranges"`
}

// AisleSummary describes the aisle layout one line per group, e.g.
//
//	Aisle 001: odd locations
//	Aisles from 002 to 015: both locations
//	Aisle 016: even locations
func AisleSummary(descriptors []AisleDescriptor) string {
	if len(descriptors) == 0 {
		return ""
	}
	first, middle := descriptors[0], descriptors[1:]

	lines := []string{fmt.Sprintf("Aisle %03d: %s locations", first.Number, first.Locations)}
	if len(middle) == 0 {
		return lines[0]
	}
	last := middle[len(middle)-1]
	middle = middle[:len(middle)-1]

	if len(middle) > 0 {
		lines = append(lines, fmt.Sprintf("Aisles from %03d to %03d: both locations", middle[0].Number, middle[len(middle)-1].Number))
	}
	lines = append(lines, fmt.Sprintf("Aisle %03d: %s locations", last.Number, last.Locations))
	return strings.Join(lines, "\n")
}

// LevelsSummary lists the level values, marking the picking level:
// "00 (picking), 10, 20"
func LevelsSummary(levels []int, hasPicking bool) string {
	parts := make([]string, len(levels))
	for i, level := range levels {
		parts[i] = fmt.Sprintf("%02d", level)
		if hasPicking && level == 0 {
			parts[i] += " (picking)"
		}
	}
	return strings.Join(parts, ", ")
}

// Summary builds the preview for this plan
func (p *Plan) Summary() Summary {
	return Summary{
		Cell:           p.Cell.Int(),
		Aisles:         AisleSummary(p.Descriptors),
		Levels:         LevelsSummary(p.Levels, p.Config.HasPicking),
		AisleSides:     len(p.Aisles),
		Bays:           p.BayCount(),
		Locations:      p.LocationCount(),
		PickingEnabled: p.Config.HasPicking,
		Ranges:         p.Ranges,
	}
}
