package provisioning

import (
	"errors"
	"fmt"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/geometry"
	"github.com/xelth-com/eckslotgo/internal/models"
)

// ErrTotalMismatch means the generated locations disagree with CalculateTotalLocations
var ErrTotalMismatch = errors.New("generated location count does not match expected total")

// AisleDescriptor is one physical aisle of the requested range
type AisleDescriptor struct {
	Number    int          `json:"number"`
	Locations LocationType `json:"locations"`
}

// AisleSide is one aisle record to create
type AisleSide struct {
	Number address.AisleNumber `json:"number"`
	Side   address.Side        `json:"side"`
}

// PlannedLocation is one location record to create
type PlannedLocation struct {
	Position address.PositionNumber `json:"position"`
	Level    address.LevelNumber    `json:"level"`
	Picking  bool                   `json:"isPicking"`
}

// PlannedBay is one bay record and the locations it holds
type PlannedBay struct {
	Number    int               `json:"number"`
	Width     int               `json:"width"`
	Locations []PlannedLocation `json:"locations"`
}

// PlannedAisle is an aisle side with its bays
type PlannedAisle struct {
	AisleSide
	Bays []PlannedBay `json:"bays"`
}

// Plan is the complete, deterministic layout of a cell. Building a plan
// does no I/O.
type Plan struct {
	Config      CellConfig          `json:"config"`
	Cell        address.CellNumber  `json:"cell"`
	Descriptors []AisleDescriptor   `json:"descriptors"`
	Aisles      []PlannedAisle      `json:"aisles"`
	Levels      []int               `json:"levels"`
	Ranges      geometry.SideRanges `json:"ranges"`
}

// GenerateAisleDescriptors lays out the aisle range: the first aisle exposes
// startType, interior aisles both sides, and the last aisle endType.
func GenerateAisleDescriptors(start, end int, startType, endType LocationType) []AisleDescriptor {
	aisles := []AisleDescriptor{{Number: start, Locations: startType}}

	for current := start + 1; current < end; current++ {
		aisles = append(aisles, AisleDescriptor{Number: current, Locations: LocationsBoth})
	}

	if start != end {
		aisles = append(aisles, AisleDescriptor{Number: end, Locations: endType})
	}
	return aisles
}

// ExpandSides turns descriptors into aisle records; "both" yields the odd
// side followed by the even side
func ExpandSides(descriptors []AisleDescriptor) ([]AisleSide, error) {
	sides := make([]AisleSide, 0, len(descriptors)*2)
	for _, d := range descriptors {
		number, err := address.NewAisleNumber(d.Number)
		if err != nil {
			return nil, err
		}
		switch d.Locations {
		case LocationsBoth:
			sides = append(sides,
				AisleSide{Number: number, Side: address.Odd},
				AisleSide{Number: number, Side: address.Even},
			)
		case LocationsOdd:
			sides = append(sides, AisleSide{Number: number, Side: address.Odd})
		case LocationsEven:
			sides = append(sides, AisleSide{Number: number, Side: address.Even})
		default:
			return nil, fmt.Errorf("aisle %d: unknown location type %q", d.Number, d.Locations)
		}
	}
	return sides, nil
}

// CalculateTotalLocations is the independent cross-check for a plan:
// an aisle with both sides holds locationsPerAisle positions, a single side
// half of it (rounded up), each multiplied by the level count
func CalculateTotalLocations(descriptors []AisleDescriptor, locationsPerAisle, levelCount int) int {
	total := 0
	for _, d := range descriptors {
		perAisle := (locationsPerAisle + 1) / 2
		if d.Locations == LocationsBoth {
			perAisle = locationsPerAisle
		}
		total += perAisle * levelCount
	}
	return total
}

// layout is the validated skeleton shared by BuildPlan and PreviewPlan
type layout struct {
	cell        address.CellNumber
	descriptors []AisleDescriptor
	sides       []AisleSide
	levels      []address.LevelNumber
	perSide     int
	baysPerSide int
}

func newLayout(cfg CellConfig) (*layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cell, _ := address.NewCellNumber(cfg.CellNumber)

	descriptors := GenerateAisleDescriptors(cfg.AisleStart, cfg.AisleEnd, cfg.StartLocationType, cfg.EndLocationType)
	sides, err := ExpandSides(descriptors)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	levels, err := levelNumbers(cfg.Levels())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	perSide := cfg.PositionsPerSide()
	return &layout{
		cell:        cell,
		descriptors: descriptors,
		sides:       sides,
		levels:      levels,
		perSide:     perSide,
		baysPerSide: geometry.BaysPerSide(perSide),
	}, nil
}

// bay generates bay bayIndex of one aisle side, position by position and
// level by level within each position
func (l *layout) bay(side AisleSide, bayIndex int, hasPicking bool) (PlannedBay, error) {
	bay := PlannedBay{Number: bayIndex + 1, Width: geometry.BayStride}
	positions := geometry.PositionsForBay(bay.Number, bay.Width, side.Side)
	inBay := geometry.PositionsInBay(l.perSide, bayIndex)

	bay.Locations = make([]PlannedLocation, 0, inBay*len(l.levels))
	for _, p := range positions[:inBay] {
		position, err := address.NewPositionNumber(p)
		if err != nil {
			return PlannedBay{}, fmt.Errorf("%w: aisle %s %s: %w", ErrInvalidConfig, side.Number, side.Side, err)
		}
		for _, level := range l.levels {
			bay.Locations = append(bay.Locations, PlannedLocation{
				Position: position,
				Level:    level,
				Picking:  hasPicking && level.IsPicking(),
			})
		}
	}
	return bay, nil
}

// BuildPlan validates cfg and generates every aisle side, bay and location
func BuildPlan(cfg CellConfig) (*Plan, error) {
	l, err := newLayout(cfg)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Config:      cfg,
		Cell:        l.cell,
		Descriptors: l.descriptors,
		Aisles:      make([]PlannedAisle, 0, len(l.sides)),
		Levels:      cfg.Levels(),
		Ranges:      geometry.LocationRanges(cfg.LocationsPerAisle),
	}

	for _, side := range l.sides {
		aisle := PlannedAisle{AisleSide: side, Bays: make([]PlannedBay, 0, l.baysPerSide)}
		for bayIndex := 0; bayIndex < l.baysPerSide; bayIndex++ {
			bay, err := l.bay(side, bayIndex, cfg.HasPicking)
			if err != nil {
				return nil, err
			}
			aisle.Bays = append(aisle.Bays, bay)
		}
		plan.Aisles = append(plan.Aisles, aisle)
	}

	if got, want := plan.LocationCount(), plan.ExpectedLocations(); got != want {
		return nil, fmt.Errorf("%w: generated %d, expected %d", ErrTotalMismatch, got, want)
	}
	return plan, nil
}

// PlanPreview is what a configuration would produce, without its locations
type PlanPreview struct {
	Summary     Summary
	Descriptors []AisleDescriptor
	// Sample holds the first addresses in generation order
	Sample []address.FullAddress
}

// PreviewPlan validates cfg and computes the plan totals arithmetically.
// Only the first sampleSize addresses are generated, so the cost does not
// grow with the size of the cell.
func PreviewPlan(cfg CellConfig, sampleSize int) (*PlanPreview, error) {
	l, err := newLayout(cfg)
	if err != nil {
		return nil, err
	}

	preview := &PlanPreview{
		Summary: Summary{
			Cell:           l.cell.Int(),
			Aisles:         AisleSummary(l.descriptors),
			Levels:         LevelsSummary(cfg.Levels(), cfg.HasPicking),
			AisleSides:     len(l.sides),
			Bays:           len(l.sides) * l.baysPerSide,
			Locations:      CalculateTotalLocations(l.descriptors, cfg.LocationsPerAisle, cfg.LevelCount),
			PickingEnabled: cfg.HasPicking,
			Ranges:         geometry.LocationRanges(cfg.LocationsPerAisle),
		},
		Descriptors: l.descriptors,
	}

	for _, side := range l.sides {
		for bayIndex := 0; bayIndex < l.baysPerSide; bayIndex++ {
			if len(preview.Sample) >= sampleSize {
				return preview, nil
			}
			bay, err := l.bay(side, bayIndex, cfg.HasPicking)
			if err != nil {
				return nil, err
			}
			for _, loc := range bay.Locations {
				if len(preview.Sample) == sampleSize {
					break
				}
				preview.Sample = append(preview.Sample, address.FullAddress{Cell: l.cell, Aisle: side.Number, Position: loc.Position, Level: loc.Level})
			}
		}
	}
	return preview, nil
}

func levelNumbers(values []int) ([]address.LevelNumber, error) {
	levels := make([]address.LevelNumber, len(values))
	for i, v := range values {
		level, err := address.NewLevelNumber(v)
		if err != nil {
			return nil, err
		}
		levels[i] = level
	}
	return levels, nil
}

// BayCount is the number of bay records in the plan
func (p *Plan) BayCount() int {
	n := 0
	for _, a := range p.Aisles {
		n += len(a.Bays)
	}
	return n
}

// LocationCount is the number of location records in the plan
func (p *Plan) LocationCount() int {
	n := 0
	for _, a := range p.Aisles {
		for _, b := range a.Bays {
			n += len(b.Locations)
		}
	}
	return n
}

// ExpectedLocations is CalculateTotalLocations for the plan's configuration
func (p *Plan) ExpectedLocations() int {
	return CalculateTotalLocations(p.Descriptors, p.Config.LocationsPerAisle, p.Config.LevelCount)
}

// CellRecord is the cell row for this plan
func (p *Plan) CellRecord() models.Cell {
	return models.Cell{
		Number:            p.Cell.Int(),
		AislesCount:       len(p.Aisles),
		LocationsPerAisle: p.Config.PositionsPerSide(),
		LevelsPerLocation: p.Config.LevelCount,
		HasPicking:        p.Config.HasPicking,
	}
}

// Addresses lists every full address of the plan in generation order
func (p *Plan) Addresses() []address.FullAddress {
	out := make([]address.FullAddress, 0, p.LocationCount())
	for _, a := range p.Aisles {
		for _, b := range a.Bays {
			for _, l := range b.Locations {
				out = append(out, address.FullAddress{Cell: p.Cell, Aisle: a.Number, Position: l.Position, Level: l.Level})
			}
		}
	}
	return out
}
