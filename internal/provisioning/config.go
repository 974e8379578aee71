package provisioning

import (
	"errors"
	"fmt"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/geometry"
)

// ErrInvalidConfig wraps every cell configuration validation failure
var ErrInvalidConfig = errors.New("invalid cell configuration")

// maxLevelCount keeps the top level within 90
const maxLevelCount = 10

// LocationType tells which side(s) of an aisle carry locations
type LocationType string

const (
	LocationsOdd  LocationType = "odd"
	LocationsEven LocationType = "even"
	LocationsBoth LocationType = "both"
)

func (t LocationType) Valid() bool {
	return t == LocationsOdd || t == LocationsEven || t == LocationsBoth
}

// CellConfig is a provisioning request for a new cell.
// LocationsPerAisle counts the positions of a whole aisle, both sides together.
type CellConfig struct {
	CellNumber        int          `json:"cellNumber" yaml:"cellNumber" validate:"required,min=1,max=9"`
	AisleStart        int          `json:"aisleStart" yaml:"aisleStart" validate:"required,min=1,max=999"`
	AisleEnd          int          `json:"aisleEnd" yaml:"aisleEnd" validate:"required,min=1,max=999"`
	StartLocationType LocationType `json:"startLocationType" yaml:"startLocationType" validate:"required,oneof=odd even both"`
	EndLocationType   LocationType `json:"endLocationType" yaml:"endLocationType" validate:"required,oneof=odd even both"`
	LocationsPerAisle int          `json:"locationsPerAisle" yaml:"locationsPerAisle" validate:"required,min=2"`
	LevelCount        int          `json:"levelCount" yaml:"levelCount" validate:"required,min=1,max=10"`
	HasPicking        bool         `json:"hasPicking" yaml:"hasPicking"`
}

// Validate checks the configuration before anything is generated
func (c CellConfig) Validate() error {
	if _, err := address.NewCellNumber(c.CellNumber); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := address.NewAisleNumber(c.AisleStart); err != nil {
		return fmt.Errorf("%w: aisle start: %w", ErrInvalidConfig, err)
	}
	if _, err := address.NewAisleNumber(c.AisleEnd); err != nil {
		return fmt.Errorf("%w: aisle end: %w", ErrInvalidConfig, err)
	}
	if c.AisleStart > c.AisleEnd {
		return fmt.Errorf("%w: aisle start %d is after aisle end %d", ErrInvalidConfig, c.AisleStart, c.AisleEnd)
	}
	if !c.StartLocationType.Valid() {
		return fmt.Errorf("%w: start location type %q", ErrInvalidConfig, c.StartLocationType)
	}
	if !c.EndLocationType.Valid() {
		return fmt.Errorf("%w: end location type %q", ErrInvalidConfig, c.EndLocationType)
	}
	if c.LocationsPerAisle < 2 || c.LocationsPerAisle%2 != 0 {
		return fmt.Errorf("%w: locations per aisle must be an even number >= 2, got %d", ErrInvalidConfig, c.LocationsPerAisle)
	}
	if _, err := address.NewPositionNumber(c.LocationsPerAisle); err != nil {
		return fmt.Errorf("%w: locations per aisle: %w", ErrInvalidConfig, err)
	}
	if c.LevelCount < 1 || c.LevelCount > maxLevelCount {
		return fmt.Errorf("%w: level count must be between 1 and %d, got %d", ErrInvalidConfig, maxLevelCount, c.LevelCount)
	}
	return nil
}

// PositionsPerSide is the number of positions on each aisle side
func (c CellConfig) PositionsPerSide() int {
	return c.LocationsPerAisle / 2
}

// Levels lists the level values every position gets
func (c CellConfig) Levels() []int {
	return geometry.ValidLevels(c.LevelCount)
}
