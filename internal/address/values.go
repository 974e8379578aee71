package address

import (
	"fmt"
	"strconv"
	"strings"
)

// Field widths of the canonical address string
const (
	CellWidth     = 1
	AisleWidth    = 3
	PositionWidth = 4
	LevelWidth    = 2
)

const (
	minCell     = 1
	maxCell     = 9
	minAisle    = 1
	maxAisle    = 999
	minPosition = 1
	maxPosition = 9999
	maxLevel    = 90
	levelStep   = 10
)

// CellNumber identifies a building subdivision (exactly one digit, 1..9)
type CellNumber struct {
	value int
}

// NewCellNumber validates v and returns a CellNumber
func NewCellNumber(v int) (CellNumber, error) {
	if v < minCell || v > maxCell {
		return CellNumber{}, outOfRange("cell", v)
	}
	return CellNumber{value: v}, nil
}

// ParseCellNumber converts a decimal string into a CellNumber
func ParseCellNumber(s string) (CellNumber, error) {
	v, err := atoi("cell", s)
	if err != nil {
		return CellNumber{}, err
	}
	return NewCellNumber(v)
}

func (c CellNumber) Int() int { return c.value }
func (c CellNumber) Equal(other CellNumber) bool { return c.value == other.value }
func (c CellNumber) String() string { return strconv.Itoa(c.value) }

// AisleNumber is 1..999, rendered with 3 digits
type AisleNumber struct {
	value int
}

// NewAisleNumber validates v and returns an AisleNumber
func NewAisleNumber(v int) (AisleNumber, error) {
	if v < minAisle || v > maxAisle {
		return AisleNumber{}, outOfRange("aisle", v)
	}
	return AisleNumber{value: v}, nil
}

// ParseAisleNumber converts a decimal string into an AisleNumber
func ParseAisleNumber(s string) (AisleNumber, error) {
	v, err := atoi("aisle", s)
	if err != nil {
		return AisleNumber{}, err
	}
	return NewAisleNumber(v)
}

func (a AisleNumber) Int() int { return a.value }
func (a AisleNumber) Equal(other AisleNumber) bool { return a.value == other.value }
func (a AisleNumber) String() string { return pad(a.value, AisleWidth) }

// PositionNumber is 1..9999, rendered with 4 digits
type PositionNumber struct {
	value int
}

// NewPositionNumber validates v and returns a PositionNumber
func NewPositionNumber(v int) (PositionNumber, error) {
	if v < minPosition || v > maxPosition {
		return PositionNumber{}, outOfRange("position", v)
	}
	return PositionNumber{value: v}, nil
}

// ParsePositionNumber converts a decimal string into a PositionNumber
func ParsePositionNumber(s string) (PositionNumber, error) {
	v, err := atoi("position", s)
	if err != nil {
		return PositionNumber{}, err
	}
	return NewPositionNumber(v)
}

func (p PositionNumber) Int() int { return p.value }
func (p PositionNumber) Equal(other PositionNumber) bool { return p.value == other.value }
func (p PositionNumber) String() string { return pad(p.value, PositionWidth) }

// LevelNumber is a vertical tier: 0..90 in steps of 10.
// Level 0 is the picking (ground) level, everything above is reserve.
type LevelNumber struct {
	value int
}

// NewLevelNumber validates v and returns a LevelNumber
func NewLevelNumber(v int) (LevelNumber, error) {
	if v < 0 || v > maxLevel || v%levelStep != 0 {
		return LevelNumber{}, outOfRange("level", v)
	}
	return LevelNumber{value: v}, nil
}

// ParseLevelNumber converts a decimal string into a LevelNumber
func ParseLevelNumber(s string) (LevelNumber, error) {
	v, err := atoi("level", s)
	if err != nil {
		return LevelNumber{}, err
	}
	return NewLevelNumber(v)
}

func (l LevelNumber) Int() int { return l.value }
func (l LevelNumber) Equal(other LevelNumber) bool { return l.value == other.value }
func (l LevelNumber) String() string { return pad(l.value, LevelWidth) }
func (l LevelNumber) IsPicking() bool { return l.value == 0 }
func (l LevelNumber) IsReserve() bool { return l.value > 0 }

func outOfRange(field string, v int) error {
	return &ValidationError{Field: field, Value: strconv.Itoa(v), Kind: ErrOutOfRange}
}

func atoi(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: field, Value: s, Kind: ErrNotANumber}
	}
	return v, nil
}

func pad(v, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}
