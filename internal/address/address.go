package address

import (
	"regexp"
	"strconv"
	"strings"
)

const separator = "-"

var (
	fullAddressPattern = regexp.MustCompile(`^(\d{1})-(\d{3})-(\d{4})-(\d{2})$`)
	slotPattern        = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// FullAddress uniquely identifies a storage location.
// Canonical form: {cell:1}-{aisle:3}-{position:4}-{level:2}, e.g. "4-016-0026-30".
type FullAddress struct {
	Cell     CellNumber     `json:"cell"`
	Aisle    AisleNumber    `json:"aisle"`
	Position PositionNumber `json:"position"`
	Level    LevelNumber    `json:"level"`
}

// New builds a FullAddress from raw integers, validating every component
func New(cell, aisle, position, level int) (FullAddress, error) {
	c, err := NewCellNumber(cell)
	if err != nil {
		return FullAddress{}, err
	}
	a, err := NewAisleNumber(aisle)
	if err != nil {
		return FullAddress{}, err
	}
	p, err := NewPositionNumber(position)
	if err != nil {
		return FullAddress{}, err
	}
	l, err := NewLevelNumber(level)
	if err != nil {
		return FullAddress{}, err
	}
	return FullAddress{Cell: c, Aisle: a, Position: p, Level: l}, nil
}

// String always zero-pads every component to its canonical width
func (a FullAddress) String() string {
	return a.Cell.String() + separator +
		a.Aisle.String() + separator +
		a.Position.String() + separator +
		a.Level.String()
}

// Side reports which aisle side the position belongs to
func (a FullAddress) Side() Side {
	if a.Position.Int()%2 == 1 {
		return Odd
	}
	return Even
}

// Slot drops the cell and aisle components
func (a FullAddress) Slot() Slot {
	return Slot{Position: a.Position, Level: a.Level}
}

// Format renders a as its canonical string
func Format(a FullAddress) string {
	return a.String()
}

// Normalize zero-pads the aisle, position and level parts of a
// cell-aisle-position-level string. Input with the wrong number of
// parts is returned unchanged.
func Normalize(s string) string {
	parts := strings.Split(strings.TrimSpace(s), separator)
	if len(parts) != 4 {
		return s
	}
	return strings.Join([]string{
		parts[0],
		padPart(parts[1], AisleWidth),
		padPart(parts[2], PositionWidth),
		padPart(parts[3], LevelWidth),
	}, separator)
}

// Parse converts a human-entered address into a FullAddress.
// Components shorter than their canonical width are zero-padded first,
// so "1-5-54-20" parses the same as "1-005-0054-20".
func Parse(s string) (FullAddress, error) {
	normalized := Normalize(s)
	m := fullAddressPattern.FindStringSubmatch(normalized)
	if m == nil {
		return FullAddress{}, &ParseError{Input: s, Code: ErrInvalidFormat}
	}

	level, err := ParseLevelNumber(m[4])
	if err != nil {
		return FullAddress{}, &ParseError{Input: s, Code: ErrInvalidLevel, Cause: err}
	}
	cell, err := ParseCellNumber(m[1])
	if err != nil {
		return FullAddress{}, &ParseError{Input: s, Code: ErrInvalidFormat, Cause: err}
	}
	aisle, err := ParseAisleNumber(m[2])
	if err != nil {
		return FullAddress{}, &ParseError{Input: s, Code: ErrInvalidFormat, Cause: err}
	}
	position, err := ParsePositionNumber(m[3])
	if err != nil {
		return FullAddress{}, &ParseError{Input: s, Code: ErrInvalidFormat, Cause: err}
	}

	return FullAddress{Cell: cell, Aisle: aisle, Position: position, Level: level}, nil
}

// IsValid reports whether s parses as a full address
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Slot is the position-level part of an address, e.g. "0054-20"
type Slot struct {
	Position PositionNumber `json:"position"`
	Level    LevelNumber    `json:"level"`
}

func (s Slot) String() string {
	return s.Position.String() + separator + s.Level.String()
}

// NormalizeSlot zero-pads a position-level string
func NormalizeSlot(s string) string {
	parts := strings.Split(strings.TrimSpace(s), separator)
	if len(parts) != 2 {
		return s
	}
	return padPart(parts[0], PositionWidth) + separator + padPart(parts[1], LevelWidth)
}

// ParseSlot parses the short position-level form
func ParseSlot(s string) (Slot, error) {
	m := slotPattern.FindStringSubmatch(NormalizeSlot(s))
	if m == nil {
		return Slot{}, &ParseError{Input: s, Code: ErrInvalidFormat}
	}
	level, err := ParseLevelNumber(m[2])
	if err != nil {
		return Slot{}, &ParseError{Input: s, Code: ErrInvalidLevel, Cause: err}
	}
	position, err := ParsePositionNumber(m[1])
	if err != nil {
		return Slot{}, &ParseError{Input: s, Code: ErrInvalidFormat, Cause: err}
	}
	return Slot{Position: position, Level: level}, nil
}

// padPart left-pads digit-only parts; anything else is left for the pattern to reject
func padPart(part string, width int) string {
	if part == "" || len(part) >= width {
		return part
	}
	if _, err := strconv.Atoi(part); err != nil {
		return part
	}
	return strings.Repeat("0", width-len(part)) + part
}
