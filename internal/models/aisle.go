package models

import (
	"fmt"
	"time"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/geometry"
)

// Aisle is one side of a physical aisle. Both sides of the same aisle are
// separate rows sharing a number.
type Aisle struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	Number int          `gorm:"not null;uniqueIndex:idx_aisle_side" json:"number"`
	Side   address.Side `gorm:"type:varchar(4);not null;uniqueIndex:idx_aisle_side" json:"side"`
	CellID uint         `gorm:"not null;index;uniqueIndex:idx_aisle_side" json:"cell_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Bays      []Bay      `gorm:"foreignKey:AisleID" json:"bays,omitempty"`
	Locations []Location `gorm:"foreignKey:AisleID" json:"locations,omitempty"`
	Obstacles []Obstacle `gorm:"foreignKey:AisleID" json:"obstacles,omitempty"`
}

// TableName specifies the table name for Aisle model
func (Aisle) TableName() string {
	return "aisles"
}

// AisleNumber returns the validated aisle number
func (a Aisle) AisleNumber() (address.AisleNumber, error) {
	return address.NewAisleNumber(a.Number)
}

// IsOdd reports whether this row is the odd side
func (a Aisle) IsOdd() bool {
	return a.Side.IsOdd()
}

// Label is a human readable name, e.g. "Aisle 016 (Odd)"
func (a Aisle) Label() string {
	return fmt.Sprintf("Aisle %03d (%s)", a.Number, a.Side.Label())
}

// PositionRange returns the positions of this side for an aisle holding
// locationsPerAisle positions across both sides
func (a Aisle) PositionRange(locationsPerAisle int) geometry.PositionRange {
	return geometry.PositionRangeForAisleSide(locationsPerAisle, a.Side)
}

// Bay is a fixed-width group of positions on one aisle side
type Bay struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	Number  int  `gorm:"not null;uniqueIndex:idx_bay_number" json:"number"`
	Width   int  `gorm:"not null" json:"width"`
	AisleID uint `gorm:"not null;index;uniqueIndex:idx_bay_number" json:"aisle_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Locations []Location `gorm:"foreignKey:BayID" json:"locations,omitempty"`
}

// TableName specifies the table name for Bay model
func (Bay) TableName() string {
	return "bays"
}

// Positions lists the position numbers covered by this bay on the given side
func (b Bay) Positions(side address.Side) []int {
	return geometry.PositionsForBay(b.Number, b.Width, side)
}
