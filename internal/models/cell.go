package models

import (
	"time"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/geometry"
)

// Cell represents a building subdivision holding a block of aisles.
// Dimensions are fixed when the cell is provisioned.
type Cell struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Number int  `gorm:"not null;uniqueIndex" json:"number"`

	// AislesCount counts aisle sides: an aisle exposing both sides counts twice
	AislesCount int `gorm:"not null" json:"aisles_count"`
	// LocationsPerAisle is the number of positions on one aisle side
	LocationsPerAisle int  `gorm:"not null" json:"locations_per_aisle"`
	LevelsPerLocation int  `gorm:"not null" json:"levels_per_location"`
	HasPicking        bool `gorm:"default:false" json:"has_picking"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Aisles []Aisle `gorm:"foreignKey:CellID" json:"aisles,omitempty"`
}

// TableName specifies the table name for Cell model
func (Cell) TableName() string {
	return "cells"
}

// CellNumber returns the validated cell number
func (c Cell) CellNumber() (address.CellNumber, error) {
	return address.NewCellNumber(c.Number)
}

// TotalLocations is the slot capacity of the cell
func (c Cell) TotalLocations() int {
	return c.AislesCount * c.LocationsPerAisle * c.LevelsPerLocation
}

// AisleCount returns the number of aisle sides in this cell
func (c Cell) AisleCount() int {
	return c.AislesCount
}

// ValidLevels lists the level values used by every location of the cell
func (c Cell) ValidLevels() []int {
	return geometry.ValidLevels(c.LevelsPerLocation)
}
