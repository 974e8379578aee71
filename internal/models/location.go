package models

import (
	"errors"
	"time"

	"github.com/xelth-com/eckslotgo/internal/address"
)

var (
	// ErrAlreadyBlocked is returned when blocking a location that already has a block reason
	ErrAlreadyBlocked = errors.New("location is already blocked")
	// ErrNotBlocked is returned when unblocking a location without a block reason
	ErrNotBlocked = errors.New("location is not blocked")
)

// LocationStatus is the occupancy state of a storage slot
type LocationStatus string

const (
	StatusAvailable LocationStatus = "available"
	StatusOccupied  LocationStatus = "occupied"
	StatusBlocked   LocationStatus = "blocked"
)

// Location is a single storage slot: one position at one level of an aisle side.
// Position and level never change after provisioning; only status and block
// state do.
type Location struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	Position int  `gorm:"not null;uniqueIndex:idx_location_slot" json:"position"`
	Level    int  `gorm:"not null;uniqueIndex:idx_location_slot" json:"level"`
	// PickingEnabled is set at provisioning for level 0 when the cell has a picking level
	PickingEnabled bool           `gorm:"column:is_picking;default:false" json:"is_picking"`
	Status         LocationStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	AisleID        uint           `gorm:"not null;index;uniqueIndex:idx_location_slot" json:"aisle_id"`
	BayID          uint           `gorm:"not null;index" json:"bay_id"`
	BlockReasonID  *uint          `gorm:"index" json:"block_reason_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	BlockReason *BlockReason `gorm:"foreignKey:BlockReasonID" json:"block_reason,omitempty"`
}

// TableName specifies the table name for Location model
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates an available, unblocked location
func NewLocation(position address.PositionNumber, level address.LevelNumber, aisleID, bayID uint, picking bool) Location {
	return Location{
		Position:       position.Int(),
		Level:          level.Int(),
		PickingEnabled: picking,
		Status:         StatusAvailable,
		AisleID:        aisleID,
		BayID:          bayID,
	}
}

// IsPicking reports whether the location sits on the ground (picking) level
func (l *Location) IsPicking() bool {
	level, err := address.NewLevelNumber(l.Level)
	if err != nil {
		return false
	}
	return level.IsPicking()
}

// IsBlocked reports whether a block reason is attached
func (l *Location) IsBlocked() bool {
	return l.BlockReasonID != nil
}

// IsAvailable reports whether the location can receive products
func (l *Location) IsAvailable() bool {
	return l.Status == StatusAvailable && !l.IsBlocked()
}

// Block attaches a block reason and marks the location blocked
func (l *Location) Block(reasonID uint) error {
	if l.BlockReasonID != nil {
		return ErrAlreadyBlocked
	}
	l.BlockReasonID = &reasonID
	l.Status = StatusBlocked
	return nil
}

// Unblock clears the block reason and makes the location available again
func (l *Location) Unblock() error {
	if l.BlockReasonID == nil {
		return ErrNotBlocked
	}
	l.BlockReasonID = nil
	l.BlockReason = nil
	l.Status = StatusAvailable
	return nil
}

// FullAddress combines the location with the parent cell and aisle numbers
func (l *Location) FullAddress(cell address.CellNumber, aisle address.AisleNumber) (address.FullAddress, error) {
	position, err := address.NewPositionNumber(l.Position)
	if err != nil {
		return address.FullAddress{}, err
	}
	level, err := address.NewLevelNumber(l.Level)
	if err != nil {
		return address.FullAddress{}, err
	}
	return address.FullAddress{Cell: cell, Aisle: aisle, Position: position, Level: level}, nil
}

// FormatFullAddress renders "cell-aisle-position-level", e.g. "4-016-0026-30"
func (l *Location) FormatFullAddress(cell address.CellNumber, aisle address.AisleNumber) (string, error) {
	a, err := l.FullAddress(cell, aisle)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}
