package models

import "time"

// BlockReason describes why a location cannot be used, e.g. a structural pillar
type BlockReason struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	Permanent   bool      `gorm:"default:false" json:"permanent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for BlockReason model
func (BlockReason) TableName() string {
	return "block_reasons"
}

// IsPermanent reports whether the block can never be lifted (pillars, fire equipment)
func (b BlockReason) IsPermanent() bool {
	return b.Permanent
}

// DisplayName appends the permanence, e.g. "Concrete Pillar (Permanent)"
func (b BlockReason) DisplayName() string {
	if b.IsPermanent() {
		return b.Name + " (Permanent)"
	}
	return b.Name + " (Temporary)"
}

// Obstacle is a physical obstruction in an aisle. Descriptive only.
type Obstacle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"type:varchar(50);not null" json:"type"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	AisleID     uint      `gorm:"not null;index" json:"aisle_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Obstacle model
func (Obstacle) TableName() string {
	return "obstacles"
}

// DisplayName returns the obstacle name
func (o Obstacle) DisplayName() string {
	return o.Name
}
