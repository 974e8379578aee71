package models

import (
	"time"

	"gorm.io/datatypes"
)

// RunStatus is the outcome of a provisioning run
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// ProvisioningRun records one provisioning attempt with the configuration it
// was given. Failed runs are kept even though their cell was rolled back.
type ProvisioningRun struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RunID      string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"run_id"`
	CellNumber int            `gorm:"not null;index" json:"cell_number"`
	Status     RunStatus      `gorm:"type:varchar(16);not null" json:"status"`
	Config     datatypes.JSON `json:"config"`
	Locations  int            `json:"locations"`
	Batches    int            `json:"batches"`
	Error      string         `json:"error,omitempty"`
	DurationMs int64          `json:"duration_ms"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName specifies the table name for ProvisioningRun model
func (ProvisioningRun) TableName() string {
	return "provisioning_runs"
}

// Succeeded reports whether the run created its cell
func (r ProvisioningRun) Succeeded() bool {
	return r.Status == RunCompleted
}
