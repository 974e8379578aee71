package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/models"
)

// RunRepository keeps the provisioning history
type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(ctx context.Context, run *models.ProvisioningRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.RunID, err)
	}
	return nil
}

func (r *RunRepository) FindByRunID(ctx context.Context, runID string) (*models.ProvisioningRun, error) {
	var run models.ProvisioningRun
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, notFound(err, "run %s", runID)
	}
	return &run, nil
}

// FindRecent lists the newest runs first; cellNumber 0 means every cell
func (r *RunRepository) FindRecent(ctx context.Context, cellNumber, limit int) ([]models.ProvisioningRun, error) {
	q := r.db.WithContext(ctx).Order("id DESC")
	if cellNumber > 0 {
		q = q.Where("cell_number = ?", cellNumber)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var runs []models.ProvisioningRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return runs, nil
}
