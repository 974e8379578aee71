package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/models"
)

type BlockReasonRepository struct {
	db *gorm.DB
}

func NewBlockReasonRepository(db *gorm.DB) *BlockReasonRepository {
	return &BlockReasonRepository{db: db}
}

func (r *BlockReasonRepository) FindByID(ctx context.Context, id uint) (*models.BlockReason, error) {
	var reason models.BlockReason
	if err := r.db.WithContext(ctx).First(&reason, id).Error; err != nil {
		return nil, notFound(err, "block reason id %d", id)
	}
	return &reason, nil
}

func (r *BlockReasonRepository) FindAll(ctx context.Context) ([]models.BlockReason, error) {
	var reasons []models.BlockReason
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&reasons).Error; err != nil {
		return nil, fmt.Errorf("failed to list block reasons: %w", err)
	}
	return reasons, nil
}

func (r *BlockReasonRepository) Create(ctx context.Context, reason *models.BlockReason) error {
	if err := r.db.WithContext(ctx).Create(reason).Error; err != nil {
		return fmt.Errorf("failed to create block reason %s: %w", reason.Code, err)
	}
	return nil
}

// FirstOrCreate inserts reason unless one with the same code exists
func (r *BlockReasonRepository) FirstOrCreate(ctx context.Context, reason *models.BlockReason) error {
	err := r.db.WithContext(ctx).
		Where(models.BlockReason{Code: reason.Code}).
		FirstOrCreate(reason).Error
	if err != nil {
		return fmt.Errorf("failed to seed block reason %s: %w", reason.Code, err)
	}
	return nil
}

type ObstacleRepository struct {
	db *gorm.DB
}

func NewObstacleRepository(db *gorm.DB) *ObstacleRepository {
	return &ObstacleRepository{db: db}
}

func (r *ObstacleRepository) FindByAisleID(ctx context.Context, aisleID uint) ([]models.Obstacle, error) {
	var obstacles []models.Obstacle
	if err := r.db.WithContext(ctx).Where("aisle_id = ?", aisleID).Order("id ASC").Find(&obstacles).Error; err != nil {
		return nil, fmt.Errorf("failed to list obstacles of aisle id %d: %w", aisleID, err)
	}
	return obstacles, nil
}

func (r *ObstacleRepository) Create(ctx context.Context, obstacle *models.Obstacle) error {
	if err := r.db.WithContext(ctx).Create(obstacle).Error; err != nil {
		return fmt.Errorf("failed to create obstacle: %w", err)
	}
	return nil
}
