package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/models"
)

type AisleRepository struct {
	db *gorm.DB
}

func NewAisleRepository(db *gorm.DB) *AisleRepository {
	return &AisleRepository{db: db}
}

func (r *AisleRepository) FindByID(ctx context.Context, id uint) (*models.Aisle, error) {
	var aisle models.Aisle
	if err := r.db.WithContext(ctx).First(&aisle, id).Error; err != nil {
		return nil, notFound(err, "aisle id %d", id)
	}
	return &aisle, nil
}

func (r *AisleRepository) FindByCellID(ctx context.Context, cellID uint) ([]models.Aisle, error) {
	var aisles []models.Aisle
	err := r.db.WithContext(ctx).
		Where("cell_id = ?", cellID).
		Order("number ASC, side ASC").
		Find(&aisles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list aisles of cell id %d: %w", cellID, err)
	}
	return aisles, nil
}

// FindSides loads the existing sides of one aisle with bays and locations
func (r *AisleRepository) FindSides(ctx context.Context, cellID uint, number int) ([]models.Aisle, error) {
	var aisles []models.Aisle
	err := r.db.WithContext(ctx).
		Preload("Bays", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("number ASC")
		}).
		Preload("Bays.Locations", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, level ASC")
		}).
		Preload("Bays.Locations.BlockReason").
		Preload("Obstacles").
		Where("cell_id = ? AND number = ?", cellID, number).
		Order("side DESC").
		Find(&aisles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load aisle %03d: %w", number, err)
	}
	if len(aisles) == 0 {
		return nil, fmt.Errorf("aisle %03d: %w", number, ErrNotFound)
	}
	return aisles, nil
}

type BayRepository struct {
	db *gorm.DB
}

func NewBayRepository(db *gorm.DB) *BayRepository {
	return &BayRepository{db: db}
}

func (r *BayRepository) FindByID(ctx context.Context, id uint) (*models.Bay, error) {
	var bay models.Bay
	if err := r.db.WithContext(ctx).First(&bay, id).Error; err != nil {
		return nil, notFound(err, "bay id %d", id)
	}
	return &bay, nil
}

func (r *BayRepository) FindByAisleID(ctx context.Context, aisleID uint) ([]models.Bay, error) {
	var bays []models.Bay
	if err := r.db.WithContext(ctx).Where("aisle_id = ?", aisleID).Order("number ASC").Find(&bays).Error; err != nil {
		return nil, fmt.Errorf("failed to list bays of aisle id %d: %w", aisleID, err)
	}
	return bays, nil
}
