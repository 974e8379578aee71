package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/models"
)

type CellRepository struct {
	db *gorm.DB
}

func NewCellRepository(db *gorm.DB) *CellRepository {
	return &CellRepository{db: db}
}

func (r *CellRepository) FindByID(ctx context.Context, id uint) (*models.Cell, error) {
	var cell models.Cell
	if err := r.db.WithContext(ctx).First(&cell, id).Error; err != nil {
		return nil, notFound(err, "cell id %d", id)
	}
	return &cell, nil
}

func (r *CellRepository) FindByNumber(ctx context.Context, number int) (*models.Cell, error) {
	var cell models.Cell
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&cell).Error; err != nil {
		return nil, notFound(err, "cell %d", number)
	}
	return &cell, nil
}

// FindWithAisles loads a cell with its aisle sides ordered by number and side
func (r *CellRepository) FindWithAisles(ctx context.Context, number int) (*models.Cell, error) {
	var cell models.Cell
	err := r.db.WithContext(ctx).
		Preload("Aisles", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("number ASC, side ASC")
		}).
		Where("number = ?", number).
		First(&cell).Error
	if err != nil {
		return nil, notFound(err, "cell %d", number)
	}
	return &cell, nil
}

func (r *CellRepository) FindAll(ctx context.Context) ([]models.Cell, error) {
	var cells []models.Cell
	if err := r.db.WithContext(ctx).Order("number ASC").Find(&cells).Error; err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}
	return cells, nil
}

func (r *CellRepository) Exists(ctx context.Context, number int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Cell{}).Where("number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check cell %d: %w", number, err)
	}
	return count > 0, nil
}

// Delete removes a cell with its locations, bays, obstacles and aisles in
// one transaction
func (r *CellRepository) Delete(ctx context.Context, number int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cell models.Cell
		if err := tx.Where("number = ?", number).First(&cell).Error; err != nil {
			return notFound(err, "cell %d", number)
		}

		aisles := tx.Model(&models.Aisle{}).Select("id").Where("cell_id = ?", cell.ID)

		if err := tx.Where("aisle_id IN (?)", aisles).Delete(&models.Location{}).Error; err != nil {
			return fmt.Errorf("failed to delete locations: %w", err)
		}
		if err := tx.Where("aisle_id IN (?)", aisles).Delete(&models.Bay{}).Error; err != nil {
			return fmt.Errorf("failed to delete bays: %w", err)
		}
		if err := tx.Where("aisle_id IN (?)", aisles).Delete(&models.Obstacle{}).Error; err != nil {
			return fmt.Errorf("failed to delete obstacles: %w", err)
		}
		if err := tx.Where("cell_id = ?", cell.ID).Delete(&models.Aisle{}).Error; err != nil {
			return fmt.Errorf("failed to delete aisles: %w", err)
		}
		if err := tx.Delete(&cell).Error; err != nil {
			return fmt.Errorf("failed to delete cell: %w", err)
		}
		return nil
	})
}
