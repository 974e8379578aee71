package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/provisioning"
)

// Neighbourhood spans used by the location context view
const (
	ContextAisleSpan    = 2
	ContextPositionSpan = 5
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).Preload("BlockReason").First(&loc, id).Error; err != nil {
		return nil, notFound(err, "location id %d", id)
	}
	return &loc, nil
}

func (r *LocationRepository) FindByBayID(ctx context.Context, bayID uint) ([]models.Location, error) {
	var locs []models.Location
	err := r.db.WithContext(ctx).
		Where("bay_id = ?", bayID).
		Order("position ASC, level ASC").
		Find(&locs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list locations of bay id %d: %w", bayID, err)
	}
	return locs, nil
}

func (r *LocationRepository) FindByAisleID(ctx context.Context, aisleID uint) ([]models.Location, error) {
	var locs []models.Location
	err := r.db.WithContext(ctx).
		Where("aisle_id = ?", aisleID).
		Order("position ASC, level ASC").
		Find(&locs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list locations of aisle id %d: %w", aisleID, err)
	}
	return locs, nil
}

// FindByAddress resolves a full address to its location row
func (r *LocationRepository) FindByAddress(ctx context.Context, a address.FullAddress) (*models.Location, error) {
	var loc models.Location
	err := r.db.WithContext(ctx).
		Preload("BlockReason").
		Joins("JOIN aisles ON aisles.id = locations.aisle_id").
		Joins("JOIN cells ON cells.id = aisles.cell_id").
		Where("cells.number = ? AND aisles.number = ? AND aisles.side = ?", a.Cell.Int(), a.Aisle.Int(), a.Side()).
		Where("locations.position = ? AND locations.level = ?", a.Position.Int(), a.Level.Int()).
		First(&loc).Error
	if err != nil {
		return nil, notFound(err, "location %s", a)
	}
	return &loc, nil
}

// Addresses renders the full address of every location of a cell, ordered
// by aisle, side, position and level
func (r *LocationRepository) Addresses(ctx context.Context, cellNumber int) ([]AddressRow, error) {
	var rows []AddressRow
	err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Select("locations.id AS location_id, cells.number AS cell, aisles.number AS aisle, aisles.side AS side, " +
			"bays.number AS bay, locations.position, locations.level, locations.is_picking, locations.status, locations.block_reason_id").
		Joins("JOIN aisles ON aisles.id = locations.aisle_id").
		Joins("JOIN cells ON cells.id = aisles.cell_id").
		Joins("JOIN bays ON bays.id = locations.bay_id").
		Where("cells.number = ?", cellNumber).
		Order("aisles.number ASC, aisles.side DESC, locations.position ASC, locations.level ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses of cell %d: %w", cellNumber, err)
	}
	return rows, nil
}

// AddressRow is a flattened location with its parent numbers
type AddressRow struct {
	LocationID    uint
	Cell          int
	Aisle         int
	Side          address.Side
	Bay           int
	Position      int
	Level         int
	IsPicking     bool
	Status        models.LocationStatus
	BlockReasonID *uint
}

// FullAddress validates the row's numbers into an address
func (row AddressRow) FullAddress() (address.FullAddress, error) {
	return address.New(row.Cell, row.Aisle, row.Position, row.Level)
}

// Update persists the mutable state of a location: status and block reason
func (r *LocationRepository) Update(ctx context.Context, loc *models.Location) error {
	res := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", loc.ID).
		Updates(map[string]interface{}{
			"status":          loc.Status,
			"block_reason_id": loc.BlockReasonID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update location id %d: %w", loc.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("location id %d: %w", loc.ID, ErrNotFound)
	}
	return nil
}

func (r *LocationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Location{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete location id %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("location id %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateMany inserts locations in order, batchSize rows per statement, and
// stops at the first failing batch. Batches already written stay written
// unless the repository runs inside a transaction.
func (r *LocationRepository) CreateMany(ctx context.Context, locations []models.Location, batchSize int) error {
	offset := 0
	for i, batch := range provisioning.Batches(locations, batchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.db.WithContext(ctx).Create(&batch).Error; err != nil {
			return &provisioning.BatchError{Batch: i, Offset: offset, Size: len(batch), Err: err}
		}
		offset += len(batch)
	}
	return nil
}

// Neighbourhood loads the cell around a, limited to aisles within
// ContextAisleSpan and positions within ContextPositionSpan of it
func (r *LocationRepository) Neighbourhood(ctx context.Context, a address.FullAddress) (*models.Cell, error) {
	aisle, position := a.Aisle.Int(), a.Position.Int()

	var cell models.Cell
	err := r.db.WithContext(ctx).
		Preload("Aisles", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("number BETWEEN ? AND ?", max(1, aisle-ContextAisleSpan), aisle+ContextAisleSpan).
				Order("number ASC, side ASC")
		}).
		Preload("Aisles.Locations", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("position BETWEEN ? AND ?", max(1, position-ContextPositionSpan), position+ContextPositionSpan).
				Order("position ASC, level ASC")
		}).
		Where("number = ?", a.Cell.Int()).
		First(&cell).Error
	if err != nil {
		return nil, notFound(err, "cell %s", a.Cell)
	}
	return &cell, nil
}
