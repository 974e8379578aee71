package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/provisioning"
)

// GormStore persists provisioning output through GORM
type GormStore struct {
	db *gorm.DB
}

var _ provisioning.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx provisioning.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) CellExists(ctx context.Context, number int) (bool, error) {
	return NewCellRepository(s.db).Exists(ctx, number)
}

// CreateCell inserts the cell row. A concurrent provisioning of the same
// number that won the race shows up as provisioning.ErrCellExists.
func (s *GormStore) CreateCell(ctx context.Context, cell *models.Cell) error {
	err := s.db.WithContext(ctx).Omit("Aisles").Create(cell).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %d", provisioning.ErrCellExists, cell.Number)
	}
	return err
}

func (s *GormStore) CreateAisles(ctx context.Context, aisles []models.Aisle) error {
	if len(aisles) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Omit("Bays", "Locations", "Obstacles").Create(&aisles).Error; err != nil {
		return err
	}
	return nil
}

func (s *GormStore) CreateBays(ctx context.Context, bays []models.Bay) error {
	if len(bays) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Omit("Locations").Create(&bays).Error
}

// CreateLocations writes one batch; batching is driven by the provisioner
func (s *GormStore) CreateLocations(ctx context.Context, locations []models.Location) error {
	if len(locations) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Omit("BlockReason").Create(&locations).Error; err != nil {
		return fmt.Errorf("insert %d locations: %w", len(locations), err)
	}
	return nil
}

func (s *GormStore) RecordRun(ctx context.Context, run *models.ProvisioningRun) error {
	return NewRunRepository(s.db).Create(ctx, run)
}
