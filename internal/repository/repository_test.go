package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/config"
	"github.com/xelth-com/eckslotgo/internal/database"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/provisioning"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:", LogLevel: config.LogSilent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return db.DB
}

func testCell() provisioning.CellConfig {
	return provisioning.CellConfig{
		CellNumber:        1,
		AisleStart:        1,
		AisleEnd:          3,
		StartLocationType: provisioning.LocationsOdd,
		EndLocationType:   provisioning.LocationsEven,
		LocationsPerAisle: 10,
		LevelCount:        2,
		HasPicking:        true,
	}
}

func provisionTestCell(t *testing.T, db *gorm.DB) *provisioning.Result {
	t.Helper()
	result, err := provisioning.NewProvisioner(NewGormStore(db), provisioning.WithBatchSize(7)).
		Provision(context.Background(), testCell())
	require.NoError(t, err)
	return result
}

func mustParse(t *testing.T, s string) address.FullAddress {
	t.Helper()
	a, err := address.Parse(s)
	require.NoError(t, err)
	return a
}

func TestProvisionThroughGormStore(t *testing.T) {
	db := newTestDB(t)
	result := provisionTestCell(t, db)
	assert.Equal(t, 40, result.Locations)
	assert.Equal(t, 6, result.Batches)

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.Equal(t, int64(40), count)

	require.NoError(t, db.Model(&models.Bay{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)

	cells := NewCellRepository(db)
	cell, err := cells.FindByNumber(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, cell.AislesCount)
	assert.Equal(t, 5, cell.LocationsPerAisle)
	assert.Equal(t, 40, cell.TotalLocations())

	_, err = provisioning.NewProvisioner(NewGormStore(db)).Provision(context.Background(), testCell())
	assert.ErrorIs(t, err, provisioning.ErrCellExists)
}

func TestProvisionRollsBackFailedBatch(t *testing.T) {
	db := newTestDB(t)

	// a trigger rejects the 25th location so the fourth batch fails mid-run
	require.NoError(t, db.Exec(`CREATE TRIGGER reject_location BEFORE INSERT ON locations
		WHEN (SELECT COUNT(*) FROM locations) >= 24
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`).Error)

	_, err := provisioning.NewProvisioner(NewGormStore(db), provisioning.WithBatchSize(8)).
		Provision(context.Background(), testCell())
	require.Error(t, err)

	var batchErr *provisioning.BatchError
	require.True(t, errors.As(err, &batchErr), "expected *BatchError, got %v", err)
	assert.Equal(t, 3, batchErr.Batch)
	assert.Equal(t, 24, batchErr.Offset)

	for _, table := range []interface{}{&models.Cell{}, &models.Aisle{}, &models.Bay{}, &models.Location{}} {
		var count int64
		require.NoError(t, db.Model(table).Count(&count).Error)
		assert.Zero(t, count, "%T rows left after rollback", table)
	}

	runs, err := NewRunRepository(db).FindRecent(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "rejected")
}

func TestProvisionCellWithManyBays(t *testing.T) {
	if testing.Short() {
		t.Skip("writes 50000 locations")
	}
	db := newTestDB(t)

	// 200 aisle sides x 63 bays is more rows than one SQLite insert can bind
	cfg := provisioning.CellConfig{
		CellNumber:        2,
		AisleStart:        1,
		AisleEnd:          100,
		StartLocationType: provisioning.LocationsBoth,
		EndLocationType:   provisioning.LocationsBoth,
		LocationsPerAisle: 500,
		LevelCount:        1,
	}
	result, err := provisioning.NewProvisioner(NewGormStore(db)).Provision(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 12600, result.Bays)
	assert.Equal(t, 50000, result.Locations)

	var count int64
	require.NoError(t, db.Model(&models.Bay{}).Count(&count).Error)
	assert.Equal(t, int64(12600), count)

	// every location points at a bay of its own aisle side
	require.NoError(t, db.Model(&models.Location{}).
		Joins("JOIN bays ON bays.id = locations.bay_id").
		Where("bays.aisle_id <> locations.aisle_id").
		Count(&count).Error)
	assert.Zero(t, count)
}

// staleStore misses a cell created after its existence check, as a
// concurrent request would
type staleStore struct {
	*GormStore
}

func (staleStore) CellExists(ctx context.Context, number int) (bool, error) {
	return false, nil
}

func TestProvisionLosingRaceReportsCellExists(t *testing.T) {
	db := newTestDB(t)
	provisionTestCell(t, db)

	_, err := provisioning.NewProvisioner(staleStore{NewGormStore(db)}).Provision(context.Background(), testCell())
	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrCellExists)

	var count int64
	require.NoError(t, db.Model(&models.Cell{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunHistory(t *testing.T) {
	db := newTestDB(t)
	result := provisionTestCell(t, db)
	runs := NewRunRepository(db)
	ctx := context.Background()

	run, err := runs.FindByRunID(ctx, result.RunID.String())
	require.NoError(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, 40, run.Locations)
	assert.Equal(t, 6, run.Batches)
	assert.Contains(t, string(run.Config), `"cellNumber":1`)

	_, err = runs.FindByRunID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	recent, err := runs.FindRecent(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestFindByAddress(t *testing.T) {
	db := newTestDB(t)
	provisionTestCell(t, db)
	locations := NewLocationRepository(db)
	ctx := context.Background()

	loc, err := locations.FindByAddress(ctx, mustParse(t, "1-002-0009-10"))
	require.NoError(t, err)
	assert.Equal(t, 9, loc.Position)
	assert.Equal(t, 10, loc.Level)
	assert.False(t, loc.PickingEnabled)

	aisle, err := NewAisleRepository(db).FindByID(ctx, loc.AisleID)
	require.NoError(t, err)
	assert.Equal(t, address.Odd, aisle.Side)
	assert.Equal(t, 2, aisle.Number)

	ground, err := locations.FindByAddress(ctx, mustParse(t, "1-003-0010-00"))
	require.NoError(t, err)
	assert.True(t, ground.PickingEnabled)

	// aisle 1 only has an odd side
	_, err = locations.FindByAddress(ctx, mustParse(t, "1-001-0002-00"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = locations.FindByAddress(ctx, mustParse(t, "2-001-0001-00"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocationUpdateBlockState(t *testing.T) {
	db := newTestDB(t)
	provisionTestCell(t, db)
	ctx := context.Background()

	reasons := NewBlockReasonRepository(db)
	pillar := &models.BlockReason{Code: "PILLAR", Name: "Concrete Pillar", Permanent: true}
	require.NoError(t, reasons.Create(ctx, pillar))

	locations := NewLocationRepository(db)
	loc, err := locations.FindByAddress(ctx, mustParse(t, "1-001-0001-00"))
	require.NoError(t, err)

	require.NoError(t, loc.Block(pillar.ID))
	require.NoError(t, locations.Update(ctx, loc))

	reloaded, err := locations.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsBlocked())
	assert.Equal(t, models.StatusBlocked, reloaded.Status)
	require.NotNil(t, reloaded.BlockReason)
	assert.Equal(t, "Concrete Pillar (Permanent)", reloaded.BlockReason.DisplayName())

	require.NoError(t, reloaded.Unblock())
	require.NoError(t, locations.Update(ctx, reloaded))

	reloaded, err = locations.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsBlocked())
	assert.True(t, reloaded.IsAvailable())

	assert.ErrorIs(t, locations.Update(ctx, &models.Location{ID: 9999}), ErrNotFound)
}

func TestAisleSidesAndBays(t *testing.T) {
	db := newTestDB(t)
	result := provisionTestCell(t, db)
	ctx := context.Background()

	sides, err := NewAisleRepository(db).FindSides(ctx, result.Cell.ID, 2)
	require.NoError(t, err)
	require.Len(t, sides, 2)
	assert.Equal(t, address.Odd, sides[0].Side)
	assert.Equal(t, address.Even, sides[1].Side)

	require.Len(t, sides[1].Bays, 2)
	var positions []int
	for _, l := range sides[1].Bays[0].Locations {
		if l.Level == 0 {
			positions = append(positions, l.Position)
		}
	}
	assert.Equal(t, []int{2, 4, 6, 8}, positions)

	bays, err := NewBayRepository(db).FindByAisleID(ctx, sides[0].ID)
	require.NoError(t, err)
	require.Len(t, bays, 2)
	assert.Equal(t, []int{9}, bays[1].Positions(address.Odd)[:1])

	locs, err := NewLocationRepository(db).FindByBayID(ctx, bays[1].ID)
	require.NoError(t, err)
	assert.Len(t, locs, 2)

	_, err = NewAisleRepository(db).FindSides(ctx, result.Cell.ID, 40)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNeighbourhood(t *testing.T) {
	db := newTestDB(t)
	provisionTestCell(t, db)

	cell, err := NewLocationRepository(db).Neighbourhood(context.Background(), mustParse(t, "1-001-0001-00"))
	require.NoError(t, err)

	// aisles 1..3 are all within two of aisle 1; positions 1..6 only
	require.Len(t, cell.Aisles, 4)
	for _, a := range cell.Aisles {
		for _, l := range a.Locations {
			assert.LessOrEqual(t, l.Position, 6)
		}
	}
	assert.Len(t, cell.Aisles[0].Locations, 6) // aisle 1 odd: positions 1,3,5 x 2 levels
}

func TestAddressesAndDelete(t *testing.T) {
	db := newTestDB(t)
	provisionTestCell(t, db)
	ctx := context.Background()

	rows, err := NewLocationRepository(db).Addresses(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 40)

	first, err := rows[0].FullAddress()
	require.NoError(t, err)
	assert.Equal(t, "1-001-0001-00", first.String())
	assert.Equal(t, address.Odd, rows[0].Side)
	assert.True(t, rows[0].IsPicking)

	aisle, err := NewAisleRepository(db).FindByID(ctx, 1)
	require.NoError(t, err)
	obstacles := NewObstacleRepository(db)
	require.NoError(t, obstacles.Create(ctx, &models.Obstacle{Type: "pillar", Name: "Column C4", AisleID: aisle.ID}))

	cells := NewCellRepository(db)
	require.NoError(t, cells.Delete(ctx, 1))

	exists, err := cells.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	for _, table := range []interface{}{&models.Aisle{}, &models.Bay{}, &models.Location{}, &models.Obstacle{}} {
		var count int64
		require.NoError(t, db.Model(table).Count(&count).Error)
		assert.Zero(t, count, "%T rows left after delete", table)
	}

	assert.ErrorIs(t, cells.Delete(ctx, 1), ErrNotFound)
}

func TestCreateManyReportsFailedBatch(t *testing.T) {
	db := newTestDB(t)
	result := provisionTestCell(t, db)
	ctx := context.Background()

	bays, err := NewBayRepository(db).FindByAisleID(ctx, 1)
	require.NoError(t, err)

	fresh := func(position int) models.Location {
		p, _ := address.NewPositionNumber(position)
		l, _ := address.NewLevelNumber(50)
		return models.NewLocation(p, l, 1, bays[0].ID, false)
	}
	// the third row duplicates the first, failing the second batch
	locs := []models.Location{fresh(101), fresh(103), fresh(101)}

	err = NewLocationRepository(db).CreateMany(ctx, locs, 2)
	var batchErr *provisioning.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Batch)
	assert.Equal(t, 2, batchErr.Offset)
	assert.Equal(t, 1, batchErr.Size)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.Location{}).Count(&count).Error)
	assert.Equal(t, int64(result.Locations+2), count, "the first batch is committed outside a transaction")
}

func TestReferenceData(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reasons := NewBlockReasonRepository(db)

	temp := &models.BlockReason{Code: "TEMP", Name: "Temporary Storage"}
	require.NoError(t, reasons.FirstOrCreate(ctx, temp))
	again := &models.BlockReason{Code: "TEMP", Name: "ignored"}
	require.NoError(t, reasons.FirstOrCreate(ctx, again))
	assert.Equal(t, temp.ID, again.ID)
	assert.Equal(t, "Temporary Storage", again.Name)

	all, err := reasons.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = reasons.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
