package provisioning

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelth-com/eckslotgo/internal/models"
)

var errDiskFull = errors.New("disk full")

// memStore keeps records in slices; Transaction works on a copy and only
// publishes it when fn succeeds
type memStore struct {
	nextID    uint
	cells     []models.Cell
	aisles    []models.Aisle
	bays      []models.Bay
	locations []models.Location

	failBatch   int // 1-based CreateLocations call to fail, 0 never
	batchCalls  int
	batchSizes  []int
	onLocations func()
	runs        []models.ProvisioningRun
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	tx := &memStore{
		nextID:      m.nextID,
		cells:       append([]models.Cell(nil), m.cells...),
		aisles:      append([]models.Aisle(nil), m.aisles...),
		bays:        append([]models.Bay(nil), m.bays...),
		locations:   append([]models.Location(nil), m.locations...),
		failBatch:   m.failBatch,
		onLocations: m.onLocations,
	}
	err := fn(tx)
	m.batchCalls += tx.batchCalls
	m.batchSizes = append(m.batchSizes, tx.batchSizes...)
	if err != nil {
		return err
	}
	m.nextID, m.cells, m.aisles, m.bays, m.locations = tx.nextID, tx.cells, tx.aisles, tx.bays, tx.locations
	return nil
}

func (m *memStore) CellExists(ctx context.Context, number int) (bool, error) {
	for _, c := range m.cells {
		if c.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateCell(ctx context.Context, cell *models.Cell) error {
	cell.ID = m.id()
	m.cells = append(m.cells, *cell)
	return nil
}

func (m *memStore) CreateAisles(ctx context.Context, aisles []models.Aisle) error {
	for i := range aisles {
		aisles[i].ID = m.id()
	}
	m.aisles = append(m.aisles, aisles...)
	return nil
}

func (m *memStore) CreateBays(ctx context.Context, bays []models.Bay) error {
	for i := range bays {
		bays[i].ID = m.id()
	}
	m.bays = append(m.bays, bays...)
	return nil
}

func (m *memStore) CreateLocations(ctx context.Context, locations []models.Location) error {
	m.batchCalls++
	m.batchSizes = append(m.batchSizes, len(locations))
	if m.onLocations != nil {
		m.onLocations()
	}
	if m.batchCalls == m.failBatch {
		return errDiskFull
	}
	for i := range locations {
		locations[i].ID = m.id()
	}
	m.locations = append(m.locations, locations...)
	return nil
}

func (m *memStore) RecordRun(ctx context.Context, run *models.ProvisioningRun) error {
	run.ID = m.id()
	m.runs = append(m.runs, *run)
	return nil
}

type progressLog struct {
	mu     sync.Mutex
	events []Progress
}

func (l *progressLog) Report(p Progress) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, p)
}

func (l *progressLog) stages() []Stage {
	var out []Stage
	for _, e := range l.events {
		out = append(out, e.Stage)
	}
	return out
}

func TestProvisionEndToEnd(t *testing.T) {
	store := &memStore{}
	progress := &progressLog{}
	p := NewProvisioner(store, WithBatchSize(16), WithProgress(progress))

	result, err := p.Provision(context.Background(), sampleConfig())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Aisles)
	assert.Equal(t, 8, result.Bays)
	assert.Equal(t, 40, result.Locations)
	assert.Equal(t, 3, result.Batches)
	assert.Equal(t, []int{16, 16, 8}, store.batchSizes)
	assert.Equal(t, 4, result.Cell.AislesCount)
	assert.NotZero(t, result.Cell.ID)

	require.Len(t, store.cells, 1)
	require.Len(t, store.aisles, 4)
	require.Len(t, store.bays, 8)
	require.Len(t, store.locations, 40)

	aisleIDs := make(map[uint]models.Aisle)
	for _, a := range store.aisles {
		assert.Equal(t, store.cells[0].ID, a.CellID)
		aisleIDs[a.ID] = a
	}
	bayAisle := make(map[uint]uint)
	for _, b := range store.bays {
		bayAisle[b.ID] = b.AisleID
	}

	picking := 0
	for _, l := range store.locations {
		aisle, ok := aisleIDs[l.AisleID]
		require.True(t, ok, "location points at an unknown aisle")
		assert.Equal(t, l.AisleID, bayAisle[l.BayID], "bay belongs to the same aisle")
		assert.Equal(t, aisle.Side.IsOdd(), l.Position%2 == 1, "position parity follows the side")
		assert.Equal(t, models.StatusAvailable, l.Status)
		if l.PickingEnabled {
			assert.Equal(t, 0, l.Level)
			picking++
		}
	}
	assert.Equal(t, 20, picking)

	stages := progress.stages()
	assert.Equal(t, StagePlanned, stages[0])
	assert.Equal(t, StageCompleted, stages[len(stages)-1])
	assert.Contains(t, stages, StageLocations)
	last := progress.events[len(progress.events)-1]
	assert.Equal(t, 40, last.Done)
	assert.Equal(t, result.RunID.String(), last.RunID)

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.Equal(t, models.RunCompleted, run.Status)
	assert.Equal(t, result.RunID.String(), run.RunID)
	assert.Equal(t, 40, run.Locations)
	assert.Contains(t, string(run.Config), `"locationsPerAisle":10`)
}

func TestProvisionRejectsExistingCell(t *testing.T) {
	store := &memStore{}
	p := NewProvisioner(store)

	_, err := p.Provision(context.Background(), sampleConfig())
	require.NoError(t, err)

	_, err = p.Provision(context.Background(), sampleConfig())
	assert.ErrorIs(t, err, ErrCellExists)
	assert.Len(t, store.cells, 1)
	assert.Len(t, store.locations, 40)
}

func TestProvisionRollsBackFailedBatch(t *testing.T) {
	store := &memStore{failBatch: 2}
	progress := &progressLog{}
	p := NewProvisioner(store, WithBatchSize(10), WithProgress(progress))

	_, err := p.Provision(context.Background(), sampleConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Batch)
	assert.Equal(t, 10, batchErr.Offset)
	assert.Equal(t, 10, batchErr.Size)

	assert.Equal(t, 2, store.batchCalls, "no batch is attempted after a failure")
	assert.Empty(t, store.cells)
	assert.Empty(t, store.aisles)
	assert.Empty(t, store.bays)
	assert.Empty(t, store.locations)

	stages := progress.stages()
	assert.Equal(t, StageFailed, stages[len(stages)-1])

	require.Len(t, store.runs, 1, "failed runs are recorded outside the rolled back transaction")
	assert.Equal(t, models.RunFailed, store.runs[0].Status)
	assert.Contains(t, store.runs[0].Error, "disk full")
	assert.Zero(t, store.runs[0].Locations)
}

func TestProvisionInvalidConfigWritesNothing(t *testing.T) {
	store := &memStore{}
	cfg := sampleConfig()
	cfg.AisleEnd = 1000

	_, err := NewProvisioner(store).Provision(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Empty(t, store.cells)
	assert.Zero(t, store.batchCalls)
	assert.Empty(t, store.runs, "invalid configs never start a run")
}

func TestProvisionStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &memStore{onLocations: cancel}
	_, err := NewProvisioner(store, WithBatchSize(10)).Provision(ctx, sampleConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, store.batchCalls)
	assert.Empty(t, store.locations)
}

func TestProvisionSeedSizedCell(t *testing.T) {
	cfg := CellConfig{
		CellNumber:        1,
		AisleStart:        1,
		AisleEnd:          18,
		StartLocationType: LocationsBoth,
		EndLocationType:   LocationsBoth,
		LocationsPerAisle: 104,
		LevelCount:        5,
		HasPicking:        true,
	}
	store := &memStore{}
	result, err := NewProvisioner(store).Provision(context.Background(), cfg)
	require.NoError(t, err)

	// 36 sides x 52 positions x 5 levels
	assert.Equal(t, 9360, result.Locations)
	assert.Equal(t, 10, result.Batches)
	assert.Equal(t, 36*13, result.Bays)
}
