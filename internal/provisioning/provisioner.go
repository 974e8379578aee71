package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/xelth-com/eckslotgo/internal/models"
)

// ErrCellExists is returned when the requested cell number is already provisioned
var ErrCellExists = errors.New("cell already exists")

// Store persists a provisioned cell. Transaction must run fn against a
// store bound to a single transaction and roll back when fn fails.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error
	CellExists(ctx context.Context, number int) (bool, error)
	CreateCell(ctx context.Context, cell *models.Cell) error
	// Create* fill in the IDs of the passed records
	CreateAisles(ctx context.Context, aisles []models.Aisle) error
	CreateBays(ctx context.Context, bays []models.Bay) error
	CreateLocations(ctx context.Context, locations []models.Location) error
	// RecordRun is called outside the transaction, for failed runs too
	RecordRun(ctx context.Context, run *models.ProvisioningRun) error
}

// Stage names a step of a provisioning run
type Stage string

const (
	StagePlanned   Stage = "planned"
	StageAisles    Stage = "aisles"
	StageBays      Stage = "bays"
	StageLocations Stage = "locations"
	StageCompleted Stage = "completed"
	StageFailed    Stage = "failed"
)

// Progress is emitted while a cell is being provisioned
type Progress struct {
	RunID      string `json:"runId"`
	CellNumber int    `json:"cellNumber"`
	Stage      Stage  `json:"stage"`
	Done       int    `json:"done"`
	Total      int    `json:"total"`
	Error      string `json:"error,omitempty"`
}

// ProgressReporter receives provisioning progress
type ProgressReporter interface {
	Report(Progress)
}

// ProgressFunc adapts a function to ProgressReporter
type ProgressFunc func(Progress)

func (f ProgressFunc) Report(p Progress) { f(p) }

type noProgress struct{}

func (noProgress) Report(Progress) {}

// Result describes a completed provisioning run
type Result struct {
	RunID     uuid.UUID     `json:"runId"`
	Cell      models.Cell   `json:"cell"`
	Summary   Summary       `json:"summary"`
	Aisles    int           `json:"aisles"`
	Bays      int           `json:"bays"`
	Locations int           `json:"locations"`
	Batches   int           `json:"batches"`
	Duration  time.Duration `json:"duration"`
}

// Provisioner creates cells with all their aisles, bays and locations
type Provisioner struct {
	store     Store
	batchSize int
	progress  ProgressReporter
}

// Option configures a Provisioner
type Option func(*Provisioner)

// WithBatchSize sets the number of aisle, bay or location rows per insert
func WithBatchSize(n int) Option {
	return func(p *Provisioner) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithProgress sets the progress reporter
func WithProgress(r ProgressReporter) Option {
	return func(p *Provisioner) {
		if r != nil {
			p.progress = r
		}
	}
}

func NewProvisioner(store Store, opts ...Option) *Provisioner {
	p := &Provisioner{
		store:     store,
		batchSize: DefaultBatchSize,
		progress:  noProgress{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview summarises cfg without touching the store, generating at most
// sampleSize addresses
func (p *Provisioner) Preview(cfg CellConfig, sampleSize int) (*PlanPreview, error) {
	return PreviewPlan(cfg, sampleSize)
}

// Provision validates cfg, generates the cell layout and persists it in a
// single transaction. Nothing is written when any step fails.
func (p *Provisioner) Provision(ctx context.Context, cfg CellConfig) (*Result, error) {
	started := time.Now()
	runID := uuid.New()

	plan, err := BuildPlan(cfg)
	if err != nil {
		return nil, err
	}

	exists, err := p.store.CellExists(ctx, cfg.CellNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check cell %d: %w", cfg.CellNumber, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %d", ErrCellExists, cfg.CellNumber)
	}

	total := plan.LocationCount()
	report := func(stage Stage, done int) {
		p.progress.Report(Progress{RunID: runID.String(), CellNumber: cfg.CellNumber, Stage: stage, Done: done, Total: total})
	}

	log.Printf("📦 Provisioning cell %d: %d aisle sides, %d bays, %d locations", cfg.CellNumber, len(plan.Aisles), plan.BayCount(), total)
	report(StagePlanned, 0)

	result := &Result{RunID: runID, Summary: plan.Summary()}
	err = p.store.Transaction(ctx, func(tx Store) error {
		return p.persist(ctx, tx, plan, result, report)
	})
	if err != nil {
		log.Printf("❌ Provisioning cell %d failed, rolled back: %v", cfg.CellNumber, err)
		p.progress.Report(Progress{RunID: runID.String(), CellNumber: cfg.CellNumber, Stage: StageFailed, Total: total, Error: err.Error()})
		p.record(cfg, runID, result, time.Since(started), err)
		return nil, err
	}

	result.Duration = time.Since(started)
	p.record(cfg, runID, result, result.Duration, nil)
	report(StageCompleted, total)
	log.Printf("✅ Cell %d provisioned: %d locations in %d batches (%s)", cfg.CellNumber, result.Locations, result.Batches, result.Duration.Round(time.Millisecond))
	return result, nil
}

// record stores the run history; failures to do so are only logged
func (p *Provisioner) record(cfg CellConfig, runID uuid.UUID, result *Result, elapsed time.Duration, runErr error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("⚠️  Run %s: cannot encode config: %v", runID, err)
	}
	run := &models.ProvisioningRun{
		RunID:      runID.String(),
		CellNumber: cfg.CellNumber,
		Status:     models.RunCompleted,
		Config:     raw,
		Locations:  result.Locations,
		Batches:    result.Batches,
		DurationMs: elapsed.Milliseconds(),
	}
	if runErr != nil {
		run.Status = models.RunFailed
		run.Error = runErr.Error()
		run.Locations, run.Batches = 0, 0
	}
	// the request context may already be cancelled
	if err := p.store.RecordRun(context.Background(), run); err != nil {
		log.Printf("⚠️  Run %s: cannot record history: %v", runID, err)
	}
}

func (p *Provisioner) persist(ctx context.Context, tx Store, plan *Plan, result *Result, report func(Stage, int)) error {
	cell := plan.CellRecord()
	if err := tx.CreateCell(ctx, &cell); err != nil {
		return fmt.Errorf("failed to create cell: %w", err)
	}

	aisles := make([]models.Aisle, len(plan.Aisles))
	for i, a := range plan.Aisles {
		aisles[i] = models.Aisle{Number: a.Number.Int(), Side: a.Side, CellID: cell.ID}
	}
	for _, batch := range Batches(aisles, p.batchSize) {
		if err := tx.CreateAisles(ctx, batch); err != nil {
			return fmt.Errorf("failed to create aisles: %w", err)
		}
	}
	report(StageAisles, 0)

	// bays are created in plan order, so bayOffset[i] is the first bay of aisle i
	bays := make([]models.Bay, 0, plan.BayCount())
	bayOffset := make([]int, len(plan.Aisles))
	for i, a := range plan.Aisles {
		bayOffset[i] = len(bays)
		for _, b := range a.Bays {
			bays = append(bays, models.Bay{Number: b.Number, Width: b.Width, AisleID: aisles[i].ID})
		}
	}
	// batches share the backing array, so generated IDs land in bays
	for _, batch := range Batches(bays, p.batchSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tx.CreateBays(ctx, batch); err != nil {
			return fmt.Errorf("failed to create bays: %w", err)
		}
	}
	report(StageBays, 0)

	locations := make([]models.Location, 0, plan.LocationCount())
	for i, a := range plan.Aisles {
		for j, b := range a.Bays {
			bayID := bays[bayOffset[i]+j].ID
			for _, l := range b.Locations {
				locations = append(locations, models.NewLocation(l.Position, l.Level, aisles[i].ID, bayID, l.Picking))
			}
		}
	}

	if got, want := len(locations), plan.ExpectedLocations(); got != want {
		return fmt.Errorf("%w: generated %d, expected %d", ErrTotalMismatch, got, want)
	}

	done := 0
	batches := Batches(locations, p.batchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tx.CreateLocations(ctx, batch); err != nil {
			return &BatchError{Batch: i, Offset: done, Size: len(batch), Err: err}
		}
		done += len(batch)
		report(StageLocations, done)
	}

	cell.Aisles = nil
	result.Cell = cell
	result.Aisles = len(aisles)
	result.Bays = len(bays)
	result.Locations = len(locations)
	result.Batches = len(batches)
	return nil
}
