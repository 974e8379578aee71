package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xelth-com/eckslotgo/internal/config"
	"github.com/xelth-com/eckslotgo/internal/database"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/provisioning"
	"github.com/xelth-com/eckslotgo/internal/repository"
)

func strPtr(s string) *string { return &s }

// demoReasons are the standard block reasons
var demoReasons = []models.BlockReason{
	{Code: "PILLAR", Name: "Concrete Pillar", Description: strPtr("Structural pillar occupies the slot"), Permanent: true},
	{Code: "FIRE", Name: "Fire Equipment", Description: strPtr("Extinguisher or hydrant access must stay clear"), Permanent: true},
	{Code: "TEMP", Name: "Temporary Block", Description: strPtr("Maintenance or damaged racking"), Permanent: false},
}

// demoCell is cell 1: aisles 1 to 18 with both sides, 104 positions per aisle, 5 levels
var demoCell = provisioning.CellConfig{
	CellNumber:        1,
	AisleStart:        1,
	AisleEnd:          18,
	StartLocationType: provisioning.LocationsBoth,
	EndLocationType:   provisioning.LocationsBoth,
	LocationsPerAisle: 104,
	LevelCount:        5,
	HasPicking:        true,
}

func main() {
	fmt.Println("🌱 Warehouse Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	if err := db.Migrate(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	ctx := context.Background()

	reasons := repository.NewBlockReasonRepository(db.DB)
	for i := range demoReasons {
		if err := reasons.FirstOrCreate(ctx, &demoReasons[i]); err != nil {
			log.Fatalf("❌ Failed to seed block reason %s: %v", demoReasons[i].Code, err)
		}
		fmt.Printf("   ✓ Block reason %s\n", demoReasons[i].DisplayName())
	}

	fmt.Printf("📦 Provisioning cell %d...\n", demoCell.CellNumber)
	result, err := provisioning.NewProvisioner(
		repository.NewGormStore(db.DB),
		provisioning.WithBatchSize(cfg.Provisioning.BatchSize),
	).Provision(ctx, demoCell)
	if errors.Is(err, provisioning.ErrCellExists) {
		fmt.Printf("⚠️  Cell %d already exists, skipping\n", demoCell.CellNumber)
		return
	}
	if err != nil {
		log.Fatalf("❌ Provisioning failed: %v", err)
	}

	fmt.Println(result.Summary.Aisles)
	fmt.Printf("Levels: %s\n", result.Summary.Levels)
	fmt.Printf("✅ Created %d aisle sides, %d bays, %d locations in %s\n",
		result.Aisles, result.Bays, result.Locations, result.Duration)
}
