package database

import (
	"testing"

	"gorm.io/gorm/logger"

	"github.com/xelth-com/eckslotgo/internal/config"
	"github.com/xelth-com/eckslotgo/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:", LogLevel: config.LogSilent})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, table := range []interface{}{&models.Cell{}, &models.Aisle{}, &models.Bay{}, &models.Location{}, &models.BlockReason{}, &models.Obstacle{}, &models.ProvisioningRun{}} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table for %T was not created", table)
		}
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		config.LogSilent: logger.Silent,
		config.LogError:  logger.Error,
		config.LogWarn:   logger.Warn,
		config.LogInfo:   logger.Info,
		"":               logger.Warn,
	}
	for level, want := range cases {
		if got := logLevel(config.DatabaseConfig{LogLevel: level}); got != want {
			t.Errorf("logLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
