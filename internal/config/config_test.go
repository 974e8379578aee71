package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "PORT", "PATH_PREFIX", "JWT_SECRET", "PROVISION_BATCH_SIZE", "ADDRESS_CACHE_SIZE", "ODOO_URL", "DB_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("Driver = %s, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.LogLevel != LogWarn {
		t.Errorf("LogLevel = %s, want warn", cfg.Database.LogLevel)
	}
	if cfg.Port != "3001" {
		t.Errorf("Port = %s", cfg.Port)
	}
	if cfg.Provisioning.BatchSize != 1000 || cfg.Provisioning.AddressCacheSize != 1000 {
		t.Errorf("Provisioning = %+v", cfg.Provisioning)
	}
	if cfg.Odoo.Enabled() {
		t.Error("Odoo should be disabled without ODOO_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("PATH_PREFIX", "/slot/")
	t.Setenv("PROVISION_BATCH_SIZE", "250")
	t.Setenv("ODOO_URL", "http://odoo:8069")
	t.Setenv("DB_LOG_LEVEL", "Silent")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.SQLitePath != ":memory:" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Database.LogLevel != LogSilent {
		t.Errorf("LogLevel = %s, want silent", cfg.Database.LogLevel)
	}
	if cfg.PathPrefix != "/slot" {
		t.Errorf("PathPrefix = %q, want /slot", cfg.PathPrefix)
	}
	if cfg.Provisioning.BatchSize != 250 {
		t.Errorf("BatchSize = %d", cfg.Provisioning.BatchSize)
	}
	if !cfg.Odoo.Enabled() {
		t.Error("Odoo should be enabled")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported driver")
	}

	t.Setenv("DB_DRIVER", "")
	t.Setenv("PROVISION_BATCH_SIZE", "lots")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric batch size")
	}

	t.Setenv("PROVISION_BATCH_SIZE", "")
	t.Setenv("DB_LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown log level")
	}
}
