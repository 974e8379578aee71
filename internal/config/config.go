package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Database drivers understood by database.Connect
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// SQL log levels accepted by DB_LOG_LEVEL
const (
	LogSilent = "silent"
	LogError  = "error"
	LogWarn   = "warn"
	LogInfo   = "info"
)

// Config holds all application configuration
type Config struct {
	NodeEnv    string
	Port       string
	PathPrefix string
	// JWTSecret guards mutating routes; empty disables the guard
	JWTSecret      string
	InstanceSuffix string
	Database       DatabaseConfig
	Provisioning   ProvisioningConfig
	Odoo           OdooConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	SQLitePath string
	// LogLevel is the GORM logger level; bulk inserts flood "info"
	LogLevel string
}

// ProvisioningConfig tunes bulk location creation and address formatting
type ProvisioningConfig struct {
	BatchSize        int
	AddressCacheSize int
}

// OdooConfig holds the XML-RPC connection to Odoo; empty URL disables export
type OdooConfig struct {
	URL      string
	Database string
	Username string
	Password string
	// ParentLocationID is the stock.location under which cell locations are created
	ParentLocationID int
}

// Enabled reports whether Odoo export is configured
func (o OdooConfig) Enabled() bool {
	return o.URL != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, driver)
	}

	logLevel := strings.ToLower(getEnv("DB_LOG_LEVEL", LogWarn))
	switch logLevel {
	case LogSilent, LogError, LogWarn, LogInfo:
	default:
		return nil, fmt.Errorf("DB_LOG_LEVEL must be one of silent, error, warn, info, got %q", logLevel)
	}

	batchSize, err := getEnvInt("PROVISION_BATCH_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	cacheSize, err := getEnvInt("ADDRESS_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	odooParent, err := getEnvInt("ODOO_PARENT_LOCATION_ID", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		NodeEnv:        getEnv("NODE_ENV", "development"),
		Port:           getEnv("PORT", "3001"),
		PathPrefix:     strings.TrimRight(os.Getenv("PATH_PREFIX"), "/"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		InstanceSuffix: os.Getenv("INSTANCE_SUFFIX"),
		Database: DatabaseConfig{
			Driver:     driver,
			Host:       getEnv("PG_HOST", "localhost"),
			Port:       getEnv("PG_PORT", "5432"),
			Username:   getEnv("PG_USERNAME", "postgres"),
			Password:   os.Getenv("PG_PASSWORD"),
			Database:   getEnv("PG_DATABASE", "eckslot"),
			SQLitePath: getEnv("SQLITE_PATH", "eckslot.db"),
			LogLevel:   logLevel,
		},
		Provisioning: ProvisioningConfig{
			BatchSize:        batchSize,
			AddressCacheSize: cacheSize,
		},
		Odoo: OdooConfig{
			URL:              os.Getenv("ODOO_URL"),
			Database:         os.Getenv("ODOO_DB"),
			Username:         os.Getenv("ODOO_USER"),
			Password:         os.Getenv("ODOO_PASSWORD"),
			ParentLocationID: odooParent,
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses a positive integer variable, falling back to defaultValue when unset
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
	}
	return n, nil
}
