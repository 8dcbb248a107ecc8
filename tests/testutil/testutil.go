package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/models"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development
// databases. An unset GO_ENV is promoted to "test"; any other explicit value
// fails the test immediately.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env == "" {
		if err := os.Setenv("GO_ENV", "test"); err != nil {
			t.Fatalf("Failed to set GO_ENV=test: %v", err)
		}
		return
	}
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q.", env)
	}
}

// TestConfig returns a configuration suitable for tests, with a designated
// protected admin and no external credentials
func TestConfig() *config.Config {
	return &config.Config{
		DatabaseURL:    "sqlite::memory:",
		Port:           "8080",
		GoEnv:          "test",
		OperatorEmail:  "operator@example.com",
		ProtectedAdmin: "owner@example.com",
		UPIAddress:     "shop@upi",
		UPIPayeeName:   "Test Shop",
	}
}

// SetupTestDB opens an in-memory sqlite database, migrates every model and
// installs it together with the test configuration as the globals the
// services read
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	RequireTestEnvironment(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Order{},
		&models.StationeryProduct{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(TestConfig())
	return db
}
