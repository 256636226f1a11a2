package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bitfantasy/toolcat/internal/catalog/entity"
	"github.com/bitfantasy/toolcat/internal/config"
)

const TestSchema = "test_toolcat"

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	if root := projectRoot(); root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func baseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.GetEnvOrDefault("DB_HOST", "127.0.0.1"),
		config.GetEnvOrDefault("DB_PORT", "5432"),
		config.GetEnvOrDefault("DB_USER", "toolcat"),
		config.GetEnvOrDefault("DB_PASSWORD", "toolcat"),
		config.GetEnvOrDefault("DB_NAME", "toolcat"),
	)
}

// SetupTestDB connects to PostgreSQL with a dedicated schema that is dropped
// when the test ends. The test is skipped when no server is reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()
	if testing.Short() {
		t.Skip("database tests disabled in short mode")
	}

	dsn := baseDSN()
	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so every pooled connection sees the test schema
	db, err := gorm.Open(postgres.Open(fmt.Sprintf("%s search_path=%s", dsn, schemaName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(entity.Models()...); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			if sqlClean, _ := cleanDB.DB(); sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// SeedTools inserts tools together with whatever geometry relations are set.
func SeedTools(t *testing.T, db *gorm.DB, tools ...entity.Tool) {
	t.Helper()
	for i := range tools {
		if err := db.Create(&tools[i]).Error; err != nil {
			t.Fatalf("Failed to seed tool %d: %v", tools[i].ID, err)
		}
	}
}

// Catalog is a small fixture covering three families and an unsupported group.
func Catalog() []entity.Tool {
	return []entity.Tool{
		{
			ID: 1, Marking: "2300-0041", Group: "Сверло", Standard: "ГОСТ 886-77",
			Drill: &entity.DrillGeometry{AxialColumns: entity.AxialColumns{
				D: Ptr(10.0), L: Ptr(133.0), Tolerance: Ptr("H9"), Material: Ptr("Р6М5"),
			}},
		},
		{
			ID: 2, Marking: "2300-0042", Group: "Сверло", Standard: "ГОСТ 886-77",
			Drill: &entity.DrillGeometry{AxialColumns: entity.AxialColumns{D: Ptr(12.0), L: Ptr(151.0)}},
		},
		{
			ID: 3, Marking: "2510-0001", Group: "Фреза", Standard: "ГОСТ 9324-80",
			MillingCutter: &entity.MillingCutterGeometry{
				D: Ptr(63.0), L: Ptr(40.0), Z: Ptr(12), AccuracyClass: Ptr("AA"), Module: Ptr(2.5),
			},
		},
		{
			ID: 4, Marking: "2100-0001", Group: "Резец", Standard: "ГОСТ 18877-73",
			TurningCutter: &entity.TurningCutterGeometry{
				L: Ptr(140.0), B: Ptr(16.0), H: Ptr(25.0), Material: Ptr("Т15К6"),
			},
		},
		{ID: 5, Marking: "2620-1001", Group: "Метчик", Standard: "ГОСТ 3266-81"},
	}
}
