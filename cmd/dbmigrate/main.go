package main

import (
	"flag"
	"fmt"
	"log"

	"tg-groupguard/internal/config"
	"tg-groupguard/internal/models"
	"tg-groupguard/internal/storage"

	"gorm.io/gorm"
)

func main() {
	// Define command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	action := flag.String("action", "migrate", "Action to perform (migrate, reset, status)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	db := storage.GetDB()
	if db == nil {
		log.Fatalf("Failed to get database connection")
	}

	// Perform requested action
	switch *action {
	case "migrate":
		if err := migrateDatabase(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully")
	case "reset":
		if err := resetDatabase(db); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		log.Println("Database reset completed successfully")
	case "status":
		if err := checkStatus(db); err != nil {
			log.Fatalf("Status check failed: %v", err)
		}
	default:
		log.Fatalf("Unknown action: %s", *action)
	}
}

// migrateDatabase performs database migration
func migrateDatabase(db *gorm.DB) error {
	fmt.Println("Migrating database...")

	if err := db.AutoMigrate(&models.WarnRecord{}); err != nil {
		return fmt.Errorf("failed to migrate WarnRecord model: %w", err)
	}
	if err := db.AutoMigrate(&models.DenylistEntry{}); err != nil {
		return fmt.Errorf("failed to migrate DenylistEntry model: %w", err)
	}

	return nil
}

// resetDatabase drops tables and recreates them
func resetDatabase(db *gorm.DB) error {
	fmt.Println("Resetting database...")

	// Confirm reset operation
	fmt.Print("WARNING: This will delete all data! Are you sure? (y/N): ")
	var confirmation string
	fmt.Scanln(&confirmation)

	if confirmation != "y" && confirmation != "Y" {
		return fmt.Errorf("operation cancelled by user")
	}

	if err := db.Migrator().DropTable(&models.WarnRecord{}, &models.DenylistEntry{}); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	// Recreate tables
	return migrateDatabase(db)
}

// checkStatus checks the database status
func checkStatus(db *gorm.DB) error {
	fmt.Println("Checking database status...")

	tables := []struct {
		name  string
		model interface{}
	}{
		{"WarnRecord", &models.WarnRecord{}},
		{"DenylistEntry", &models.DenylistEntry{}},
	}

	for _, table := range tables {
		if db.Migrator().HasTable(table.model) {
			var count int64
			db.Model(table.model).Count(&count)
			fmt.Printf("%s table exists, contains %d records\n", table.name, count)
		} else {
			fmt.Printf("%s table does not exist\n", table.name)
		}
	}

	return nil
}
