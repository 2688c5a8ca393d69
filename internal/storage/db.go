package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tg-groupguard/internal/config"
	"tg-groupguard/internal/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	// DB is the global database connection
	DB *gorm.DB
)

// Initialize sets up the database connection based on configuration
func Initialize(cfg *config.Config) error {
	gormConfig := &gorm.Config{
		Logger: NewGormLogger(cfg.Logger.Level),
	}

	var err error
	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBName,
			cfg.Database.Charset,
		)

		logger.Infof("Connecting to database: %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		DB, err = gorm.Open(mysql.Open(dsn), gormConfig)
	case "sqlite", "":
		// Ensure the parent directory exists
		if mkErr := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); mkErr != nil {
			return fmt.Errorf("failed to create database directory: %w", mkErr)
		}

		logger.Infof("Opening sqlite database: %s", cfg.Database.Path)
		DB, err = gorm.Open(sqlite.Open(cfg.Database.Path), gormConfig)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to configure connection pool
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Infof("Database connection established successfully")
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
