// database/bootstrap.go
package database

import (
	"fmt"
	"os"
	"path/filepath"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fruitfarm/entities"
)

// OpenSQLite opens (or creates) the sqlite file and migrates the farm tables.
func OpenSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// sqlite allows a single writer; one connection avoids SQLITE_BUSY between
	// the blob store and the inventory ledger.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entities.Blob{},
		&entities.StockItem{},
		&entities.Treasury{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	log.Info("sqlite ready", zap.String("path", path))
	return db, nil
}
