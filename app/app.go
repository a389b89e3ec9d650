// Package app wires the farm components from an AppConfig. It is shared by
// the HTTP server and the farmctl CLI.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fruitfarm/config"
	"fruitfarm/database"
	"fruitfarm/pkg/blobstore"
	fruitRepo "fruitfarm/pkg/fruit/repository"
	fruitRepoImp "fruitfarm/pkg/fruit/repositoryImp"
	invRepoImp "fruitfarm/pkg/inventory/repositoryImp"
	invSvc "fruitfarm/pkg/inventory/service"
	invSvcImp "fruitfarm/pkg/inventory/serviceImp"
	"fruitfarm/pkg/landcheck"
	plantRepo "fruitfarm/pkg/plantation/repository"
	plantRepoImp "fruitfarm/pkg/plantation/repositoryImp"
	plantSvc "fruitfarm/pkg/plantation/service"
	plantSvcImp "fruitfarm/pkg/plantation/serviceImp"
)

type App struct {
	Config config.AppConfig
	Log    *zap.Logger
	DB     *gorm.DB
	Store  blobstore.Store

	Catalog     fruitRepo.Catalog
	Registry    plantRepo.Registry
	Plantations plantSvc.PlantationService
	Seeder      plantSvc.Seeder
	Inventory   invSvc.InventoryService
}

// NewStore picks the document store named by backend: file, sqlite or memory.
func NewStore(backend, dataDir string, db *gorm.DB) (blobstore.Store, error) {
	switch strings.ToLower(backend) {
	case "", "file":
		return blobstore.NewFileStore(dataDir), nil
	case "sqlite":
		if db == nil {
			return nil, fmt.Errorf("sqlite store backend needs a database")
		}
		return blobstore.NewSQLStore(db), nil
	case "memory", "mem":
		return blobstore.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func Build(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (a *App, err error) {
	db, err := database.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
	}()

	store, err := NewStore(cfg.StoreBackend, cfg.DataDir, db)
	if err != nil {
		return nil, err
	}

	catalog := fruitRepoImp.New(store, cfg.FruitsKey, log.Named("fruits"))
	created, err := catalog.EnsureDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("fruit catalog: %w", err)
	}
	if created {
		log.Info("default fruit catalog written", zap.String("key", cfg.FruitsKey))
	}

	seed := cfg.RandSeed
	var rng plantSvcImp.Rand
	if seed != 0 {
		rng = plantSvcImp.NewRand(seed)
	}
	var checker landcheck.Checker
	if cfg.LandCheckURL != "" {
		checker = landcheck.NewNominatim(cfg.LandCheckURL, cfg.LandCheckTimeout)
	}

	registry := plantRepoImp.New(store, cfg.PlantationsKey, log.Named("registry"))
	plantations := plantSvcImp.NewPlantationService(registry, catalog, plantSvcImp.Options{
		MinDistanceKM:    cfg.MinDistanceKM,
		AreaMinM2:        cfg.AreaMinM2,
		AreaMaxM2:        cfg.AreaMaxM2,
		Rand:             rng,
		LandChecker:      checker,
		LandCheckTimeout: cfg.LandCheckTimeout,
	}, log.Named("plantations"))
	seeder := plantSvcImp.NewSeeder(plantations, plantSvcImp.SeedOptions{
		Attempts:  cfg.SeedAttempts,
		JitterDeg: cfg.SeedJitterDeg,
		Pause:     cfg.SeedPause,
	}, log.Named("seeder"))

	ledger := invRepoImp.New(db)
	if err = invSvcImp.Init(ctx, ledger, cfg.StartingBalance); err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	inventory := invSvcImp.NewInventoryService(ledger, catalog, invSvcImp.Options{ExchangeRateEUR: cfg.ExchangeRateEUR}, log.Named("inventory"))

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		Store:       store,
		Catalog:     catalog,
		Registry:    registry,
		Plantations: plantations,
		Seeder:      seeder,
		Inventory:   inventory,
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
