// Package app wires the core stores to the local sqlite blob store. Both the
// HTTP server and the CLI start from Open.
package app

import (
	"database/sql"
	"fmt"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/config"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/db"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/estimate"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/history"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/logging"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/migrations"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/pricing"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/settings"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/storage"
)

type App struct {
	Config    config.Config
	Log       *logging.Logger
	DB        *sql.DB
	Blobs     storage.BlobStore
	Estimator *estimate.Estimator
	History   *history.Store
	Settings  *settings.Store
}

// Open opens the database, migrates it, loads the price catalog and hydrates
// the history and settings stores.
func Open(cfg config.Config, log *logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNop()
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.Up(database, log.With("component", "migrations")); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	catalog, err := pricing.LoadCatalog(cfg.PricesFile)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("load prices: %w", err)
	}
	if cfg.PricesFile != "" {
		log.Info("loaded price overrides", "file", cfg.PricesFile)
	}

	blobs := storage.NewSQLiteStore(database)
	return &App{
		Config:    cfg,
		Log:       log,
		DB:        database,
		Blobs:     blobs,
		Estimator: estimate.New(estimate.WithCatalog(catalog)),
		History:   history.Open(blobs, log, history.WithMaxItems(cfg.MaxHistoryItems)),
		Settings:  settings.Open(blobs, log),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
