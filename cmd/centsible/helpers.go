package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/reeselc/centsible/internal/config"
	"github.com/reeselc/centsible/internal/service"
	"github.com/reeselc/centsible/internal/storage"
)

// initStorage initializes the pattern store with proper path expansion.
func initStorage(ctx context.Context) (service.PatternStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/centsible/centsible.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
