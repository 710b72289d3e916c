package main

import (
	"context"
	"path/filepath"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/store"
)

// openArchive returns the Postgres archive when configured, otherwise the
// JSON file sink under the data directory.
func openArchive(ctx context.Context, cfg *config.Config) (store.Archive, error) {
	if cfg.Storage.Postgres.Configured() {
		return store.New(ctx, cfg.Storage.Postgres)
	}
	return store.NewFileArchive(cfg.General.DataDir), nil
}

// openIndex opens the run search index. Index path defaults into the data
// directory when unset.
func openIndex(cfg *config.Config) (*store.Index, error) {
	path := cfg.Storage.Bleve.Path
	if path == "" {
		path = filepath.Join(cfg.General.DataDir, "runs.bleve")
	}
	return store.OpenIndex(path)
}
