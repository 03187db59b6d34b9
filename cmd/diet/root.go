package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/fdg312/diet-hub/internal/blob"
	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/catalog/load"
	"github.com/fdg312/diet-hub/internal/config"
	"github.com/fdg312/diet-hub/internal/storage/postgres"
)

// app carries the resolved config and the flags shared by all subcommands.
type app struct {
	cfg         *config.Config
	catalogPath string
	verbose     bool
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "diet",
		Short:         "Least-cost diet planner",
		Long:          "diet picks portions of catalog foods that meet nutrient minimums at the lowest price.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !a.verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog definition file (.yaml or .json); overrides CATALOG_SOURCE")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log solver and catalog events to stderr")

	root.AddCommand(
		newSolveCmd(a),
		newFoodsCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// loadCatalog reads --catalog when given, otherwise the configured source.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.catalogPath != "" {
		return catalog.LoadFile(a.catalogPath)
	}

	loader := &load.Loader{Logger: log.Default()}
	switch a.cfg.Catalog.Source {
	case config.CatalogSourceBlob:
		store, err := a.blobStore(ctx)
		if err != nil {
			return nil, err
		}
		loader.Blob = store
	case config.CatalogSourcePostgres:
		db, err := postgres.New(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer db.Close()
		loader.Foods = db
	}

	cat, _, err := loader.Load(ctx, a.cfg.Catalog)
	return cat, err
}

func (a *app) blobStore(ctx context.Context) (blob.Store, error) {
	store, _, err := blob.NewBlobStore(ctx, a.cfg.Blob, log.Default())
	return store, err
}
