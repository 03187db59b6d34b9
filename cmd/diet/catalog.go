package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/catalog/load"
	"github.com/fdg312/diet-hub/internal/storage/postgres"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Publish the food catalog to the blob store or the database",
	}
	cmd.AddCommand(newCatalogPublishCmd(a), newCatalogSyncCmd(a))
	return cmd
}

func newCatalogPublishCmd(a *app) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the catalog definition to the blob store",
		Long:  "publish encodes the loaded catalog (YAML, or JSON for a .json key) and stores it under --key, where CATALOG_SOURCE=blob reads it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cat, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}

			format := catalog.FormatFromPath(key)
			data, err := catalog.Encode(cat, format)
			if err != nil {
				return err
			}

			store, err := a.blobStore(ctx)
			if err != nil {
				return err
			}
			n, err := store.PutObject(ctx, key, data, "application/"+format)
			if err != nil {
				return fmt.Errorf("upload catalog: %w", err)
			}

			log.Printf("INFO catalog: published key=%s bytes=%d foods=%d", key, n, cat.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "published %d foods to %s (%d bytes)\n", cat.Len(), key, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", a.cfg.Catalog.BlobKey, "object key")
	return cmd
}

func newCatalogSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the foods table with the loaded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			cat, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}

			db, err := postgres.New(ctx, a.cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer db.Close()

			if err := db.ReplaceFoods(ctx, load.ToFoods(cat)); err != nil {
				return err
			}

			log.Printf("INFO catalog: synced foods=%d to postgres", cat.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d foods in the database\n", cat.Len())
			return nil
		},
	}
}
