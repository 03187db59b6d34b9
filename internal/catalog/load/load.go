// Package load resolves CATALOG_SOURCE into a catalog and converts between
// catalog items and storage rows. It keeps the catalog package free of
// config and storage imports.
package load

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/config"
	"github.com/fdg312/diet-hub/internal/storage"
)

var (
	ErrUnknownSource  = errors.New("unknown catalog source")
	ErrSourceNotReady = errors.New("catalog source not configured")
)

// ObjectGetter is the part of a blob store the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// FoodLister is the part of the catalog storage the loader needs.
type FoodLister interface {
	ListFoods(ctx context.Context) ([]storage.Food, error)
}

type Logger interface {
	Printf(format string, v ...any)
}

// Loader — источник каталога. Blob и Foods могут быть nil, если
// соответствующий источник не используется.
type Loader struct {
	Blob   ObjectGetter
	Foods  FoodLister
	Logger Logger
}

// Load builds the catalog from the configured source and returns it with the
// resolved source name.
func (l *Loader) Load(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, string, error) {
	source := strings.ToLower(strings.TrimSpace(cfg.Source))
	if source == "" {
		source = config.CatalogSourceBuiltin
	}

	var (
		c   *catalog.Catalog
		err error
	)
	switch source {
	case config.CatalogSourceBuiltin:
		c = catalog.Default()

	case config.CatalogSourceFile:
		if cfg.File == "" {
			return nil, "", fmt.Errorf("%w: CATALOG_FILE is empty", ErrSourceNotReady)
		}
		c, err = catalog.LoadFile(cfg.File)

	case config.CatalogSourceBlob:
		if l.Blob == nil {
			return nil, "", fmt.Errorf("%w: blob store is not configured", ErrSourceNotReady)
		}
		var data []byte
		data, err = l.Blob.GetObject(ctx, cfg.BlobKey)
		if err != nil {
			return nil, "", fmt.Errorf("load catalog from blob %q: %w", cfg.BlobKey, err)
		}
		c, err = catalog.Decode(data, catalog.FormatFromPath(cfg.BlobKey))

	case config.CatalogSourcePostgres:
		if l.Foods == nil {
			return nil, "", fmt.Errorf("%w: database is not configured", ErrSourceNotReady)
		}
		var foods []storage.Food
		foods, err = l.Foods.ListFoods(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load catalog from postgres: %w", err)
		}
		c, err = FromFoods(foods)

	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	if err != nil {
		return nil, "", err
	}

	l.logf("INFO catalog: source=%s foods=%d nutrients=%d", source, c.Len(), len(c.Nutrients()))
	return c, source, nil
}

func (l *Loader) logf(format string, v ...any) {
	if l.Logger == nil {
		return
	}
	l.Logger.Printf(format, v...)
}

// FromFoods builds a catalog from storage rows, ordered by Position.
func FromFoods(foods []storage.Food) (*catalog.Catalog, error) {
	sorted := make([]storage.Food, len(foods))
	copy(sorted, foods)
	slices.SortStableFunc(sorted, func(a, b storage.Food) int {
		return cmp.Compare(a.Position, b.Position)
	})

	items := make([]catalog.FoodItem, len(sorted))
	for i, f := range sorted {
		nutrients := make(map[catalog.Nutrient]float64, len(f.Nutrients))
		for k, v := range f.Nutrients {
			nutrients[catalog.Nutrient(k)] = v
		}
		items[i] = catalog.FoodItem{Name: f.Name, Price: f.Price, Nutrients: nutrients}
	}
	return catalog.New(items...)
}

// ToFoods converts the catalog into storage rows.
func ToFoods(c *catalog.Catalog) []storage.Food {
	items := c.All()
	foods := make([]storage.Food, len(items))
	for i, item := range items {
		nutrients := make(map[string]float64, len(item.Nutrients))
		for k, v := range item.Nutrients {
			nutrients[string(k)] = v
		}
		foods[i] = storage.Food{Name: item.Name, Price: item.Price, Nutrients: nutrients, Position: i}
	}
	return foods
}
