package load

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/config"
	"github.com/fdg312/diet-hub/internal/storage"
	"github.com/fdg312/diet-hub/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoFoodsYAML = `
foods:
  - name: Chicken
    price: 2.33
    nutrients: {protein: 25, carbohydrate: 0, lipid: 7.1, energy: 170.4}
  - name: Cassava
    price: 1.07
    nutrients: {protein: 0.6, carbohydrate: 30.1, lipid: 0.3, energy: 125.4}
`

type mapBlob map[string][]byte

func (m mapBlob) GetObject(ctx context.Context, key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

type failingLister struct{}

func (failingLister) ListFoods(ctx context.Context) ([]storage.Food, error) {
	return nil, errors.New("connection refused")
}

func TestLoaderBuiltin(t *testing.T) {
	l := &Loader{}

	c, source, err := l.Load(context.Background(), config.CatalogConfig{})
	require.NoError(t, err)
	assert.Equal(t, config.CatalogSourceBuiltin, source)
	assert.Equal(t, 12, c.Len())
}

func TestLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoFoodsYAML), 0o644))

	l := &Loader{}
	c, _, err := l.Load(context.Background(), config.CatalogConfig{Source: config.CatalogSourceFile, File: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken", "Cassava"}, c.Names())
}

func TestLoaderFileMissingPath(t *testing.T) {
	l := &Loader{}
	_, _, err := l.Load(context.Background(), config.CatalogConfig{Source: config.CatalogSourceFile})
	assert.ErrorIs(t, err, ErrSourceNotReady)
}

func TestLoaderBlob(t *testing.T) {
	data, err := catalog.Encode(catalog.Default(), catalog.FormatJSON)
	require.NoError(t, err)

	l := &Loader{Blob: mapBlob{"catalog/foods.json": data}}
	c, source, err := l.Load(context.Background(), config.CatalogConfig{
		Source:  config.CatalogSourceBlob,
		BlobKey: "catalog/foods.json",
	})
	require.NoError(t, err)
	assert.Equal(t, config.CatalogSourceBlob, source)
	assert.Equal(t, catalog.Default().Names(), c.Names())
}

func TestLoaderBlobNotConfigured(t *testing.T) {
	l := &Loader{}
	_, _, err := l.Load(context.Background(), config.CatalogConfig{Source: config.CatalogSourceBlob, BlobKey: "x.yaml"})
	assert.ErrorIs(t, err, ErrSourceNotReady)
}

func TestLoaderPostgresSourceUsesStorage(t *testing.T) {
	store := memory.New(ToFoods(catalog.Default())...)

	l := &Loader{Foods: store}
	c, _, err := l.Load(context.Background(), config.CatalogConfig{Source: config.CatalogSourcePostgres})
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().All(), c.All())
}

func TestLoaderPostgresError(t *testing.T) {
	l := &Loader{Foods: failingLister{}}
	_, _, err := l.Load(context.Background(), config.CatalogConfig{Source: config.CatalogSourcePostgres})
	assert.ErrorContains(t, err, "connection refused")
}

func TestLoaderUnknownSource(t *testing.T) {
	l := &Loader{}
	_, _, err := l.Load(context.Background(), config.CatalogConfig{Source: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestFromFoodsOrdersByPosition(t *testing.T) {
	c, err := FromFoods([]storage.Food{
		{Name: "B", Price: 1, Position: 1},
		{Name: "A", Price: 1, Position: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, c.Names())
}

func TestToFoodsAssignsPositions(t *testing.T) {
	foods := ToFoods(catalog.Default())
	for i, f := range foods {
		assert.Equal(t, i, f.Position, f.Name)
	}
}
