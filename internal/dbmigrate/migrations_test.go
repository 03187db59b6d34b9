package dbmigrate

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/fdg312/diet-hub/internal/catalog"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(Migrations(), "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := []string{"00001_create_foods.sql", "00002_seed_foods.sql", "00003_unique_food_position.sql"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, names[i])
		}
	}

	for _, name := range names {
		data, _ := fs.ReadFile(Migrations(), name)
		if !strings.Contains(string(data), "-- +goose Up") || !strings.Contains(string(data), "-- +goose Down") {
			t.Errorf("%s is missing goose annotations", name)
		}
	}
}

func TestSeedMatchesBuiltinCatalog(t *testing.T) {
	data, err := fs.ReadFile(Migrations(), "00002_seed_foods.sql")
	if err != nil {
		t.Fatalf("read seed: %v", err)
	}
	seed := string(data)

	for i, item := range catalog.Default().All() {
		row := fmt.Sprintf("('%s', %.2f, %d)", item.Name, item.Price, i)
		if !strings.Contains(seed, row) {
			t.Errorf("seed is missing food row %s", row)
		}
		for n, v := range item.Nutrients {
			row := fmt.Sprintf("('%s', '%s', %v)", item.Name, n, v)
			if !strings.Contains(seed, row) {
				t.Errorf("seed is missing nutrient row %s", row)
			}
		}
	}
}

func TestFoodPositionIsUnique(t *testing.T) {
	data, err := fs.ReadFile(Migrations(), "00003_unique_food_position.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	up, _, _ := strings.Cut(string(data), "-- +goose Down")
	if !strings.Contains(up, "UNIQUE (position)") {
		t.Errorf("expected a unique constraint on foods.position, got:\n%s", up)
	}
}
