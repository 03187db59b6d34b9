package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/diet-hub/internal/storage"
)

// MemoryStorage — in-memory реализация CatalogStorage
type MemoryStorage struct {
	mu    sync.RWMutex
	foods []storage.Food
}

// New создаёт MemoryStorage, опционально с начальным каталогом
func New(foods ...storage.Food) *MemoryStorage {
	m := &MemoryStorage{}
	m.set(foods)
	return m
}

func (m *MemoryStorage) ListFoods(ctx context.Context) ([]storage.Food, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]storage.Food, len(m.foods))
	for i, f := range m.foods {
		out[i] = copyFood(f)
	}
	return out, nil
}

func (m *MemoryStorage) ReplaceFoods(ctx context.Context, foods []storage.Food) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set(foods)
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// set must be called with the write lock held or before m escapes.
func (m *MemoryStorage) set(foods []storage.Food) {
	now := time.Now().UTC()
	m.foods = make([]storage.Food, len(foods))
	for i, f := range foods {
		f = copyFood(f)
		f.Position = i
		f.UpdatedAt = now
		m.foods[i] = f
	}
}

func copyFood(f storage.Food) storage.Food {
	nutrients := make(map[string]float64, len(f.Nutrients))
	for k, v := range f.Nutrients {
		nutrients[k] = v
	}
	f.Nutrients = nutrients
	return f
}
