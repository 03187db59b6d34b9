package storage

import (
	"context"
	"time"
)

// Food — строка каталога продуктов в хранилище
type Food struct {
	Name      string
	Price     float64
	Nutrients map[string]float64
	Position  int
	UpdatedAt time.Time
}

// CatalogStorage — интерфейс для работы с каталогом продуктов
type CatalogStorage interface {
	// ListFoods возвращает все продукты в порядке каталога
	ListFoods(ctx context.Context) ([]Food, error)

	// ReplaceFoods атомарно заменяет весь каталог
	ReplaceFoods(ctx context.Context, foods []Food) error

	// Close закрывает соединение (для Postgres)
	Close() error
}
