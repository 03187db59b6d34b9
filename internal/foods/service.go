package foods

import (
	"github.com/fdg312/diet-hub/internal/catalog"
)

// Service отдаёт каталог продуктов, загруженный при старте
type Service struct {
	catalog *catalog.Catalog
}

func NewService(cat *catalog.Catalog) *Service {
	return &Service{catalog: cat}
}

// List возвращает все позиции в порядке каталога
func (s *Service) List() FoodsResponse {
	items := s.catalog.All()
	resp := FoodsResponse{
		Foods:     make([]FoodDTO, 0, len(items)),
		Nutrients: make([]string, 0, len(s.catalog.Nutrients())),
	}
	for _, item := range items {
		resp.Foods = append(resp.Foods, toDTO(item))
	}
	for _, n := range s.catalog.Nutrients() {
		resp.Nutrients = append(resp.Nutrients, string(n))
	}
	return resp
}

// Get возвращает позицию по имени; ошибка совпадает с catalog.ErrFoodNotFound
func (s *Service) Get(name string) (*FoodDTO, error) {
	item, err := s.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	dto := toDTO(item)
	return &dto, nil
}

func toDTO(item catalog.FoodItem) FoodDTO {
	nutrients := make(map[string]float64, len(item.Nutrients))
	for k, v := range item.Nutrients {
		nutrients[string(k)] = v
	}
	return FoodDTO{
		Name:      item.Name,
		Price:     item.Price,
		Nutrients: nutrients,
	}
}
