package foods

// FoodDTO — позиция каталога в API
type FoodDTO struct {
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Nutrients map[string]float64 `json:"nutrients"`
}

// FoodsResponse — ответ на GET /v1/foods
type FoodsResponse struct {
	Foods     []FoodDTO `json:"foods"`
	Nutrients []string  `json:"nutrients"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
