package diets

// SolveRequest — тело POST /v1/diet/solve и /v1/diet/report.
// Отсутствующие requirement и bounds заменяются значениями по умолчанию.
type SolveRequest struct {
	Requirement map[string]float64 `json:"requirement,omitempty"`
	Bounds      map[string]float64 `json:"bounds,omitempty"`
	Exclude     []string           `json:"exclude,omitempty"`
}

type AllocationDTO struct {
	Food     string  `json:"food"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// SolveResponse — результат решения; cost, quantities, allocations и totals
// заполнены только при status=optimal
type SolveResponse struct {
	SolveID     string             `json:"solve_id"`
	Status      string             `json:"status"`
	Cost        *float64           `json:"cost,omitempty"`
	Quantities  map[string]float64 `json:"quantities,omitempty"`
	Allocations []AllocationDTO    `json:"allocations,omitempty"`
	Totals      map[string]float64 `json:"totals,omitempty"`
	Requirement map[string]float64 `json:"requirement"`
	Engine      string             `json:"engine"`
	Iterations  int                `json:"iterations"`
	Message     string             `json:"message,omitempty"`
}

// DefaultsResponse — ответ на GET /v1/diet/defaults
type DefaultsResponse struct {
	Requirement map[string]float64 `json:"requirement"`
	Bounds      map[string]float64 `json:"bounds"`
	MaxBound    float64            `json:"max_bound"`
	Step        float64            `json:"step"`
	Nutrients   []NutrientDTO      `json:"nutrients"`
	Engine      string             `json:"engine"`
}

type NutrientDTO struct {
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
