package catalog

import "math"

// Nutrient identifies a nutrient tracked by the catalog (protein, energy, ...).
type Nutrient string

const (
	Protein      Nutrient = "protein"
	Carbohydrate Nutrient = "carbohydrate"
	Lipid        Nutrient = "lipid"
	Energy       Nutrient = "energy"
)

// Units of the builtin nutrients, per reference portion.
var units = map[Nutrient]string{
	Protein:      "g",
	Carbohydrate: "g",
	Lipid:        "g",
	Energy:       "kcal",
}

// Unit returns the display unit of a nutrient ("" when unknown).
func (n Nutrient) Unit() string {
	return units[n]
}

// FoodItem is one row of the catalog: nutrient content and price of one
// reference portion (100 g) of a food.
type FoodItem struct {
	Name      string               `json:"name" yaml:"name"`
	Price     float64              `json:"price" yaml:"price"`
	Nutrients map[Nutrient]float64 `json:"nutrients" yaml:"nutrients"`
}

// Amount returns the coefficient of n, 0 when the item does not list it.
func (f FoodItem) Amount(n Nutrient) float64 {
	return f.Nutrients[n]
}

func (f FoodItem) clone() FoodItem {
	nutrients := make(map[Nutrient]float64, len(f.Nutrients))
	for k, v := range f.Nutrients {
		nutrients[k] = v
	}
	f.Nutrients = nutrients
	return f
}

func validNumber(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
