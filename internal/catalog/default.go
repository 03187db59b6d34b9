package catalog

// Reference portion: 100 g. Protein, carbohydrate and lipid in grams,
// energy in kcal, price in BRL per portion.
var defaultItems = []FoodItem{
	{Name: "Chicken", Price: 2.33, Nutrients: map[Nutrient]float64{Protein: 25, Carbohydrate: 0, Lipid: 7.1, Energy: 170.4}},
	{Name: "Cassava", Price: 1.07, Nutrients: map[Nutrient]float64{Protein: 0.6, Carbohydrate: 30.1, Lipid: 0.3, Energy: 125.4}},
	{Name: "Pasta", Price: 0.80, Nutrients: map[Nutrient]float64{Protein: 9.36, Carbohydrate: 72, Lipid: 1.32, Energy: 338.4}},
	{Name: "Sweet potato", Price: 0.30, Nutrients: map[Nutrient]float64{Protein: 0.6, Carbohydrate: 18.4, Lipid: 0.1, Energy: 76.8}},
	{Name: "Egg", Price: 1.59, Nutrients: map[Nutrient]float64{Protein: 15.6, Carbohydrate: 1.2, Lipid: 18.6, Energy: 240.2}},
	{Name: "Hominy corn", Price: 1.66, Nutrients: map[Nutrient]float64{Protein: 7.2, Carbohydrate: 78.1, Lipid: 1.0, Energy: 357.6}},
	{Name: "Powdered milk", Price: 5.52, Nutrients: map[Nutrient]float64{Protein: 6.8, Carbohydrate: 9.9, Lipid: 0.0, Energy: 130}},
	{Name: "Carrot", Price: 0.76, Nutrients: map[Nutrient]float64{Protein: 0.9, Carbohydrate: 6.7, Lipid: 0.2, Energy: 29.9}},
	{Name: "Potato", Price: 1.51, Nutrients: map[Nutrient]float64{Protein: 1.2, Carbohydrate: 11.9, Lipid: 0.0, Energy: 51.6}},
	{Name: "Couscous flour", Price: 0.82, Nutrients: map[Nutrient]float64{Protein: 2.2, Carbohydrate: 25.3, Lipid: 0.7, Energy: 113.5}},
	{Name: "Pera orange", Price: 0.41, Nutrients: map[Nutrient]float64{Protein: 1.0, Carbohydrate: 9.0, Lipid: 0.1, Energy: 36.8}},
	{Name: "Papaya", Price: 1.44, Nutrients: map[Nutrient]float64{Protein: 0.5, Carbohydrate: 10.4, Lipid: 0.1, Energy: 40.2}},
}

// Default returns the published school-diet table.
func Default() *Catalog {
	c, err := New(defaultItems...)
	if err != nil {
		panic("catalog: builtin table is invalid: " + err.Error())
	}
	return c
}
