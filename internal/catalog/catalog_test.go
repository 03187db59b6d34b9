package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	require.Equal(t, 12, c.Len())
	assert.Equal(t, []string{
		"Chicken", "Cassava", "Pasta", "Sweet potato", "Egg", "Hominy corn",
		"Powdered milk", "Carrot", "Potato", "Couscous flour", "Pera orange", "Papaya",
	}, c.Names())
	assert.Equal(t, []Nutrient{Protein, Carbohydrate, Lipid, Energy}, c.Nutrients())

	egg, err := c.Get("Egg")
	require.NoError(t, err)
	assert.Equal(t, 1.59, egg.Price)
	assert.Equal(t, 15.6, egg.Amount(Protein))
	assert.Equal(t, 240.2, egg.Amount(Energy))
}

func TestGetUnknownFood(t *testing.T) {
	_, err := Default().Get("Tofu")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Tofu", nf.Name)
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestNewRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []FoodItem
		want  error
	}{
		{name: "empty", items: nil, want: ErrEmptyCatalog},
		{name: "blank name", items: []FoodItem{{Name: "  ", Price: 1}}, want: ErrInvalidItem},
		{name: "duplicate", items: []FoodItem{{Name: "A", Price: 1}, {Name: "A", Price: 2}}, want: ErrDuplicateFood},
		{name: "negative price", items: []FoodItem{{Name: "A", Price: -1}}, want: ErrInvalidItem},
		{name: "nan coefficient", items: []FoodItem{{Name: "A", Price: 1, Nutrients: map[Nutrient]float64{Protein: math.NaN()}}}, want: ErrInvalidItem},
		{name: "inf coefficient", items: []FoodItem{{Name: "A", Price: 1, Nutrients: map[Nutrient]float64{Energy: math.Inf(1)}}}, want: ErrInvalidItem},
		{name: "empty nutrient key", items: []FoodItem{{Name: "A", Price: 1, Nutrients: map[Nutrient]float64{"": 1}}}, want: ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	src := []FoodItem{{Name: "A", Price: 1, Nutrients: map[Nutrient]float64{Protein: 2}}}
	c, err := New(src...)
	require.NoError(t, err)

	src[0].Nutrients[Protein] = 100
	all := c.All()
	all[0].Nutrients[Protein] = 50

	got, err := c.Get("A")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Amount(Protein))
}

func TestExtensibleNutrients(t *testing.T) {
	c, err := New(
		FoodItem{Name: "A", Price: 1, Nutrients: map[Nutrient]float64{Protein: 1, "iron": 0.5}},
		FoodItem{Name: "B", Price: 1, Nutrients: map[Nutrient]float64{"calcium": 3}},
	)
	require.NoError(t, err)

	assert.Equal(t, []Nutrient{Protein, "iron", "calcium"}, c.Nutrients())
	assert.True(t, c.HasNutrient("calcium"))
	assert.False(t, c.HasNutrient(Lipid))

	b, _ := c.Get("B")
	assert.Zero(t, b.Amount(Protein))
}
