package diet

import "github.com/fdg312/diet-hub/internal/catalog"

const (
	// DefaultMaxBound is the default upper bound in reference portions.
	DefaultMaxBound = 3.0
	// BoundStep is the granularity bounds are offered in.
	BoundStep = 0.1
)

// DefaultRequirement is the minimum school-meal intake: grams of protein,
// carbohydrate and lipid, kcal of energy.
func DefaultRequirement() Requirement {
	return Requirement{
		catalog.Protein:      15,
		catalog.Carbohydrate: 60,
		catalog.Lipid:        11,
		catalog.Energy:       400,
	}
}

// DefaultBounds allows every catalog item up to DefaultMaxBound.
func DefaultBounds(cat *catalog.Catalog) Bounds {
	return UniformBounds(cat, DefaultMaxBound)
}

// UniformBounds allows every catalog item up to limit.
func UniformBounds(cat *catalog.Catalog, limit float64) Bounds {
	b := make(Bounds, cat.Len())
	for _, name := range cat.Names() {
		b[name] = limit
	}
	return b
}

// Exclude returns a copy of bounds with the named items set to 0.
func Exclude(cat *catalog.Catalog, bounds Bounds, names ...string) (Bounds, error) {
	out := make(Bounds, len(bounds)+len(names))
	for k, v := range bounds {
		out[k] = v
	}
	for _, name := range names {
		if !cat.Has(name) {
			return nil, &UnknownFoodError{Food: name}
		}
		out[name] = 0
	}
	return out, nil
}
