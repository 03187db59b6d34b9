// Package catalog holds the immutable table of food items the diet solver
// chooses from, and the loaders that build it from the builtin table, a
// YAML/JSON definition, a blob object or the database.
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is a read-only set of food items. It is never mutated after New,
// so it can be shared between goroutines without locking.
type Catalog struct {
	items     []FoodItem
	index     map[string]int
	nutrients []Nutrient
}

// New builds a catalog from items, keeping their order.
func New(items ...FoodItem) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		items: make([]FoodItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	seen := make(map[Nutrient]bool)

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidItem)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFood, name)
		}
		if !validNumber(item.Price) {
			return nil, fmt.Errorf("%w: %q price=%v", ErrInvalidItem, name, item.Price)
		}

		item = item.clone()
		item.Name = name
		// Nutrient order follows the definition so listings are stable.
		for _, n := range sortedNutrients(item.Nutrients) {
			v := item.Nutrients[n]
			if strings.TrimSpace(string(n)) == "" {
				return nil, fmt.Errorf("%w: %q has an empty nutrient key", ErrInvalidItem, name)
			}
			if !validNumber(v) {
				return nil, fmt.Errorf("%w: %q %s=%v", ErrInvalidItem, name, n, v)
			}
			if !seen[n] {
				seen[n] = true
				c.nutrients = append(c.nutrients, n)
			}
		}

		c.index[name] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, nil
}

// Get returns the item called name or a *NotFoundError.
func (c *Catalog) Get(name string) (FoodItem, error) {
	i, ok := c.index[name]
	if !ok {
		return FoodItem{}, &NotFoundError{Name: name}
	}
	return c.items[i].clone(), nil
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// All returns every item in catalog order.
func (c *Catalog) All() []FoodItem {
	out := make([]FoodItem, len(c.items))
	for i, item := range c.items {
		out[i] = item.clone()
	}
	return out
}

// Names returns item names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.items))
	for i, item := range c.items {
		out[i] = item.Name
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Nutrients returns every nutrient listed by at least one item.
func (c *Catalog) Nutrients() []Nutrient {
	out := make([]Nutrient, len(c.nutrients))
	copy(out, c.nutrients)
	return out
}

func (c *Catalog) HasNutrient(n Nutrient) bool {
	return slices.Contains(c.nutrients, n)
}

// sortedNutrients orders builtin nutrients first, then the rest by name.
func sortedNutrients(m map[Nutrient]float64) []Nutrient {
	out := make([]Nutrient, 0, len(m))
	for _, n := range []Nutrient{Protein, Carbohydrate, Lipid, Energy} {
		if _, ok := m[n]; ok {
			out = append(out, n)
		}
	}
	extra := make([]Nutrient, 0)
	for n := range m {
		if _, builtin := units[n]; !builtin {
			extra = append(extra, n)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
