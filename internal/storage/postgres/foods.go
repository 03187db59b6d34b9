package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/diet-hub/internal/storage"
	"github.com/jackc/pgx/v5"
)

// foodRow — одна строка LEFT JOIN foods × food_nutrients.
type foodRow struct {
	food     storage.Food
	nutrient *string
	amount   *float64
}

func (s *PostgresStorage) ListFoods(ctx context.Context) ([]storage.Food, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT f.name, f.price, f.position, f.updated_at, n.nutrient, n.amount
		FROM foods f
		LEFT JOIN food_nutrients n ON n.food_name = f.name
		ORDER BY f.position ASC, f.name ASC, n.nutrient ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var joined []foodRow
	for rows.Next() {
		var r foodRow
		if err := rows.Scan(&r.food.Name, &r.food.Price, &r.food.Position, &r.food.UpdatedAt, &r.nutrient, &r.amount); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		joined = append(joined, r)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating foods: %w", rows.Err())
	}

	return groupFoodRows(joined), nil
}

// groupFoodRows собирает продукты по имени в порядке первого появления,
// поэтому продукт не дублируется, даже если его строки идут вперемешку с чужими.
func groupFoodRows(rows []foodRow) []storage.Food {
	var foods []storage.Food
	index := make(map[string]int)
	for _, r := range rows {
		k, ok := index[r.food.Name]
		if !ok {
			f := r.food
			f.Nutrients = make(map[string]float64)
			k = len(foods)
			index[f.Name] = k
			foods = append(foods, f)
		}
		if r.nutrient != nil && r.amount != nil {
			foods[k].Nutrients[*r.nutrient] = *r.amount
		}
	}
	return foods
}

func (s *PostgresStorage) ReplaceFoods(ctx context.Context, foods []storage.Food) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// food_nutrients удаляется каскадом
	if _, err := tx.Exec(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	foodRows := make([][]any, 0, len(foods))
	var nutrientRows [][]any
	for i, f := range foods {
		foodRows = append(foodRows, []any{f.Name, f.Price, i})
		for nutrient, amount := range f.Nutrients {
			nutrientRows = append(nutrientRows, []any{f.Name, nutrient, amount})
		}
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"foods"},
		[]string{"name", "price", "position"},
		pgx.CopyFromRows(foodRows),
	); err != nil {
		return fmt.Errorf("failed to insert foods: %w", err)
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"food_nutrients"},
		[]string{"food_name", "nutrient", "amount"},
		pgx.CopyFromRows(nutrientRows),
	); err != nil {
		return fmt.Errorf("failed to insert food nutrients: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit foods: %w", err)
	}
	return nil
}
