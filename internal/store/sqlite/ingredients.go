package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

const ingredientColumns = `id, name, measurement_unit, created_at`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var i domain.Ingredient
	var createdAt string

	if err := scanner.Scan(&i.ID, &i.Name, &i.MeasurementUnit, &createdAt); err != nil {
		return nil, err
	}

	var err error
	i.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// CreateIngredient inserts a new ingredient.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateIngredient(ctx context.Context, i *domain.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, measurement_unit, created_at)
		VALUES (?, ?, ?, ?)`,
		i.ID,
		i.Name,
		i.MeasurementUnit,
		formatTime(i.CreatedAt),
	)
	return constraintError(err)
}

// GetIngredient retrieves an ingredient by ID.
// Returns store.ErrIngredientNotFound if it does not exist.
func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)

	i, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

// GetIngredientsByIDs returns the ingredients that exist among ids, ordered by name.
func (s *Store) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*domain.Ingredient, error) {
	if len(ids) == 0 {
		return []*domain.Ingredient{}, nil
	}
	return s.queryIngredients(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id IN (`+placeholders(len(ids))+`) ORDER BY name ASC`,
		stringArgs(ids)...)
}

// ListIngredients returns all ingredients ordered by name.
func (s *Store) ListIngredients(ctx context.Context) ([]*domain.Ingredient, error) {
	return s.queryIngredients(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients ORDER BY name ASC`)
}

func (s *Store) queryIngredients(ctx context.Context, query string, args ...any) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Ingredient{}
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
