package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// recipeColumns is the ordered list of columns selected in recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, author_id, name, image, text, cooking_time, created_at, updated_at`

// scanRecipe scans the recipe row itself. Tags and ingredient lines are
// loaded separately by loadRecipeChildren.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.AuthorID,
		&r.Name,
		&r.Image,
		&r.Text,
		&r.CookingTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	r.Tags = []*domain.Tag{}
	r.Ingredients = []domain.RecipeIngredient{}

	return &r, nil
}

// recipeWriteError maps a failed recipe write to a store error.
func recipeWriteError(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed: recipes.name") {
		return store.ErrRecipeNameTaken.WithCause(err)
	}
	return constraintError(err)
}

// CreateRecipe inserts the recipe together with its tag set and ingredient
// lines in a single transaction. Line IDs are assigned here.
// Returns store.ErrRecipeNameTaken on a duplicate name and store.ErrNotFound
// when a referenced author, tag or ingredient does not exist.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, author_id, name, image, text, cooking_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.AuthorID,
		r.Name,
		r.Image,
		r.Text,
		r.CookingTime,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return recipeWriteError(err)
	}

	if err := insertRecipeChildren(ctx, tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRecipe rewrites the recipe's scalar fields and replaces its tag set
// and ingredient lines wholesale, all in one transaction.
// Returns store.ErrRecipeNotFound if the recipe does not exist.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET name = ?, image = ?, text = ?, cooking_time = ?, updated_at = ?
		WHERE id = ?`,
		r.Name,
		r.Image,
		r.Text,
		r.CookingTime,
		formatTime(r.UpdatedAt),
		r.ID,
	)
	if err != nil {
		return recipeWriteError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("delete recipe_ingredients: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("delete recipe_tags: %w", err)
	}

	if err := insertRecipeChildren(ctx, tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// insertRecipeChildren writes the tag set and ingredient lines of r in
// their given order. Every line receives a fresh ID.
func insertRecipeChildren(ctx context.Context, tx *sql.Tx, r *domain.Recipe) error {
	for i := range r.Ingredients {
		line := &r.Ingredients[i]
		line.ID = uuid.NewString()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (id, recipe_id, ingredient_id, amount, position)
			VALUES (?, ?, ?, ?, ?)`,
			line.ID,
			r.ID,
			line.IngredientID,
			line.Amount,
			i,
		)
		if err != nil {
			return constraintError(err)
		}
	}

	for i, t := range r.Tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id, position)
			VALUES (?, ?, ?)`,
			r.ID,
			t.ID,
			i,
		)
		if err != nil {
			return constraintError(err)
		}
	}

	return nil
}

// DeleteRecipe removes a recipe. Its lines, tag links and every favorite
// or cart entry pointing at it are removed by cascade.
// Returns store.ErrRecipeNotFound if the recipe does not exist.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRecipeNotFound
	}
	return nil
}

// GetRecipe retrieves a recipe with its tags and ingredient lines.
// Returns store.ErrRecipeNotFound if the recipe does not exist.
func (s *Store) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeChildren(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns recipes newest first, with tags and ingredient lines.
func (s *Store) ListRecipes(ctx context.Context, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes`
	var args []any
	if filter.AuthorID != "" {
		query += ` WHERE author_id = ?`
		args = append(args, filter.AuthorID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadRecipeChildren(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// loadRecipeChildren fills Tags and Ingredients of every recipe with two
// batched queries.
func (s *Store) loadRecipeChildren(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Recipe, len(recipes))
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		byID[r.ID] = r
		ids[i] = r.ID
	}
	in := placeholders(len(ids))
	args := stringArgs(ids)

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug, t.created_at
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (`+in+`)
		ORDER BY rt.recipe_id, rt.position`, args...)
	if err != nil {
		return fmt.Errorf("query recipe tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var recipeID string
		var t domain.Tag
		var createdAt string
		if err := tagRows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug, &createdAt); err != nil {
			return err
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		byID[recipeID].Tags = append(byID[recipeID].Tags, &t)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	lineRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, ri.id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (`+in+`)
		ORDER BY ri.recipe_id, ri.position`, args...)
	if err != nil {
		return fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var recipeID string
		var line domain.RecipeIngredient
		if err := lineRows.Scan(&recipeID, &line.ID, &line.IngredientID, &line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return err
		}
		byID[recipeID].Ingredients = append(byID[recipeID].Ingredients, line)
	}
	return lineRows.Err()
}

// CountRecipesByAuthors returns the number of recipes per author.
// Authors without recipes are absent from the map.
func (s *Store) CountRecipesByAuthors(ctx context.Context, authorIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT author_id, COUNT(*) FROM recipes
		WHERE author_id IN (`+placeholders(len(authorIDs))+`)
		GROUP BY author_id`, stringArgs(authorIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var authorID string
		var n int
		if err := rows.Scan(&authorID, &n); err != nil {
			return nil, err
		}
		counts[authorID] = n
	}
	return counts, rows.Err()
}

// ListRecipesByAuthors returns each author's recipes newest first, cut to
// limit per author when limit > 0. Only the recipe rows are loaded; Tags
// and Ingredients stay empty.
func (s *Store) ListRecipesByAuthors(ctx context.Context, authorIDs []string, limit int) (map[string][]*domain.Recipe, error) {
	byAuthor := make(map[string][]*domain.Recipe, len(authorIDs))
	if len(authorIDs) == 0 {
		return byAuthor, nil
	}

	query := `
		SELECT ` + recipeColumns + ` FROM (
			SELECT ` + recipeColumns + `,
				ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, rowid DESC) AS rn
			FROM recipes
			WHERE author_id IN (` + placeholders(len(authorIDs)) + `)
		)`
	args := stringArgs(authorIDs)
	if limit > 0 {
		query += ` WHERE rn <= ?`
		args = append(args, limit)
	}
	query += ` ORDER BY author_id, rn`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		byAuthor[r.AuthorID] = append(byAuthor[r.AuthorID], r)
	}
	return byAuthor, rows.Err()
}

// RecipeNameTaken reports whether a recipe other than excludeID uses name.
func (s *Store) RecipeNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM recipes WHERE name = ? AND id <> ?)`,
		name, excludeID,
	).Scan(&taken)
	return taken, err
}
