package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/id"
	"github.com/foodgramapp/foodgram-server/internal/store"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

// RecipeRequest is the complete writable state of a recipe. Create and
// update both take the full set; there is no partial update of tags or
// ingredient lines.
type RecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Image       string                    `json:"image" validate:"max=2048"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time"`
	Tags        []string                  `json:"tags"`
	Ingredients []domain.IngredientAmount `json:"ingredients"`
}

// RecipeService is the recipe aggregate writer and reader.
type RecipeService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store store.Store, validator *validation.Validator, logger *slog.Logger) *RecipeService {
	return &RecipeService{store: store, validator: validator, logger: logger}
}

// Get returns a recipe with its tags and ingredient lines.
func (s *RecipeService) Get(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	r, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, fromStore(err)
	}
	return r, nil
}

// List returns recipes newest first.
func (s *RecipeService) List(ctx context.Context, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	return s.store.ListRecipes(ctx, filter)
}

// Create validates req and writes a new recipe authored by viewerID.
// The recipe row, its tag links and its ingredient lines are committed
// together or not at all.
func (s *RecipeService) Create(ctx context.Context, viewerID string, req RecipeRequest) (*domain.Recipe, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}

	tags, ingredients, err := s.validate(ctx, &req, "")
	if err != nil {
		return nil, err
	}

	recipeID, err := id.Generate(id.PrefixRecipe)
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	now := time.Now()
	recipe := &domain.Recipe{
		ID:          recipeID,
		AuthorID:    viewerID,
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, writeError(err)
	}

	s.logger.Info("recipe created",
		"recipe_id", recipe.ID,
		"user_id", viewerID,
		"tags", len(tags),
		"ingredients", len(ingredients),
	)

	return s.Get(ctx, recipe.ID)
}

// Update replaces the recipe's fields, tag set and ingredient lines.
// Every prior line is deleted and the new set written with fresh identities,
// even for lines that did not change. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, viewerID, recipeID string, req RecipeRequest) (*domain.Recipe, error) {
	existing, err := s.authorize(ctx, viewerID, recipeID)
	if err != nil {
		return nil, err
	}

	tags, ingredients, err := s.validate(ctx, &req, recipeID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Image = req.Image
	existing.Text = req.Text
	existing.CookingTime = req.CookingTime
	existing.Tags = tags
	existing.Ingredients = ingredients
	existing.Touch()

	if err := s.store.UpdateRecipe(ctx, existing); err != nil {
		return nil, writeError(err)
	}

	s.logger.Info("recipe updated",
		"recipe_id", recipeID,
		"user_id", viewerID,
	)

	return s.Get(ctx, recipeID)
}

// Delete removes a recipe and, by cascade, every favorite and cart entry
// pointing at it. Only the author may delete.
func (s *RecipeService) Delete(ctx context.Context, viewerID, recipeID string) error {
	if _, err := s.authorize(ctx, viewerID, recipeID); err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		return fromStore(err)
	}

	s.logger.Info("recipe deleted",
		"recipe_id", recipeID,
		"user_id", viewerID,
	)
	return nil
}

// authorize loads the recipe and checks that viewerID authored it.
func (s *RecipeService) authorize(ctx context.Context, viewerID, recipeID string) (*domain.Recipe, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.IsAuthoredBy(viewerID) {
		return nil, domainerrors.Forbidden("only the author can change this recipe")
	}
	return recipe, nil
}

// writeError maps a failed aggregate write. A name collision that raced
// past validation is still reported as a validation failure on "name".
func writeError(err error) error {
	var se *store.Error
	if errors.As(err, &se) && se.Message == store.ErrRecipeNameTaken.Message {
		return domainerrors.FieldValidation("name", msgNameTaken).WithCause(err)
	}
	return fromStore(err)
}
