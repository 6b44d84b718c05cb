package service

import (
	"context"
	"fmt"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

// Validation messages for recipe requests.
const (
	msgNoTags            = "select at least one tag"
	msgDuplicateTags     = "tags must be unique"
	msgNoIngredients     = "add at least one ingredient"
	msgRepeatIngredients = "ingredients must not repeat"
	msgAmountTooSmall    = "amount must be at least 1"
	msgCookingTime       = "cooking time must be at least 1 minute"
	msgNameTaken         = "recipe with this name already exists"
)

// validate runs the recipe rule pipeline over req. On success it returns
// the resolved tags and ingredient lines in request order, ready to store.
// excludeID is the recipe being updated, whose own name is not a collision.
func (s *RecipeService) validate(ctx context.Context, req *RecipeRequest, excludeID string) ([]*domain.Tag, []domain.RecipeIngredient, error) {
	var (
		tagsByID        map[string]*domain.Tag
		ingredientsByID map[string]*domain.Ingredient
	)

	p := validation.NewPipeline(s.validator).
		Add("tags", func(context.Context) (string, error) {
			if len(req.Tags) == 0 {
				return msgNoTags, nil
			}
			return "", nil
		}).
		Add("tags", func(context.Context) (string, error) {
			if hasDuplicates(req.Tags) {
				return msgDuplicateTags, nil
			}
			return "", nil
		}).
		Add("tags", func(ctx context.Context) (string, error) {
			found, err := s.store.GetTagsByIDs(ctx, req.Tags)
			if err != nil {
				return "", err
			}
			tagsByID = make(map[string]*domain.Tag, len(found))
			for _, t := range found {
				tagsByID[t.ID] = t
			}
			for _, tagID := range req.Tags {
				if _, ok := tagsByID[tagID]; !ok {
					return fmt.Sprintf("tag %q does not exist", tagID), nil
				}
			}
			return "", nil
		}).
		Add("ingredients", func(context.Context) (string, error) {
			if len(req.Ingredients) == 0 {
				return msgNoIngredients, nil
			}
			return "", nil
		}).
		Add("ingredients", func(context.Context) (string, error) {
			ids := make([]string, len(req.Ingredients))
			for i, line := range req.Ingredients {
				ids[i] = line.IngredientID
			}
			if hasDuplicates(ids) {
				return msgRepeatIngredients, nil
			}
			return "", nil
		}).
		Add("ingredients", func(context.Context) (string, error) {
			for _, line := range req.Ingredients {
				if line.Amount < 1 {
					return msgAmountTooSmall, nil
				}
			}
			return "", nil
		}).
		Add("ingredients", func(ctx context.Context) (string, error) {
			ids := make([]string, len(req.Ingredients))
			for i, line := range req.Ingredients {
				ids[i] = line.IngredientID
			}
			found, err := s.store.GetIngredientsByIDs(ctx, ids)
			if err != nil {
				return "", err
			}
			ingredientsByID = make(map[string]*domain.Ingredient, len(found))
			for _, ing := range found {
				ingredientsByID[ing.ID] = ing
			}
			for _, ingID := range ids {
				if _, ok := ingredientsByID[ingID]; !ok {
					return fmt.Sprintf("ingredient %q does not exist", ingID), nil
				}
			}
			return "", nil
		}).
		Add("cooking_time", func(context.Context) (string, error) {
			if req.CookingTime < 1 {
				return msgCookingTime, nil
			}
			return "", nil
		}).
		Add("name", func(ctx context.Context) (string, error) {
			taken, err := s.store.RecipeNameTaken(ctx, req.Name, excludeID)
			if err != nil {
				return "", err
			}
			if taken {
				return msgNameTaken, nil
			}
			return "", nil
		})

	if err := p.Run(ctx, req); err != nil {
		return nil, nil, err
	}

	tags := make([]*domain.Tag, len(req.Tags))
	for i, tagID := range req.Tags {
		tags[i] = tagsByID[tagID]
	}

	lines := make([]domain.RecipeIngredient, len(req.Ingredients))
	for i, line := range req.Ingredients {
		ing := ingredientsByID[line.IngredientID]
		lines[i] = domain.RecipeIngredient{
			IngredientID:    ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          line.Amount,
		}
	}

	return tags, lines, nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
