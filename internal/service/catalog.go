package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/id"
	"github.com/foodgramapp/foodgram-server/internal/store"
	"github.com/foodgramapp/foodgram-server/internal/util"
)

// CatalogService serves the read-mostly Tag and Ingredient reference data.
type CatalogService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// ListTags returns every tag ordered by name.
func (s *CatalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// GetTag returns one tag.
func (s *CatalogService) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	t, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, fromStore(err)
	}
	return t, nil
}

// ListIngredients returns every ingredient ordered by name.
func (s *CatalogService) ListIngredients(ctx context.Context) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx)
}

// GetIngredient returns one ingredient.
func (s *CatalogService) GetIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	i, err := s.store.GetIngredient(ctx, ingredientID)
	if err != nil {
		return nil, fromStore(err)
	}
	return i, nil
}

// CatalogTag is one tag entry of a seed file. Slug defaults to the
// slugified name.
type CatalogTag struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Slug  string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// CatalogIngredient is one ingredient entry of a seed file.
type CatalogIngredient struct {
	Name            string `json:"name" yaml:"name"`
	MeasurementUnit string `json:"measurement_unit" yaml:"measurement_unit"`
}

// Catalog is the reference data loaded by the seed command.
type Catalog struct {
	Tags        []CatalogTag        `json:"tags" yaml:"tags"`
	Ingredients []CatalogIngredient `json:"ingredients" yaml:"ingredients"`
}

// SeedResult counts what a seed run did.
type SeedResult struct {
	TagsCreated        int
	TagsSkipped        int
	IngredientsCreated int
	IngredientsSkipped int
}

// Seed inserts every catalog entry that is not already present.
// Entries colliding with an existing row are counted as skipped, so the
// same file can be loaded repeatedly.
func (s *CatalogService) Seed(ctx context.Context, c Catalog) (*SeedResult, error) {
	var res SeedResult
	now := time.Now()

	for _, ct := range c.Tags {
		tag, err := newCatalogTag(ct, now)
		if err != nil {
			return &res, err
		}
		err = s.store.CreateTag(ctx, tag)
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			res.TagsSkipped++
		case err != nil:
			return &res, fmt.Errorf("create tag %q: %w", ct.Name, fromStore(err))
		default:
			res.TagsCreated++
		}
	}

	for _, ci := range c.Ingredients {
		name := strings.TrimSpace(ci.Name)
		unit := strings.TrimSpace(ci.MeasurementUnit)
		if name == "" || unit == "" {
			return &res, domainerrors.Validationf("ingredient %q: name and measurement_unit are required", ci.Name)
		}
		err := s.store.CreateIngredient(ctx, &domain.Ingredient{
			ID:              id.MustGenerate(id.PrefixIngredient),
			Name:            name,
			MeasurementUnit: unit,
			CreatedAt:       now,
		})
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			res.IngredientsSkipped++
		case err != nil:
			return &res, fmt.Errorf("create ingredient %q: %w", name, err)
		default:
			res.IngredientsCreated++
		}
	}

	s.logger.Info("catalog seeded",
		"tags_created", res.TagsCreated,
		"tags_skipped", res.TagsSkipped,
		"ingredients_created", res.IngredientsCreated,
		"ingredients_skipped", res.IngredientsSkipped,
	)

	return &res, nil
}

func newCatalogTag(ct CatalogTag, now time.Time) (*domain.Tag, error) {
	name := strings.TrimSpace(ct.Name)
	if name == "" {
		return nil, domainerrors.Validation("tag name is required")
	}
	slug := strings.TrimSpace(ct.Slug)
	if slug == "" {
		slug = util.Slugify(name)
	}
	if !util.IsValidSlug(slug) {
		return nil, domainerrors.Validationf("tag %q: slug %q is not URL-safe", name, slug)
	}
	return &domain.Tag{
		ID:        id.MustGenerate(id.PrefixTag),
		Name:      name,
		Color:     strings.ToUpper(strings.TrimSpace(ct.Color)),
		Slug:      slug,
		CreatedAt: now,
	}, nil
}
