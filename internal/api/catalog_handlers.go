package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgramapp/foodgram-server/internal/dto"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns every tag ordered by name",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/tags/{id}",
		Summary:     "Get tag",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/ingredients",
		Summary:     "List ingredients",
		Description: "Returns every ingredient ordered by name",
		Tags:        []string{"Ingredients"},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID: "getIngredient",
		Method:      http.MethodGet,
		Path:        "/api/ingredients/{id}",
		Summary:     "Get ingredient",
		Tags:        []string{"Ingredients"},
	}, s.handleGetIngredient)
}

// IDInput addresses a single resource.
type IDInput struct {
	ID string `path:"id" doc:"Resource ID"`
}

// TagOutput wraps a tag for Huma.
type TagOutput struct {
	Body dto.TagView
}

// TagListOutput wraps a tag list for Huma.
type TagListOutput struct {
	Body []dto.TagView
}

// IngredientOutput wraps an ingredient for Huma.
type IngredientOutput struct {
	Body dto.IngredientView
}

// IngredientListOutput wraps an ingredient list for Huma.
type IngredientListOutput struct {
	Body []dto.IngredientView
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.services.Catalog.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: dto.Tags(tags)}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *IDInput) (*TagOutput, error) {
	tag, err := s.services.Catalog.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: dto.Tag(tag)}, nil
}

func (s *Server) handleListIngredients(ctx context.Context, _ *struct{}) (*IngredientListOutput, error) {
	ingredients, err := s.services.Catalog.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	return &IngredientListOutput{Body: dto.Ingredients(ingredients)}, nil
}

func (s *Server) handleGetIngredient(ctx context.Context, input *IDInput) (*IngredientOutput, error) {
	ingredient, err := s.services.Catalog.GetIngredient(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &IngredientOutput{Body: dto.Ingredient(ingredient)}, nil
}
