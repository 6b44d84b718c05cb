package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/dto"
	"github.com/foodgramapp/foodgram-server/internal/service"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/recipes",
		Summary:     "List recipes",
		Description: "Returns recipes newest first",
		Tags:        []string{"Recipes"},
		Security:    bearerSecurity,
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/recipes",
		Summary:       "Create recipe",
		Tags:          []string{"Recipes"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "downloadShoppingCart",
		Method:      http.MethodGet,
		Path:        "/api/recipes/download_shopping_cart",
		Summary:     "Download shopping list",
		Description: "Returns the aggregated ingredients of every recipe in the cart as a text or PDF attachment",
		Tags:        []string{"Shopping cart"},
		Security:    bearerSecurity,
	}, s.handleDownloadShoppingCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/recipes/{id}",
		Summary:     "Get recipe",
		Tags:        []string{"Recipes"},
		Security:    bearerSecurity,
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Replaces every field of the recipe, including its tag and ingredient sets",
		Tags:        []string{"Recipes"},
		Security:    bearerSecurity,
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/recipes/{id}",
		Summary:       "Delete recipe",
		Tags:          []string{"Recipes"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)

	s.registerRecipeRelationRoutes("favorite", "Favorites", domain.RelationFavorite)
	s.registerRecipeRelationRoutes("shopping_cart", "Shopping cart", domain.RelationShoppingCart)
}

// registerRecipeRelationRoutes registers the add/remove pair of a
// per-user recipe relation under /api/recipes/{id}/<segment>.
func (s *Server) registerRecipeRelationRoutes(segment, tag string, kind domain.RelationKind) {
	path := "/api/recipes/{id}/" + segment

	huma.Register(s.api, huma.Operation{
		OperationID:   "add_" + segment,
		Method:        http.MethodPost,
		Path:          path,
		Summary:       "Add to " + tag,
		Tags:          []string{tag},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *IDInput) (*RecipeShortOutput, error) {
		return s.addRecipeRelation(ctx, kind, input.ID)
	})

	huma.Register(s.api, huma.Operation{
		OperationID:   "remove_" + segment,
		Method:        http.MethodDelete,
		Path:          path,
		Summary:       "Remove from " + tag,
		Tags:          []string{tag},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IDInput) (*struct{}, error) {
		if err := s.services.Relations.Remove(ctx, kind, viewerID(ctx), input.ID); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

// === DTOs ===

// RecipeIngredientRequest is one requested ingredient line.
type RecipeIngredientRequest struct {
	ID     string `json:"id,omitempty" doc:"Ingredient ID"`
	Amount int    `json:"amount,omitempty" doc:"Amount in the ingredient's unit"`
}

// RecipeRequest is the request body for creating or replacing a recipe.
// Field rules are enforced by the recipe service.
type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients,omitempty" doc:"Ingredient lines in display order"`
	Tags        []string                  `json:"tags,omitempty" doc:"Tag IDs in display order"`
	Image       string                    `json:"image,omitempty" doc:"Image reference"`
	Name        string                    `json:"name,omitempty" doc:"Recipe name"`
	Text        string                    `json:"text,omitempty" doc:"Description"`
	CookingTime int                       `json:"cooking_time,omitempty" doc:"Cooking time in minutes"`
}

func (r RecipeRequest) toService() service.RecipeRequest {
	lines := make([]domain.IngredientAmount, len(r.Ingredients))
	for i, line := range r.Ingredients {
		lines[i] = domain.IngredientAmount{IngredientID: line.ID, Amount: line.Amount}
	}
	return service.RecipeRequest{
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Tags:        r.Tags,
		Ingredients: lines,
	}
}

// CreateRecipeInput wraps the create recipe request for Huma.
type CreateRecipeInput struct {
	Body RecipeRequest
}

// UpdateRecipeInput wraps the update recipe request for Huma.
type UpdateRecipeInput struct {
	ID   string `path:"id" doc:"Recipe ID"`
	Body RecipeRequest
}

// ListRecipesInput contains parameters for listing recipes.
type ListRecipesInput struct {
	Author string `query:"author" doc:"Only recipes by this author"`
	Limit  int    `query:"limit" minimum:"0" doc:"Maximum number of recipes, 0 for all"`
}

// RecipeOutput wraps a recipe view for Huma.
type RecipeOutput struct {
	Body dto.RecipeView
}

// RecipeListOutput wraps a recipe list for Huma.
type RecipeListOutput struct {
	Body []dto.RecipeView
}

// RecipeShortOutput wraps the compact recipe form for Huma.
type RecipeShortOutput struct {
	Body dto.RecipeShortView
}

// DownloadShoppingCartInput selects the export format.
type DownloadShoppingCartInput struct {
	Format string `query:"format" enum:"txt,pdf" default:"txt" doc:"Export format"`
}

// DownloadShoppingCartOutput is a file attachment.
type DownloadShoppingCartOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*RecipeListOutput, error) {
	recipes, err := s.services.Recipes.List(ctx, store.RecipeFilter{
		AuthorID: input.Author,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, err
	}

	views, err := s.presenter.Recipes(ctx, viewerID(ctx), recipes)
	if err != nil {
		return nil, err
	}
	return &RecipeListOutput{Body: views}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	viewer := viewerID(ctx)
	recipe, err := s.services.Recipes.Create(ctx, viewer, input.Body.toService())
	if err != nil {
		return nil, err
	}
	return s.recipeOutput(ctx, viewer, recipe)
}

func (s *Server) handleGetRecipe(ctx context.Context, input *IDInput) (*RecipeOutput, error) {
	recipe, err := s.services.Recipes.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return s.recipeOutput(ctx, viewerID(ctx), recipe)
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	viewer := viewerID(ctx)
	recipe, err := s.services.Recipes.Update(ctx, viewer, input.ID, input.Body.toService())
	if err != nil {
		return nil, err
	}
	return s.recipeOutput(ctx, viewer, recipe)
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *IDInput) (*struct{}, error) {
	if err := s.services.Recipes.Delete(ctx, viewerID(ctx), input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) recipeOutput(ctx context.Context, viewer string, recipe *domain.Recipe) (*RecipeOutput, error) {
	view, err := s.presenter.Recipe(ctx, viewer, recipe)
	if err != nil {
		return nil, err
	}
	return &RecipeOutput{Body: *view}, nil
}

func (s *Server) addRecipeRelation(ctx context.Context, kind domain.RelationKind, recipeID string) (*RecipeShortOutput, error) {
	if err := s.services.Relations.Add(ctx, kind, viewerID(ctx), recipeID); err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &RecipeShortOutput{Body: dto.RecipeShort(recipe)}, nil
}

func (s *Server) handleDownloadShoppingCart(ctx context.Context, input *DownloadShoppingCartInput) (*DownloadShoppingCartOutput, error) {
	list, err := s.services.Shopping.Build(ctx, viewerID(ctx))
	if err != nil {
		return nil, err
	}

	if input.Format == formatPDF {
		body, err := s.services.Shopping.RenderPDF(list, time.Now())
		if err != nil {
			return nil, err
		}
		return &DownloadShoppingCartOutput{
			ContentType:        contentTypePDF,
			ContentDisposition: attachment(domain.ShoppingListPDFFilename),
			Body:               body,
		}, nil
	}

	return &DownloadShoppingCartOutput{
		ContentType:        contentTypeText,
		ContentDisposition: attachment(domain.ShoppingListFilename),
		Body:               s.services.Shopping.RenderText(list),
	}, nil
}
