package api

import "github.com/foodgramapp/foodgram-server/internal/service"

// Services groups all business logic services used by the API server.
type Services struct {
	Catalog   *service.CatalogService
	Users     *service.UserService
	Recipes   *service.RecipeService
	Relations *service.RelationService
	Shopping  *service.ShoppingListService
}
