// Package dto maps domain aggregates to viewer-relative response shapes.
package dto

// TagView is the public form of a tag.
type TagView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientView is the public form of a catalog ingredient.
type IngredientView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// UserView is the public form of a user. IsSubscribed is relative to the viewer.
type UserView struct {
	Email        string `json:"email"`
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientView is one quantity line, keyed by the catalog ingredient.
type RecipeIngredientView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full form of a recipe. The two flags are relative to the viewer.
type RecipeView struct {
	ID               string                 `json:"id"`
	Tags             []TagView              `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// RecipeShortView is the compact recipe form used in favorites, the cart
// and subscription listings.
type RecipeShortView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView is a followed author with their newest recipes.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeShortView `json:"recipes"`
	RecipesCount int               `json:"recipes_count"`
}
