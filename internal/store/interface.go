// Package store defines the persistence interface for the Foodgram server.
package store

import (
	"context"

	"github.com/foodgramapp/foodgram-server/internal/domain"
)

// RecipeFilter narrows a recipe listing.
// Results are always newest first.
type RecipeFilter struct {
	AuthorID string // Only recipes by this author when set
	Limit    int    // Maximum number of recipes when > 0
}

// Store defines the interface for all persistence operations.
//
// Uniqueness and self-reference rules are enforced by the backing store's
// constraints, so concurrent duplicate writes fail with ErrAlreadyExists
// even when they race past an application-level check.
type Store interface {
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// Ingredients
	CreateIngredient(ctx context.Context, ingredient *domain.Ingredient) error
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	GetIngredientsByIDs(ctx context.Context, ids []string) ([]*domain.Ingredient, error)
	ListIngredients(ctx context.Context) ([]*domain.Ingredient, error)

	// Recipes
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]*domain.Recipe, error)
	ListRecipesByAuthors(ctx context.Context, authorIDs []string, limit int) (map[string][]*domain.Recipe, error)
	CountRecipesByAuthors(ctx context.Context, authorIDs []string) (map[string]int, error)
	RecipeNameTaken(ctx context.Context, name, excludeID string) (bool, error)

	// Relations (favorites, shopping cart, subscriptions)
	AddRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) error
	RemoveRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) error
	HasRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error)
	ListRelationTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error)

	// Shopping list
	GetShoppingList(ctx context.Context, userID string) (domain.ShoppingList, error)
}
