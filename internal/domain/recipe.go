package domain

import "time"

// Recipe is the aggregate root for a user's recipe.
// Tags and Ingredients are associations and are always written as a whole set.
type Recipe struct {
	ID          string             `json:"id"`
	AuthorID    string             `json:"author_id"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"` // Minutes, >= 1
	Tags        []*Tag             `json:"tags"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RecipeIngredient is one quantity line of a recipe.
// A recipe lists each ingredient at most once.
type RecipeIngredient struct {
	ID              string `json:"id"` // Line identity, regenerated on every rewrite
	IngredientID    string `json:"ingredient_id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// IngredientAmount is a requested (ingredient, amount) pair.
type IngredientAmount struct {
	IngredientID string `json:"id"`
	Amount       int    `json:"amount"`
}

// TagIDs returns the IDs of the recipe's tags in stored order.
func (r *Recipe) TagIDs() []string {
	ids := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IsAuthoredBy reports whether userID owns the recipe.
// An empty userID never owns anything.
func (r *Recipe) IsAuthoredBy(userID string) bool {
	return userID != "" && r.AuthorID == userID
}

// Touch updates the UpdatedAt timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}
