package domain

import "time"

// RelationKind identifies one of the user-owned join relations.
type RelationKind string

const (
	// RelationFavorite links a user to a recipe they favorited.
	RelationFavorite RelationKind = "favorite"
	// RelationShoppingCart links a user to a recipe in their shopping cart.
	RelationShoppingCart RelationKind = "shopping_cart"
	// RelationSubscription links a follower to an author.
	RelationSubscription RelationKind = "subscription"
)

// Valid checks if the kind is known.
func (k RelationKind) Valid() bool {
	switch k {
	case RelationFavorite, RelationShoppingCart, RelationSubscription:
		return true
	default:
		return false
	}
}

// TargetsUser reports whether the relation points at a user rather than a recipe.
func (k RelationKind) TargetsUser() bool {
	return k == RelationSubscription
}

// Relation is a single (user, target) row of a relation kind.
// TargetID is a recipe ID for favorites and cart entries, an author ID for subscriptions.
type Relation struct {
	Kind      RelationKind `json:"kind"`
	UserID    string       `json:"user_id"`
	TargetID  string       `json:"target_id"`
	CreatedAt time.Time    `json:"created_at"`
}
