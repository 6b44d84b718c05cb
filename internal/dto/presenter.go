package dto

import (
	"context"
	"fmt"

	"github.com/foodgramapp/foodgram-server/internal/domain"
)

// Store is the read surface the presenter needs.
type Store interface {
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ListRecipesByAuthors(ctx context.Context, authorIDs []string, limit int) (map[string][]*domain.Recipe, error)
	CountRecipesByAuthors(ctx context.Context, authorIDs []string) (map[string]int, error)
	ListRelationTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error)
}

// Presenter builds response views for a given viewer.
//
// Every method takes the viewer's ID explicitly; an empty ID is the
// anonymous viewer, for whom every relation flag is false. Relation sets
// and authors are fetched once per call, not once per item; so are the
// recipe lists of subscribed authors.
type Presenter struct {
	store Store
}

// NewPresenter creates a new presenter.
func NewPresenter(store Store) *Presenter {
	return &Presenter{store: store}
}

// viewerRelations holds the target sets of one viewer.
type viewerRelations struct {
	favorites     map[string]bool
	cart          map[string]bool
	subscriptions map[string]bool
}

func (p *Presenter) loadRelations(ctx context.Context, viewerID string, kinds ...domain.RelationKind) (*viewerRelations, error) {
	vr := &viewerRelations{
		favorites:     map[string]bool{},
		cart:          map[string]bool{},
		subscriptions: map[string]bool{},
	}
	if viewerID == "" {
		return vr, nil
	}

	for _, kind := range kinds {
		targets, err := p.store.ListRelationTargets(ctx, kind, viewerID)
		if err != nil {
			return nil, fmt.Errorf("load %s relations: %w", kind, err)
		}
		set := vr.set(kind)
		for _, t := range targets {
			set[t] = true
		}
	}
	return vr, nil
}

func (vr *viewerRelations) set(kind domain.RelationKind) map[string]bool {
	switch kind {
	case domain.RelationFavorite:
		return vr.favorites
	case domain.RelationShoppingCart:
		return vr.cart
	default:
		return vr.subscriptions
	}
}

// Tag maps a tag.
func Tag(t *domain.Tag) TagView {
	return TagView{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

// Tags maps a tag list.
func Tags(tags []*domain.Tag) []TagView {
	out := make([]TagView, len(tags))
	for i, t := range tags {
		out[i] = Tag(t)
	}
	return out
}

// Ingredient maps a catalog ingredient.
func Ingredient(i *domain.Ingredient) IngredientView {
	return IngredientView{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

// Ingredients maps a catalog ingredient list.
func Ingredients(ingredients []*domain.Ingredient) []IngredientView {
	out := make([]IngredientView, len(ingredients))
	for i, ing := range ingredients {
		out[i] = Ingredient(ing)
	}
	return out
}

// RecipeShort maps a recipe to its compact form.
func RecipeShort(r *domain.Recipe) RecipeShortView {
	return RecipeShortView{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

func userView(u *domain.User, vr *viewerRelations) UserView {
	return UserView{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: vr.subscriptions[u.ID],
	}
}

// User maps one user relative to viewerID.
func (p *Presenter) User(ctx context.Context, viewerID string, u *domain.User) (*UserView, error) {
	views, err := p.Users(ctx, viewerID, []*domain.User{u})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Users maps a user list relative to viewerID.
func (p *Presenter) Users(ctx context.Context, viewerID string, users []*domain.User) ([]UserView, error) {
	vr, err := p.loadRelations(ctx, viewerID, domain.RelationSubscription)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, len(users))
	for i, u := range users {
		out[i] = userView(u, vr)
	}
	return out, nil
}

// Recipe maps one recipe relative to viewerID.
func (p *Presenter) Recipe(ctx context.Context, viewerID string, r *domain.Recipe) (*RecipeView, error) {
	views, err := p.Recipes(ctx, viewerID, []*domain.Recipe{r})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Recipes maps a recipe list relative to viewerID.
func (p *Presenter) Recipes(ctx context.Context, viewerID string, recipes []*domain.Recipe) ([]RecipeView, error) {
	vr, err := p.loadRelations(ctx, viewerID,
		domain.RelationFavorite, domain.RelationShoppingCart, domain.RelationSubscription)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(recipes))
	seen := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		if !seen[r.AuthorID] {
			seen[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	var authors map[string]*domain.User
	if len(authorIDs) > 0 {
		found, err := p.store.GetUsersByIDs(ctx, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch authors: %w", err)
		}
		authors = make(map[string]*domain.User, len(found))
		for _, u := range found {
			authors[u.ID] = u
		}
	}

	out := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		view := RecipeView{
			ID:               r.ID,
			Tags:             Tags(r.Tags),
			Ingredients:      make([]RecipeIngredientView, len(r.Ingredients)),
			IsFavorited:      vr.favorites[r.ID],
			IsInShoppingCart: vr.cart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}
		if author, ok := authors[r.AuthorID]; ok {
			view.Author = userView(author, vr)
		} else {
			view.Author = UserView{ID: r.AuthorID}
		}
		for j, line := range r.Ingredients {
			view.Ingredients[j] = RecipeIngredientView{
				ID:              line.IngredientID,
				Name:            line.Name,
				MeasurementUnit: line.MeasurementUnit,
				Amount:          line.Amount,
			}
		}
		out[i] = view
	}
	return out, nil
}

// Subscription maps one followed author with their recipes.
func (p *Presenter) Subscription(ctx context.Context, viewerID string, author *domain.User, recipesLimit int) (*SubscriptionView, error) {
	views, err := p.Subscriptions(ctx, viewerID, []*domain.User{author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Subscriptions maps followed authors. When recipesLimit is positive each
// author's recipe list is cut to that many, newest first; RecipesCount
// always reports the full count.
func (p *Presenter) Subscriptions(ctx context.Context, viewerID string, authors []*domain.User, recipesLimit int) ([]SubscriptionView, error) {
	vr, err := p.loadRelations(ctx, viewerID, domain.RelationSubscription)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	counts, err := p.store.CountRecipesByAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	byAuthor, err := p.store.ListRecipesByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("list recipes by authors: %w", err)
	}

	out := make([]SubscriptionView, len(authors))
	for i, a := range authors {
		recipes := byAuthor[a.ID]
		short := make([]RecipeShortView, len(recipes))
		for j, r := range recipes {
			short[j] = RecipeShort(r)
		}
		out[i] = SubscriptionView{
			UserView:     userView(a, vr),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		}
	}
	return out, nil
}
