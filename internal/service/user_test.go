package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

func TestUserService_Register(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	u, err := env.users.Register(ctx, RegisterRequest{
		Email:     " anna@example.com ",
		Username:  "anna",
		FirstName: "Anna",
		LastName:  "Karenina",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)

	got, err := env.users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna Karenina", got.FullName())
}

func TestUserService_RegisterValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "anna")

	tests := []struct {
		name      string
		req       RegisterRequest
		wantField string
	}{
		{"bad username", RegisterRequest{Email: "x@example.com", Username: "an na", FirstName: "A", LastName: "B", Password: "p"}, "username"},
		{"bad email", RegisterRequest{Email: "nope", Username: "x", FirstName: "A", LastName: "B", Password: "p"}, "email"},
		{"missing last name", RegisterRequest{Email: "x@example.com", Username: "x", FirstName: "A", Password: "p"}, "last_name"},
		{"email taken", RegisterRequest{Email: "ANNA@example.com", Username: "other", FirstName: "A", LastName: "B", Password: "p"}, "email"},
		{"username taken", RegisterRequest{Email: "new@example.com", Username: "anna", FirstName: "A", LastName: "B", Password: "p"}, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Register(ctx, tt.req)
			assert.Contains(t, validationDetails(t, err), tt.wantField)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "anna")

	got, err := env.users.Authenticate(ctx, "ANNA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = env.users.Authenticate(ctx, "anna@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = env.users.Authenticate(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUserService_Subscriptions(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	fan := env.createUser(t, "fan")
	b := env.createUser(t, "bravo")
	a := env.createUser(t, "alpha")

	require.NoError(t, env.relations.Add(ctx, domain.RelationSubscription, fan.ID, b.ID))
	require.NoError(t, env.relations.Add(ctx, domain.RelationSubscription, fan.ID, a.ID))

	authors, err := env.users.Subscriptions(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, b.ID, authors[0].ID)
	assert.Equal(t, a.ID, authors[1].ID)

	_, err = env.users.Subscriptions(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUserService_DeleteSelfCascades(t *testing.T) {
	d := setupRecipeTest(t)
	ctx := context.Background()
	fan := d.env.createUser(t, "fan")

	recipe, err := d.env.recipes.Create(ctx, d.authorID, d.pancakes())
	require.NoError(t, err)
	require.NoError(t, d.env.relations.Add(ctx, domain.RelationShoppingCart, fan.ID, recipe.ID))
	require.NoError(t, d.env.relations.Add(ctx, domain.RelationSubscription, fan.ID, d.authorID))

	require.NoError(t, d.env.users.DeleteSelf(ctx, d.authorID))

	all, err := d.env.recipes.List(ctx, store.RecipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	list, err := d.env.shopping.Build(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	subs, err := d.env.users.Subscriptions(ctx, fan.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)

	assert.ErrorIs(t, d.env.users.DeleteSelf(ctx, ""), domainerrors.ErrUnauthorized)
}
