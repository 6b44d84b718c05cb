package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store/sqlite"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

// testEnv wires every service over one temporary SQLite database.
type testEnv struct {
	store     *sqlite.Store
	catalog   *CatalogService
	users     *UserService
	recipes   *RecipeService
	relations *RelationService
	shopping  *ShoppingListService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	v := validation.New()
	users := NewUserService(s, v, logger)
	users.SetPasswordParams(auth.PasswordParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})

	return &testEnv{
		store:     s,
		catalog:   NewCatalogService(s, logger),
		users:     users,
		recipes:   NewRecipeService(s, v, logger),
		relations: NewRelationService(s, logger),
		shopping:  NewShoppingListService(s, logger),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createTag(t *testing.T, id, name, color string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{ID: id, Name: name, Color: color, Slug: id, CreatedAt: time.Now()}
	require.NoError(t, e.store.CreateTag(context.Background(), tag))
	return tag
}

func (e *testEnv) createIngredient(t *testing.T, id, name, unit string) *domain.Ingredient {
	t.Helper()
	ing := &domain.Ingredient{ID: id, Name: name, MeasurementUnit: unit, CreatedAt: time.Now()}
	require.NoError(t, e.store.CreateIngredient(context.Background(), ing))
	return ing
}

func amounts(pairs ...any) []domain.IngredientAmount {
	out := make([]domain.IngredientAmount, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.IngredientAmount{
			IngredientID: pairs[i].(string),
			Amount:       pairs[i+1].(int),
		})
	}
	return out
}
