package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgramapp/foodgram-server/internal/dto"
)

func TestRegister(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())

	resp := ts.api.Post("/api/users", map[string]any{
		"email":      "cook@example.com",
		"username":   "cook",
		"first_name": "Ann",
		"last_name":  "Cook",
		"password":   "secret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	user := decode[dto.UserView](t, resp)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.Equal(t, "cook", user.Username)
	assert.False(t, user.IsSubscribed)
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestRegister_Validation(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())
	ts.register(t, "taken")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name:  "bad username",
			body:  map[string]any{"email": "a@example.com", "username": "no spaces", "first_name": "A", "last_name": "B", "password": "pw"},
			field: "username",
		},
		{
			name:  "missing email",
			body:  map[string]any{"username": "someone", "first_name": "A", "last_name": "B", "password": "pw"},
			field: "email",
		},
		{
			name:  "email taken",
			body:  map[string]any{"email": "TAKEN@example.com", "username": "other", "first_name": "A", "last_name": "B", "password": "pw"},
			field: "email",
		},
		{
			name:  "username taken",
			body:  map[string]any{"email": "fresh@example.com", "username": "taken", "first_name": "A", "last_name": "B", "password": "pw"},
			field: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/users", tt.body)
			body := requireError(t, resp, http.StatusBadRequest, "VALIDATION")
			assert.Contains(t, body.Details, tt.field)
		})
	}
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())
	ts.register(t, "alice")

	resp := ts.api.Post("/api/auth/token/login", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	requireError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")

	// Schema failures surface as validation errors, not 422.
	resp = ts.api.Post("/api/auth/token/login", map[string]any{"email": "alice@example.com"})
	requireError(t, resp, http.StatusBadRequest, "VALIDATION")
}

func TestMeAndDeleteMe(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())
	aliceID, alice := ts.register(t, "alice")

	requireError(t, ts.api.Get("/api/users/me"), http.StatusUnauthorized, "UNAUTHORIZED")
	requireError(t, ts.api.Delete("/api/users/me"), http.StatusUnauthorized, "UNAUTHORIZED")

	resp := ts.api.Get("/api/users/me", alice)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "alice", decode[dto.UserView](t, resp).Username)

	resp = ts.api.Delete("/api/users/me", alice)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	requireError(t, ts.api.Get("/api/users/"+aliceID), http.StatusNotFound, "NOT_FOUND")
}

func TestListAndGetUsers(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())
	aliceID, _ := ts.register(t, "alice")
	ts.register(t, "bob")

	resp := ts.api.Get("/api/users")
	require.Equal(t, http.StatusOK, resp.Code)
	users := decode[[]dto.UserView](t, resp)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	resp = ts.api.Get("/api/users/" + aliceID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "alice", decode[dto.UserView](t, resp).Username)

	requireError(t, ts.api.Get("/api/users/usr-missing"), http.StatusNotFound, "NOT_FOUND")
}

func TestSubscriptions(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())
	ts.createTag(t, "breakfast", "Breakfast", "#E26C2D")
	ts.createIngredient(t, "ing-egg", "eggs", "pcs")

	aliceID, alice := ts.register(t, "alice")
	bobID, bob := ts.register(t, "bob")

	for _, name := range []string{"Pancakes", "Waffles", "Crepes"} {
		resp := ts.api.Post("/api/recipes", alice, recipeBody(name, "breakfast", "ing-egg", 2))
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	}

	t.Run("anonymous cannot subscribe", func(t *testing.T) {
		requireError(t, ts.api.Post("/api/users/"+aliceID+"/subscribe"), http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("self subscription is rejected", func(t *testing.T) {
		body := requireError(t, ts.api.Post("/api/users/"+aliceID+"/subscribe", alice), http.StatusBadRequest, "VALIDATION")
		assert.Contains(t, body.Details, "author")
	})

	t.Run("unknown author", func(t *testing.T) {
		requireError(t, ts.api.Post("/api/users/usr-missing/subscribe", bob), http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("subscribe returns the author with limited recipes", func(t *testing.T) {
		resp := ts.api.Post("/api/users/"+aliceID+"/subscribe?recipes_limit=2", bob)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		sub := decode[dto.SubscriptionView](t, resp)
		assert.Equal(t, aliceID, sub.ID)
		assert.True(t, sub.IsSubscribed)
		assert.Equal(t, 3, sub.RecipesCount)
		require.Len(t, sub.Recipes, 2)
		assert.Equal(t, "Crepes", sub.Recipes[0].Name)
	})

	t.Run("second subscribe conflicts", func(t *testing.T) {
		requireError(t, ts.api.Post("/api/users/"+aliceID+"/subscribe", bob), http.StatusConflict, "CONFLICT")
	})

	t.Run("subscription flag is viewer relative", func(t *testing.T) {
		resp := ts.api.Get("/api/users/"+aliceID, bob)
		assert.True(t, decode[dto.UserView](t, resp).IsSubscribed)

		resp = ts.api.Get("/api/users/" + aliceID)
		assert.False(t, decode[dto.UserView](t, resp).IsSubscribed)

		resp = ts.api.Get("/api/users/"+bobID, alice)
		assert.False(t, decode[dto.UserView](t, resp).IsSubscribed)
	})

	t.Run("list subscriptions", func(t *testing.T) {
		resp := ts.api.Get("/api/users/subscriptions", bob)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		subs := decode[[]dto.SubscriptionView](t, resp)
		require.Len(t, subs, 1)
		assert.Len(t, subs[0].Recipes, 3)

		resp = ts.api.Get("/api/users/subscriptions?recipes_limit=1", bob)
		subs = decode[[]dto.SubscriptionView](t, resp)
		require.Len(t, subs, 1)
		assert.Len(t, subs[0].Recipes, 1)
		assert.Equal(t, 3, subs[0].RecipesCount)

		requireError(t, ts.api.Get("/api/users/subscriptions"), http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("unsubscribe", func(t *testing.T) {
		resp := ts.api.Delete("/api/users/"+aliceID+"/subscribe", bob)
		require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

		requireError(t, ts.api.Delete("/api/users/"+aliceID+"/subscribe", bob), http.StatusNotFound, "NOT_FOUND")
	})
}
