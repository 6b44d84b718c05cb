package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgramapp/foodgram-server/internal/domain"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewerID_Anonymous(t *testing.T) {
	assert.Equal(t, "", viewerID(context.Background()))
	assert.Equal(t, "usr-1", viewerID(withViewerID(context.Background(), "usr-1")))
}

func TestViewerMiddleware(t *testing.T) {
	ts := setupTestServer(t, defaultTestOptions())
	userID, authHeader := ts.register(t, "alice")

	t.Run("valid token resolves the viewer", func(t *testing.T) {
		resp := ts.api.Get("/api/users/me", authHeader)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, userID, decode[struct {
			ID string `json:"id"`
		}](t, resp).ID)
	})

	t.Run("garbage token is anonymous", func(t *testing.T) {
		resp := ts.api.Get("/api/tags", "Authorization: Bearer not-a-token")
		assert.Equal(t, http.StatusOK, resp.Code)

		resp = ts.api.Get("/api/users/me", "Authorization: Bearer not-a-token")
		requireError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("token of a deleted user is anonymous", func(t *testing.T) {
		token, err := ts.tokens.GenerateAccessToken(&domain.User{ID: "usr-gone", Email: "gone@example.com"})
		require.NoError(t, err)

		resp := ts.api.Get("/api/users/me", "Authorization: Bearer "+token)
		requireError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}
