package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/config"
	"github.com/foodgramapp/foodgram-server/internal/service"
	"github.com/foodgramapp/foodgram-server/internal/store/sqlite"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

const catalogYAML = `tags:
  - name: Breakfast
    color: "#E26C2D"
  - name: Dinner
    color: "#49B64E"
    slug: dinner
ingredients:
  - name: flour
    measurement_unit: g
  - name: milk
    measurement_unit: ml
`

// isolateEnv keeps host configuration out of the command under test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "DATA_PATH", "ACCESS_TOKEN_DURATION", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "foodgramctl", cmd.Use)

	for _, name := range []string{"seed", "token"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "seed", "--format", "xml", "--data-path", t.TempDir(), writeFile(t, "c.yaml", catalogYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSeed_Idempotent(t *testing.T) {
	isolateEnv(t)
	dataDir := t.TempDir()
	catalog := writeFile(t, "catalog.yaml", catalogYAML)

	out, err := execute(t, "seed", "--data-path", dataDir, catalog)
	require.NoError(t, err)
	assert.Equal(t, "tags: 2 created, 0 skipped\ningredients: 2 created, 0 skipped\n", out)

	out, err = execute(t, "seed", "--data-path", dataDir, "--format", "json", catalog)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data["tags_created"])
	assert.Equal(t, 2, resp.Data["tags_skipped"])
	assert.Equal(t, 2, resp.Data["ingredients_skipped"])
}

func TestLoadCatalog(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		c, err := LoadCatalog(writeFile(t, "c.yaml", catalogYAML))
		require.NoError(t, err)
		require.Len(t, c.Tags, 2)
		assert.Equal(t, "Breakfast", c.Tags[0].Name)
		assert.Empty(t, c.Tags[0].Slug)
		assert.Equal(t, "dinner", c.Tags[1].Slug)
		require.Len(t, c.Ingredients, 2)
		assert.Equal(t, "ml", c.Ingredients[1].MeasurementUnit)
	})

	t.Run("json", func(t *testing.T) {
		c, err := LoadCatalog(writeFile(t, "c.json",
			`{"tags":[{"name":"Lunch","color":"#111111"}],"ingredients":[{"name":"eggs","measurement_unit":"pcs"}]}`))
		require.NoError(t, err)
		assert.Equal(t, "Lunch", c.Tags[0].Name)
		assert.Equal(t, "eggs", c.Ingredients[0].Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadCatalog(writeFile(t, "c.yaml", "tags:\n  - name: x\n    colour: red\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestToken(t *testing.T) {
	isolateEnv(t)
	dataDir := t.TempDir()

	// Register through the service against the same database file.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(dataDir, config.DatabaseFilename), logger)
	require.NoError(t, err)
	users := service.NewUserService(st, validation.New(), logger)
	users.SetPasswordParams(auth.PasswordParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	user, err := users.Register(context.Background(), service.RegisterRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Baker",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "token", "--data-path", dataDir, "--email", "alice@example.com", "--password", "s3cret-pass")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(token, "v4.local."), "got %q", token)

	// The token verifies with the key persisted in the data directory.
	key, err := auth.LoadOrGenerateKey(dataDir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)
	claims, err := tokens.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = execute(t, "token", "--data-path", dataDir, "--email", "alice@example.com", "--password", "wrong")
	assert.Error(t, err)

	_, err = execute(t, "token", "--data-path", dataDir, "--email", "alice@example.com")
	assert.Error(t, err, "password flag is required")
}
