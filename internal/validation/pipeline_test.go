package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

type pipelineRequest struct {
	Name string   `json:"name" validate:"required"`
	Tags []string `json:"tags"`
}

func pass(context.Context) (string, error) { return "", nil }

func fail(msg string) validation.CheckFunc {
	return func(context.Context) (string, error) { return msg, nil }
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	require.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	d, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return d
}

func TestPipeline_AllPass(t *testing.T) {
	p := validation.NewPipeline(validation.New()).
		Add("tags", pass).
		Add("name", pass)

	assert.NoError(t, p.Run(context.Background(), pipelineRequest{Name: "Soup"}))
}

func TestPipeline_FirstFailurePerFieldWins(t *testing.T) {
	calls := 0
	counting := func(context.Context) (string, error) {
		calls++
		return "should not run", nil
	}

	p := validation.NewPipeline(validation.New()).
		Add("tags", fail("select at least one tag")).
		Add("tags", counting).
		Add("ingredients", fail("ingredients must not repeat"))

	err := p.Run(context.Background(), pipelineRequest{Name: "Soup"})
	require.Error(t, err)

	d := details(t, err)
	assert.Equal(t, "select at least one tag", d["tags"])
	assert.Equal(t, "ingredients must not repeat", d["ingredients"])
	assert.Equal(t, 0, calls)
	assert.Equal(t, "select at least one tag", err.Error())
}

func TestPipeline_StructTagsRunFirst(t *testing.T) {
	ran := false
	p := validation.NewPipeline(validation.New()).
		Add("name", func(context.Context) (string, error) {
			ran = true
			return "", nil
		})

	err := p.Run(context.Background(), pipelineRequest{})
	require.Error(t, err)
	assert.Equal(t, "is required", details(t, err)["name"])
	assert.False(t, ran, "rules for a field that failed struct validation are skipped")
	assert.Equal(t, "validation failed", err.Error())
}

func TestPipeline_CheckErrorAborts(t *testing.T) {
	boom := errors.New("store unavailable")
	p := validation.NewPipeline(nil).
		Add("tags", func(context.Context) (string, error) { return "", boom }).
		Add("name", fail("never reached"))

	err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}
