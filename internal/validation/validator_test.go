package validation_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

type TestRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150,username"`
	Password string `json:"password" validate:"required,max=150"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := TestRequest{
		Email:    "test@example.com",
		Username: "chef.anna+1@home",
		Password: "password123",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       TestRequest
		wantField string
	}{
		{
			name:      "missing email",
			req:       TestRequest{Username: "anna", Password: "pw"},
			wantField: "email",
		},
		{
			name:      "invalid email",
			req:       TestRequest{Email: "not-an-email", Username: "anna", Password: "pw"},
			wantField: "email",
		},
		{
			name:      "username with space",
			req:       TestRequest{Email: "a@b.co", Username: "anna k", Password: "pw"},
			wantField: "username",
		},
		{
			name:      "username too long",
			req:       TestRequest{Email: "a@b.co", Username: strings.Repeat("a", 151), Password: "pw"},
			wantField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	details, err := v.FieldErrors(TestRequest{Username: "anna", Password: "pw"})
	require.NoError(t, err)

	// Should use JSON tag name "email", not struct field name "Email"
	assert.Equal(t, "is required", details["email"])
	assert.NotContains(t, details, "Email")
}

func TestValidator_FieldErrorsValid(t *testing.T) {
	v := validation.New()

	details, err := v.FieldErrors(TestRequest{Email: "a@b.co", Username: "anna", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, details)
}
