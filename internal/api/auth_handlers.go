package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/token/login",
		Summary:     "Obtain token",
		Description: "Exchanges email and password for a bearer token",
		Tags:        []string{"Auth"},
	}, s.handleLogin)
}

// LoginRequest is the request body for obtaining a token.
type LoginRequest struct {
	Email    string `json:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AuthToken string `json:"auth_token" doc:"PASETO bearer token"`
	ExpiresIn int    `json:"expires_in" doc:"Token lifetime in seconds"`
}

// TokenOutput wraps the token response for Huma.
type TokenOutput struct {
	Body TokenResponse
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
	user, err := s.services.Users.Authenticate(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Body: TokenResponse{
		AuthToken: token,
		ExpiresIn: int(s.tokens.Lifetime().Seconds()),
	}}, nil
}
