package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/dto"
	"github.com/foodgramapp/foodgram-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "registerUser",
		Method:        http.MethodPost,
		Path:          "/api/users",
		Summary:       "Register",
		Description:   "Creates a new account",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/users",
		Summary:     "List users",
		Description: "Returns every user in registration order",
		Tags:        []string{"Users"},
		Security:    bearerSecurity,
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMe",
		Method:      http.MethodGet,
		Path:        "/api/users/me",
		Summary:     "Current user",
		Tags:        []string{"Users"},
		Security:    bearerSecurity,
	}, s.handleGetMe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteMe",
		Method:        http.MethodDelete,
		Path:          "/api/users/me",
		Summary:       "Delete account",
		Description:   "Deletes the current user with their recipes and relations",
		Tags:          []string{"Users"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscriptions",
		Method:      http.MethodGet,
		Path:        "/api/users/subscriptions",
		Summary:     "My subscriptions",
		Description: "Returns followed authors with their newest recipes",
		Tags:        []string{"Subscriptions"},
		Security:    bearerSecurity,
	}, s.handleListSubscriptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/users/{id}",
		Summary:     "Get user",
		Tags:        []string{"Users"},
		Security:    bearerSecurity,
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "subscribe",
		Method:        http.MethodPost,
		Path:          "/api/users/{id}/subscribe",
		Summary:       "Subscribe",
		Tags:          []string{"Subscriptions"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleSubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "unsubscribe",
		Method:        http.MethodDelete,
		Path:          "/api/users/{id}/subscribe",
		Summary:       "Unsubscribe",
		Tags:          []string{"Subscriptions"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, s.handleUnsubscribe)
}

// === DTOs ===

// RegisterRequest is the request body for creating an account.
// Field rules are enforced by the user service.
type RegisterRequest struct {
	Email     string `json:"email,omitempty" doc:"Login email"`
	Username  string `json:"username,omitempty" doc:"Public handle"`
	FirstName string `json:"first_name,omitempty" doc:"First name"`
	LastName  string `json:"last_name,omitempty" doc:"Last name"`
	Password  string `json:"password,omitempty" doc:"Password"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body RegisterRequest
}

// UserOutput wraps a user view for Huma.
type UserOutput struct {
	Body dto.UserView
}

// UserListOutput wraps a user list for Huma.
type UserListOutput struct {
	Body []dto.UserView
}

// SubscriptionInput addresses an author, optionally limiting the recipes shown.
type SubscriptionInput struct {
	ID           string `path:"id" doc:"Author ID"`
	RecipesLimit int    `query:"recipes_limit" minimum:"0" doc:"Maximum recipes per author, 0 for all"`
}

// SubscriptionsInput contains parameters for listing subscriptions.
type SubscriptionsInput struct {
	RecipesLimit int `query:"recipes_limit" minimum:"0" doc:"Maximum recipes per author, 0 for all"`
}

// SubscriptionOutput wraps a subscription view for Huma.
type SubscriptionOutput struct {
	Body dto.SubscriptionView
}

// SubscriptionListOutput wraps a subscription list for Huma.
type SubscriptionListOutput struct {
	Body []dto.SubscriptionView
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
	user, err := s.services.Users.Register(ctx, service.RegisterRequest{
		Email:     input.Body.Email,
		Username:  input.Body.Username,
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		Password:  input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	view, err := s.presenter.User(ctx, viewerID(ctx), user)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *view}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*UserListOutput, error) {
	users, err := s.services.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.presenter.Users(ctx, viewerID(ctx), users)
	if err != nil {
		return nil, err
	}
	return &UserListOutput{Body: views}, nil
}

func (s *Server) handleGetMe(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	viewer := viewerID(ctx)
	user, err := s.services.Users.Me(ctx, viewer)
	if err != nil {
		return nil, err
	}

	view, err := s.presenter.User(ctx, viewer, user)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *view}, nil
}

func (s *Server) handleDeleteMe(ctx context.Context, _ *struct{}) (*struct{}, error) {
	if err := s.services.Users.DeleteSelf(ctx, viewerID(ctx)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *IDInput) (*UserOutput, error) {
	user, err := s.services.Users.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	view, err := s.presenter.User(ctx, viewerID(ctx), user)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *view}, nil
}

func (s *Server) handleListSubscriptions(ctx context.Context, input *SubscriptionsInput) (*SubscriptionListOutput, error) {
	viewer := viewerID(ctx)
	authors, err := s.services.Users.Subscriptions(ctx, viewer)
	if err != nil {
		return nil, err
	}

	views, err := s.presenter.Subscriptions(ctx, viewer, authors, input.RecipesLimit)
	if err != nil {
		return nil, err
	}
	return &SubscriptionListOutput{Body: views}, nil
}

func (s *Server) handleSubscribe(ctx context.Context, input *SubscriptionInput) (*SubscriptionOutput, error) {
	viewer := viewerID(ctx)
	if err := s.services.Relations.Add(ctx, domain.RelationSubscription, viewer, input.ID); err != nil {
		return nil, err
	}

	author, err := s.services.Users.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	view, err := s.presenter.Subscription(ctx, viewer, author, input.RecipesLimit)
	if err != nil {
		return nil, err
	}
	return &SubscriptionOutput{Body: *view}, nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, input *IDInput) (*struct{}, error) {
	if err := s.services.Relations.Remove(ctx, domain.RelationSubscription, viewerID(ctx), input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
