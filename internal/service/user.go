package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/domain"
	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/id"
	"github.com/foodgramapp/foodgram-server/internal/store"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

// RegisterRequest contains the data for a new account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,max=150"`
}

// UserService handles accounts and the follow graph read side.
type UserService struct {
	store      store.Store
	validator  *validation.Validator
	logger     *slog.Logger
	hashParams auth.PasswordParams
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:      store,
		validator:  validator,
		logger:     logger,
		hashParams: auth.DefaultPasswordParams,
	}
}

// SetPasswordParams overrides the argon2id cost used for new accounts.
// Existing hashes carry their own parameters and keep verifying.
func (s *UserService) SetPasswordParams(p auth.PasswordParams) {
	s.hashParams = p
}

// Register creates an account. Email and username must be unused; a
// collision is reported as a validation failure on that field.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPasswordWithParams(req.Password, s.hashParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		var se *store.Error
		if errors.As(err, &se) {
			switch se.Message {
			case store.ErrEmailTaken.Message:
				return nil, domainerrors.FieldValidation("email", se.Message).WithCause(err)
			case store.ErrUsernameTaken.Message:
				return nil, domainerrors.FieldValidation("username", se.Message).WithCause(err)
			}
		}
		return nil, fmt.Errorf("create user: %w", fromStore(err))
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	return user, nil
}

// Authenticate returns the user owning email when password matches.
// Unknown emails and wrong passwords fail identically.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}
	return user, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fromStore(err)
	}
	return u, nil
}

// Me returns the viewer's own account.
func (s *UserService) Me(ctx context.Context, viewerID string) (*domain.User, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	return s.Get(ctx, viewerID)
}

// List returns every user in registration order.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// DeleteSelf removes the viewer's account together with their recipes
// and every relation that mentions them.
func (s *UserService) DeleteSelf(ctx context.Context, viewerID string) error {
	if err := requireViewer(viewerID); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, viewerID); err != nil {
		return fromStore(err)
	}
	s.logger.Info("user deleted", "user_id", viewerID)
	return nil
}

// Subscriptions returns the authors the viewer follows, in the order the
// subscriptions were made.
func (s *UserService) Subscriptions(ctx context.Context, viewerID string) ([]*domain.User, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}

	authorIDs, err := s.store.ListRelationTargets(ctx, domain.RelationSubscription, viewerID)
	if err != nil {
		return nil, err
	}

	found, err := s.store.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	authors := make([]*domain.User, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		if u, ok := byID[authorID]; ok {
			authors = append(authors, u)
		}
	}
	return authors, nil
}
