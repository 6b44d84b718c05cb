package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	domainerrors "github.com/foodgramapp/foodgram-server/internal/errors"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// relationMessages holds the user-facing wording per relation kind.
type relationMessages struct {
	duplicate string
	missing   string
}

var relationText = map[domain.RelationKind]relationMessages{
	domain.RelationFavorite: {
		duplicate: "recipe is already in favorites",
		missing:   "recipe is not in favorites",
	},
	domain.RelationShoppingCart: {
		duplicate: "recipe is already in the shopping cart",
		missing:   "recipe is not in the shopping cart",
	},
	domain.RelationSubscription: {
		duplicate: "already subscribed to this author",
		missing:   "not subscribed to this author",
	},
}

// ErrSelfSubscription is the validation failure for following oneself.
var ErrSelfSubscription = domainerrors.FieldValidation("author", "cannot subscribe to yourself")

// RelationService manages favorites, shopping cart entries and
// subscriptions through one uniform add/remove contract.
type RelationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRelationService creates a new relation service.
func NewRelationService(store store.Store, logger *slog.Logger) *RelationService {
	return &RelationService{store: store, logger: logger}
}

// Add records (viewerID, targetID) under kind.
//
// A second Add of the same pair is a conflict, never a no-op. The store's
// uniqueness constraint makes this hold for concurrent requests too.
// Subscribing to oneself fails validation before anything else is looked at.
func (s *RelationService) Add(ctx context.Context, kind domain.RelationKind, viewerID, targetID string) error {
	if err := requireViewer(viewerID); err != nil {
		return err
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown relation kind %q", kind)
	}
	if kind == domain.RelationSubscription && viewerID == targetID {
		return ErrSelfSubscription
	}
	if err := s.ensureTarget(ctx, kind, targetID); err != nil {
		return err
	}

	err := s.store.AddRelation(ctx, kind, viewerID, targetID)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict(relationText[kind].duplicate).WithCause(err)
	case kind == domain.RelationSubscription && errors.Is(err, store.ErrInvalidInput):
		return ErrSelfSubscription.WithCause(err)
	case err != nil:
		return fromStore(err)
	}

	s.logger.Info("relation added",
		"kind", kind,
		"user_id", viewerID,
		"target_id", targetID,
	)
	return nil
}

// Remove deletes (viewerID, targetID) from kind.
// Removing a pair that does not exist is NotFound.
func (s *RelationService) Remove(ctx context.Context, kind domain.RelationKind, viewerID, targetID string) error {
	if err := requireViewer(viewerID); err != nil {
		return err
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown relation kind %q", kind)
	}
	if err := s.ensureTarget(ctx, kind, targetID); err != nil {
		return err
	}

	err := s.store.RemoveRelation(ctx, kind, viewerID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound(relationText[kind].missing).WithCause(err)
	}
	if err != nil {
		return err
	}

	s.logger.Info("relation removed",
		"kind", kind,
		"user_id", viewerID,
		"target_id", targetID,
	)
	return nil
}

// Has reports whether viewerID holds targetID under kind.
// It is always false for an anonymous viewer.
func (s *RelationService) Has(ctx context.Context, kind domain.RelationKind, viewerID, targetID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	return s.store.HasRelation(ctx, kind, viewerID, targetID)
}

// ensureTarget returns NotFound when the recipe or author does not exist.
func (s *RelationService) ensureTarget(ctx context.Context, kind domain.RelationKind, targetID string) error {
	var err error
	if kind.TargetsUser() {
		_, err = s.store.GetUser(ctx, targetID)
	} else {
		_, err = s.store.GetRecipe(ctx, targetID)
	}
	return fromStore(err)
}
