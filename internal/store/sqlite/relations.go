package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// relationTable describes where a relation kind is stored.
type relationTable struct {
	name   string
	target string // column holding the target ID
}

var relationTables = map[domain.RelationKind]relationTable{
	domain.RelationFavorite:     {name: "favorites", target: "recipe_id"},
	domain.RelationShoppingCart: {name: "shopping_cart", target: "recipe_id"},
	domain.RelationSubscription: {name: "subscriptions", target: "author_id"},
}

func tableFor(kind domain.RelationKind) (relationTable, error) {
	t, ok := relationTables[kind]
	if !ok {
		return relationTable{}, fmt.Errorf("unknown relation kind %q", kind)
	}
	return t, nil
}

// AddRelation records (userID, targetID) under kind.
// Returns store.ErrAlreadyExists if the pair is already present,
// store.ErrNotFound if either side does not exist, and
// store.ErrInvalidInput for a self-subscription.
func (s *Store) AddRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+t.name+` (user_id, `+t.target+`, created_at) VALUES (?, ?, ?)`,
		userID, targetID, formatTime(time.Now()),
	)
	return constraintError(err)
}

// RemoveRelation deletes (userID, targetID) from kind.
// Returns store.ErrRelationNotFound if the pair was not present.
func (s *Store) RemoveRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+t.name+` WHERE user_id = ? AND `+t.target+` = ?`,
		userID, targetID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrRelationNotFound
	}
	return nil
}

// HasRelation reports whether (userID, targetID) is present under kind.
func (s *Store) HasRelation(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+t.name+` WHERE user_id = ? AND `+t.target+` = ?)`,
		userID, targetID,
	).Scan(&exists)
	return exists, err
}

// ListRelationTargets returns the target IDs userID holds under kind,
// oldest first.
func (s *Store) ListRelationTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+t.target+` FROM `+t.name+` WHERE user_id = ? ORDER BY created_at ASC, rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
