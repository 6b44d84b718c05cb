package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, color, slug, created_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Color,
		&t.Slug,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag into the database.
// Returns store.ErrAlreadyExists on duplicate name, color or slug, and
// store.ErrInvalidInput when the slug or color is malformed.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, slug, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.Color,
		t.Slug,
		formatTime(t.CreatedAt),
	)
	return constraintError(err)
}

// GetTag retrieves a tag by its ID.
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagsByIDs returns the tags that exist among ids, ordered by name.
func (s *Store) GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return []*domain.Tag{}, nil
	}
	return s.queryTags(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id IN (`+placeholders(len(ids))+`) ORDER BY name ASC`,
		stringArgs(ids)...)
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.queryTags(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
