package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodgramapp/foodgram-server/internal/domain"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

func TestCreateAndGetTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := mustCreateTag(t, s, "tag-1", "Breakfast", "#E26C2D", "breakfast")

	got, err := s.GetTag(ctx, "tag-1")
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if got.Name != tag.Name || got.Color != tag.Color || got.Slug != tag.Slug {
		t.Errorf("GetTag: got %+v, want %+v", got, tag)
	}

	// Timestamps round-trip through the stored layout.
	if got.CreatedAt.Unix() != tag.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, tag.CreatedAt)
	}
}

func TestGetTag_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTag(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTag_Constraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTag(t, s, "tag-1", "Breakfast", "#E26C2D", "breakfast")

	tests := []struct {
		name string
		tag  *domain.Tag
		want error
	}{
		{"duplicate name", &domain.Tag{ID: "t2", Name: "Breakfast", Color: "#000000", Slug: "b2"}, store.ErrAlreadyExists},
		{"duplicate color", &domain.Tag{ID: "t3", Name: "Lunch", Color: "#E26C2D", Slug: "lunch"}, store.ErrAlreadyExists},
		{"duplicate slug", &domain.Tag{ID: "t4", Name: "Lunch", Color: "#111111", Slug: "breakfast"}, store.ErrAlreadyExists},
		{"bad slug", &domain.Tag{ID: "t5", Name: "Dinner", Color: "#222222", Slug: "din ner"}, store.ErrInvalidInput},
		{"bad color", &domain.Tag{ID: "t6", Name: "Dinner", Color: "red", Slug: "dinner"}, store.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tag.CreatedAt = time.Now()
			err := s.CreateTag(ctx, tt.tag)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListTags_OrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTag(t, s, "tag-1", "Lunch", "#111111", "lunch")
	mustCreateTag(t, s, "tag-2", "Breakfast", "#222222", "breakfast")
	mustCreateTag(t, s, "tag-3", "Dinner", "#333333", "dinner")

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	want := []string{"Breakfast", "Dinner", "Lunch"}
	if len(tags) != len(want) {
		t.Fatalf("ListTags: got %d tags, want %d", len(tags), len(want))
	}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d]: got %q, want %q", i, tags[i].Name, name)
		}
	}

	byID, err := s.GetTagsByIDs(ctx, []string{"tag-3", "missing"})
	if err != nil {
		t.Fatalf("GetTagsByIDs: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != "tag-3" {
		t.Errorf("GetTagsByIDs: got %v", byID)
	}
}

func TestIngredients(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateIngredient(t, s, "ing-2", "milk", "ml")
	mustCreateIngredient(t, s, "ing-1", "flour", "g")

	got, err := s.GetIngredient(ctx, "ing-2")
	if err != nil {
		t.Fatalf("GetIngredient: %v", err)
	}
	if got.Name != "milk" || got.MeasurementUnit != "ml" {
		t.Errorf("GetIngredient: got %+v", got)
	}

	if _, err := s.GetIngredient(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetIngredient(nope): expected ErrNotFound, got %v", err)
	}

	dup := &domain.Ingredient{ID: "ing-3", Name: "milk", MeasurementUnit: "l", CreatedAt: time.Now()}
	if err := s.CreateIngredient(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("duplicate ingredient: expected ErrAlreadyExists, got %v", err)
	}

	all, err := s.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(all) != 2 || all[0].Name != "flour" || all[1].Name != "milk" {
		t.Errorf("ListIngredients: got %v", all)
	}

	some, err := s.GetIngredientsByIDs(ctx, []string{"ing-1", "ing-9"})
	if err != nil {
		t.Fatalf("GetIngredientsByIDs: %v", err)
	}
	if len(some) != 1 || some[0].ID != "ing-1" {
		t.Errorf("GetIngredientsByIDs: got %v", some)
	}
}
