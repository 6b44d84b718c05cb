// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. The prefix makes an ID self-describing in logs and URLs.
const (
	PrefixUser       = "usr"
	PrefixTag        = "tag"
	PrefixIngredient = "ing"
	PrefixRecipe     = "rcp"
)

// Generate returns prefix-nanoid, e.g. "rcp-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// MustGenerate is like Generate but panics on failure.
// Reserved for seeding and tests.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}
