package domain

import "time"

// Tag is reference data used to categorize recipes.
// Name, Color and Slug are each unique across all tags.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // Hex form, e.g. "#E26C2D"
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Ingredient is reference data: a named product with its unit of measure.
type Ingredient struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	CreatedAt       time.Time `json:"created_at"`
}
