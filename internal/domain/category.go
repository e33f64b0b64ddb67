package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a uniquely-named grouping resource.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategoryFromAttributes builds a new Category from request attributes,
// assigning a fresh ID and timestamps.
func NewCategoryFromAttributes(attrs map[string]any) (*Category, error) {
	fieldErrs := NewFieldErrors()

	name := stringAttribute(attrs, "name", fieldErrs)
	if name == "" {
		fieldErrs.Add("name", "is required")
	}
	if fieldErrs.HasErrors() {
		return nil, fieldErrs
	}

	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// WithAttributes returns a copy of the category with the incoming attributes
// merged in (incoming wins, server-managed fields protected).
func (c *Category) WithAttributes(attrs map[string]any) (*Category, error) {
	merged := MergeAttributes(c.Attributes(), attrs)

	fieldErrs := NewFieldErrors()
	name := stringAttribute(merged, "name", fieldErrs)
	if name == "" {
		fieldErrs.Add("name", "is required")
	}
	if fieldErrs.HasErrors() {
		return nil, fieldErrs
	}

	return &Category{
		ID:        c.ID,
		Name:      name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Attributes returns the category's canonical attribute form.
func (c *Category) Attributes() map[string]any {
	return map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
}
