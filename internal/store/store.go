package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/restfold/restfold/internal/domain"
)

// Repository is the persistence capability a REST controller is built from.
// Create and Update accept the raw request attributes; implementations own
// validation, attribute merging, and any pre-persistence transform (such as
// credential hashing), and surface failures through the package's error
// taxonomy: ErrNotFound variants, ErrConflict (via ConflictError), and
// domain validation errors.
type Repository[T any] interface {
	// FindAll returns every stored resource in a stable order.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID returns the resource with the given ID, or a not-found error.
	FindByID(ctx context.Context, id uuid.UUID) (T, error)

	// Create validates the attributes, persists a new resource, and returns it.
	Create(ctx context.Context, attrs map[string]any) (T, error)

	// Update merges the attributes onto the existing resource (incoming wins,
	// server-managed fields protected), persists the result, and returns it.
	Update(ctx context.Context, existing T, attrs map[string]any) (T, error)

	// Delete permanently removes the existing resource.
	Delete(ctx context.Context, existing T) error
}

// UserStore adds the user-specific lookup needed by authentication on top of
// the generic repository.
type UserStore interface {
	Repository[*domain.User]

	// FindByEmail returns the user with the given email address, or a
	// not-found error.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CategoryStore is the persistence capability for categories.
type CategoryStore interface {
	Repository[*domain.Category]
}
