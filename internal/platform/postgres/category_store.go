package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/restfold/restfold/internal/domain"
	"github.com/restfold/restfold/internal/store"
)

// CategoryStore implements store.CategoryStore backed by PostgreSQL.
type CategoryStore struct {
	db *sql.DB
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// NewCategoryStore creates a CategoryStore on the given connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, created_at, updated_at`

// FindAll implements store.Repository.
func (s *CategoryStore) FindAll(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CategoryStore.FindAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("CategoryStore.FindAll: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CategoryStore.FindAll: %w", err)
	}
	return categories, nil
}

// FindByID implements store.Repository.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("CategoryStore.FindByID: %w", err)
	}
	return category, nil
}

// Create implements store.Repository.
func (s *CategoryStore) Create(ctx context.Context, attrs map[string]any) (*domain.Category, error) {
	category, err := domain.NewCategoryFromAttributes(attrs)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4)`
	_, err = s.db.ExecContext(ctx, query,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.NewConflictError("category", "name")
		}
		return nil, fmt.Errorf("CategoryStore.Create: %w", err)
	}

	return category, nil
}

// Update implements store.Repository.
func (s *CategoryStore) Update(ctx context.Context, existing *domain.Category, attrs map[string]any) (*domain.Category, error) {
	updated, err := existing.WithAttributes(attrs)
	if err != nil {
		return nil, err
	}

	query := `UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query, updated.Name, updated.UpdatedAt, updated.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.NewConflictError("category", "name")
		}
		return nil, fmt.Errorf("CategoryStore.Update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("CategoryStore.Update: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrCategoryNotFound
	}

	return updated, nil
}

// Delete implements store.Repository.
func (s *CategoryStore) Delete(ctx context.Context, existing *domain.Category) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, existing.ID)
	if err != nil {
		return fmt.Errorf("CategoryStore.Delete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("CategoryStore.Delete: %w", err)
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}
