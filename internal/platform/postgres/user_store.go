package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/restfold/restfold/internal/domain"
	"github.com/restfold/restfold/internal/service/auth"
	"github.com/restfold/restfold/internal/store"
)

// UserStore implements store.UserStore backed by PostgreSQL. Plaintext
// credentials are hashed through the injected hasher before any row is
// written; the plaintext itself is never persisted.
type UserStore struct {
	db     *sql.DB
	hasher auth.PasswordHasher
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore on the given connection. The hasher is
// the pre-persistence transform applied to changed credentials.
func NewUserStore(db *sql.DB, hasher auth.PasswordHasher) *UserStore {
	return &UserStore{db: db, hasher: hasher}
}

const userColumns = `id, email, name, hashed_password, created_at, updated_at`

// FindAll implements store.Repository.
func (s *UserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("UserStore.FindAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("UserStore.FindAll: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UserStore.FindAll: %w", err)
	}
	return users, nil
}

// FindByID implements store.Repository.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserStore.FindByID: %w", err)
	}
	return user, nil
}

// FindByEmail implements store.UserStore.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserStore.FindByEmail: %w", err)
	}
	return user, nil
}

// Create implements store.Repository. The password attribute is validated as
// plaintext and stored only as its hash.
func (s *UserStore) Create(ctx context.Context, attrs map[string]any) (*domain.User, error) {
	user, plaintext, err := domain.NewUserFromAttributes(attrs)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("UserStore.Create: failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.NewConflictError("user", "email")
		}
		return nil, fmt.Errorf("UserStore.Create: %w", err)
	}

	return user, nil
}

// Update implements store.Repository. Incoming attributes win over existing
// ones; a changed password attribute is re-hashed before the row is written.
func (s *UserStore) Update(ctx context.Context, existing *domain.User, attrs map[string]any) (*domain.User, error) {
	updated, plaintext, err := existing.WithAttributes(attrs)
	if err != nil {
		return nil, err
	}

	if plaintext != "" {
		hashed, err := s.hasher.Hash(plaintext)
		if err != nil {
			return nil, fmt.Errorf("UserStore.Update: failed to hash password: %w", err)
		}
		updated.HashedPassword = hashed
	}

	query := `UPDATE users SET email = $1, name = $2, hashed_password = $3, updated_at = $4
	          WHERE id = $5`
	result, err := s.db.ExecContext(ctx, query,
		updated.Email, updated.Name, updated.HashedPassword, updated.UpdatedAt, updated.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.NewConflictError("user", "email")
		}
		return nil, fmt.Errorf("UserStore.Update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("UserStore.Update: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrUserNotFound
	}

	return updated, nil
}

// Delete implements store.Repository.
func (s *UserStore) Delete(ctx context.Context, existing *domain.User) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, existing.ID)
	if err != nil {
		return fmt.Errorf("UserStore.Delete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("UserStore.Delete: %w", err)
	}
	if affected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// scanUser reads one user row from a row scanner.
func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
