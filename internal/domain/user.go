package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// User represents a registered account. HashedPassword holds the bcrypt hash
// of the credential and is serialized under the "password" key; API responses
// strip it via the configured response filter. The plaintext credential is
// never stored on the entity.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserFromAttributes builds a new User from request attributes, assigning
// a fresh ID and timestamps. The returned plaintext credential must be hashed
// by the persistence layer before the user is stored; HashedPassword is left
// empty here.
func NewUserFromAttributes(attrs map[string]any) (*User, string, error) {
	fieldErrs := NewFieldErrors()

	email := stringAttribute(attrs, "email", fieldErrs)
	name := stringAttribute(attrs, "name", fieldErrs)
	password := stringAttribute(attrs, "password", fieldErrs)

	validateUserFields(email, name, password, fieldErrs)
	if fieldErrs.HasErrors() {
		return nil, "", fieldErrs
	}

	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return user, password, nil
}

// WithAttributes returns a copy of the user with the incoming attributes
// merged in (incoming wins, server-managed fields protected). If the merge
// changed the credential, the new plaintext is returned for hashing and
// HashedPassword is left empty on the copy; otherwise the existing hash is
// carried over and the plaintext return is empty.
func (u *User) WithAttributes(attrs map[string]any) (*User, string, error) {
	merged := MergeAttributes(u.Attributes(), attrs)

	fieldErrs := NewFieldErrors()
	email := stringAttribute(merged, "email", fieldErrs)
	name := stringAttribute(merged, "name", fieldErrs)
	password := stringAttribute(merged, "password", fieldErrs)

	validateUserFields(email, name, password, fieldErrs)
	if fieldErrs.HasErrors() {
		return nil, "", fieldErrs
	}

	next := &User{
		ID:        u.ID,
		Email:     email,
		Name:      name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	if password == u.HashedPassword {
		next.HashedPassword = u.HashedPassword
		return next, "", nil
	}
	return next, password, nil
}

// Attributes returns the user's canonical attribute form, used for merging
// and for field redaction.
func (u *User) Attributes() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"password":   u.HashedPassword,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

func validateUserFields(email, name, password string, fieldErrs *FieldErrors) {
	switch {
	case email == "":
		fieldErrs.Add("email", "is required")
	case validate.Var(email, "email") != nil:
		fieldErrs.Add("email", "must be a valid email address")
	}

	if name == "" {
		fieldErrs.Add("name", "is required")
	}

	if password == "" {
		fieldErrs.Add("password", "is required")
	}
}
