package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/restfold/restfold/internal/domain"
	"github.com/restfold/restfold/internal/store"
)

// ControllerOptions configures a RestController.
type ControllerOptions struct {
	// ResponseFilter, when set, transforms every success payload before it
	// is written, for example to redact credential fields.
	ResponseFilter ResponseFilter
}

// RestController serves the five standard REST operations for one resource
// model backed by a store.Repository. Each operation owns its own
// RestRequest; no state is carried across calls.
type RestController[T any] struct {
	repo   store.Repository[T]
	logger *slog.Logger
	opts   ControllerOptions
}

// NewRestController creates the REST controller for the given repository.
func NewRestController[T any](repo store.Repository[T], logger *slog.Logger, opts ControllerOptions) *RestController[T] {
	return &RestController[T]{repo: repo, logger: logger, opts: opts}
}

// Register mounts the five REST operations on the given router.
func (c *RestController[T]) Register(r chi.Router) {
	r.Get("/", c.List)
	r.Get("/{id}", c.Get)
	r.Post("/", c.Create)
	r.Put("/{id}", c.Update)
	r.Delete("/{id}", c.Delete)
}

// List responds 200 with every stored resource.
func (c *RestController[T]) List(w http.ResponseWriter, r *http.Request) {
	rr := c.newRequest(w, r)
	defer rr.Respond()

	resources, err := c.repo.FindAll(r.Context())
	if err != nil {
		rr.WithError(err)
		return
	}
	rr.WithData(resources)
}

// Get responds 200 with the resource named by the {id} URL parameter, or 404
// when it does not exist.
func (c *RestController[T]) Get(w http.ResponseWriter, r *http.Request) {
	rr := c.newRequest(w, r)
	defer rr.Respond()

	id, err := resourceID(r)
	if err != nil {
		rr.WithError(err)
		return
	}

	resource, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		rr.WithError(err)
		return
	}
	rr.WithData(resource)
}

// Create persists a new resource from the request body and responds 201 with
// it.
func (c *RestController[T]) Create(w http.ResponseWriter, r *http.Request) {
	rr := c.newRequest(w, r)
	defer rr.Respond()

	attrs, err := decodeAttributes(r)
	if err != nil {
		rr.WithError(err)
		return
	}

	resource, err := c.repo.Create(r.Context(), attrs)
	if err != nil {
		rr.WithError(err)
		return
	}
	rr.WithStatus(http.StatusCreated).WithData(resource)
}

// Update merges the request body's attributes onto the existing resource and
// responds 200 with the updated resource, or 404 when it does not exist.
func (c *RestController[T]) Update(w http.ResponseWriter, r *http.Request) {
	rr := c.newRequest(w, r)
	defer rr.Respond()

	id, err := resourceID(r)
	if err != nil {
		rr.WithError(err)
		return
	}

	existing, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		rr.WithError(err)
		return
	}

	attrs, err := decodeAttributes(r)
	if err != nil {
		rr.WithError(err)
		return
	}

	updated, err := c.repo.Update(r.Context(), existing, attrs)
	if err != nil {
		rr.WithError(err)
		return
	}
	rr.WithData(updated)
}

// Delete removes the existing resource and responds 204 with an empty body,
// or 404 when it does not exist.
func (c *RestController[T]) Delete(w http.ResponseWriter, r *http.Request) {
	rr := c.newRequest(w, r)
	defer rr.Respond()

	id, err := resourceID(r)
	if err != nil {
		rr.WithError(err)
		return
	}

	existing, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		rr.WithError(err)
		return
	}

	if err := c.repo.Delete(r.Context(), existing); err != nil {
		rr.WithError(err)
		return
	}
	rr.WithStatus(http.StatusNoContent)
}

func (c *RestController[T]) newRequest(w http.ResponseWriter, r *http.Request) *RestRequest {
	return NewRestRequest(w, r, c.logger, c.opts.ResponseFilter)
}

// resourceID parses the {id} URL parameter. Values that cannot name a stored
// resource are reported as not found rather than surfaced as driver errors.
func resourceID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, store.ErrNotFound
	}
	return id, nil
}

// decodeAttributes reads the request body as a free-form attribute map.
func decodeAttributes(r *http.Request) (map[string]any, error) {
	var attrs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("%w: malformed request body", domain.ErrValidation)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return attrs, nil
}
