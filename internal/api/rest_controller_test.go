package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restfold/restfold/internal/api"
	"github.com/restfold/restfold/internal/domain"
	"github.com/restfold/restfold/internal/store"
)

// memCategoryRepo is an in-memory store.Repository for categories with the
// same outcome classification as the real store.
type memCategoryRepo struct {
	order   []uuid.UUID
	items   map[uuid.UUID]*domain.Category
	failAll error // when set, every operation fails with it
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: make(map[uuid.UUID]*domain.Category)}
}

func (r *memCategoryRepo) FindAll(ctx context.Context) ([]*domain.Category, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	categories := make([]*domain.Category, 0, len(r.order))
	for _, id := range r.order {
		categories = append(categories, r.items[id])
	}
	return categories, nil
}

func (r *memCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	category, ok := r.items[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

func (r *memCategoryRepo) Create(ctx context.Context, attrs map[string]any) (*domain.Category, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	category, err := domain.NewCategoryFromAttributes(attrs)
	if err != nil {
		return nil, err
	}
	if r.nameTaken(category.Name, uuid.Nil) {
		return nil, store.NewConflictError("category", "name")
	}
	r.items[category.ID] = category
	r.order = append(r.order, category.ID)
	return category, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, existing *domain.Category, attrs map[string]any) (*domain.Category, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	updated, err := existing.WithAttributes(attrs)
	if err != nil {
		return nil, err
	}
	if _, ok := r.items[updated.ID]; !ok {
		return nil, store.ErrCategoryNotFound
	}
	if r.nameTaken(updated.Name, updated.ID) {
		return nil, store.NewConflictError("category", "name")
	}
	r.items[updated.ID] = updated
	return updated, nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, existing *domain.Category) error {
	if r.failAll != nil {
		return r.failAll
	}
	if _, ok := r.items[existing.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(r.items, existing.ID)
	for i, id := range r.order {
		if id == existing.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memCategoryRepo) nameTaken(name string, except uuid.UUID) bool {
	for id, category := range r.items {
		if id != except && category.Name == name {
			return true
		}
	}
	return false
}

func newCategoryServer(repo store.Repository[*domain.Category]) (http.Handler, *bytes.Buffer) {
	logBuf := &bytes.Buffer{}
	controller := api.NewRestController(repo, newCapturingLogger(logBuf), api.ControllerOptions{})

	r := chi.NewRouter()
	r.Route("/categories", func(r chi.Router) {
		controller.Register(r)
	})
	return r, logBuf
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func createCategory(t *testing.T, handler http.Handler, name string) *domain.Category {
	t.Helper()

	recorder := doJSON(t, handler, http.MethodPost, "/categories/", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var category domain.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &category))
	return &category
}

func TestControllerList(t *testing.T) {
	t.Parallel()

	handler, _ := newCategoryServer(newMemCategoryRepo())
	createCategory(t, handler, "first")
	createCategory(t, handler, "second")

	recorder := doJSON(t, handler, http.MethodGet, "/categories/", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var categories []domain.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "first", categories[0].Name)
	assert.Equal(t, "second", categories[1].Name)
}

func TestControllerGet(t *testing.T) {
	t.Parallel()

	handler, _ := newCategoryServer(newMemCategoryRepo())
	created := createCategory(t, handler, "gadgets")

	t.Run("found", func(t *testing.T) {
		recorder := doJSON(t, handler, http.MethodGet, "/categories/"+created.ID.String(), "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var category domain.Category
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &category))
		assert.Equal(t, created.ID, category.ID)
		assert.Equal(t, "gadgets", category.Name)
	})

	t.Run("repeated get returns the identical payload", func(t *testing.T) {
		first := doJSON(t, handler, http.MethodGet, "/categories/"+created.ID.String(), "")
		second := doJSON(t, handler, http.MethodGet, "/categories/"+created.ID.String(), "")
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		recorder := doJSON(t, handler, http.MethodGet, "/categories/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"message":"not found"}`, recorder.Body.String())
	})

	t.Run("unparseable id", func(t *testing.T) {
		recorder := doJSON(t, handler, http.MethodGet, "/categories/not-a-uuid", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestControllerCreate(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())

		recorder := doJSON(t, handler, http.MethodPost, "/categories/", `{"name":"gadgets"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		var category domain.Category
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &category))
		assert.Equal(t, "gadgets", category.Name)
		assert.NotZero(t, category.ID)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())
		createCategory(t, handler, "gadgets")

		recorder := doJSON(t, handler, http.MethodPost, "/categories/", `{"name":"gadgets"}`)
		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.JSONEq(t,
			`{"message":"category already exists","fields":{"name":"already in use"}}`,
			recorder.Body.String())
	})

	t.Run("missing name is a validation failure", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())

		recorder := doJSON(t, handler, http.MethodPost, "/categories/", `{}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t,
			`{"message":"validation failed","fields":{"name":"is required"}}`,
			recorder.Body.String())
	})

	t.Run("malformed body is a validation failure", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())

		recorder := doJSON(t, handler, http.MethodPost, "/categories/", `{not json`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestControllerCreateThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	handler, _ := newCategoryServer(newMemCategoryRepo())
	created := createCategory(t, handler, "gadgets")

	recorder := doJSON(t, handler, http.MethodGet, "/categories/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched domain.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
}

func TestControllerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("merges incoming attributes", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())
		created := createCategory(t, handler, "gadgets")

		recorder := doJSON(t, handler, http.MethodPut, "/categories/"+created.ID.String(), `{"name":"widgets"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.Category
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "widgets", updated.Name)
	})

	t.Run("empty attribute set returns the record unchanged", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())
		created := createCategory(t, handler, "gadgets")

		recorder := doJSON(t, handler, http.MethodPut, "/categories/"+created.ID.String(), `{}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.Category
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.Name, updated.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		handler, _ := newCategoryServer(newMemCategoryRepo())

		recorder := doJSON(t, handler, http.MethodPut, "/categories/"+uuid.NewString(), `{"name":"widgets"}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestControllerDelete(t *testing.T) {
	t.Parallel()

	handler, _ := newCategoryServer(newMemCategoryRepo())
	created := createCategory(t, handler, "gadgets")

	recorder := doJSON(t, handler, http.MethodDelete, "/categories/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	// Deleting an already-deleted resource is a 404, not a server error.
	recorder = doJSON(t, handler, http.MethodDelete, "/categories/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"message":"not found"}`, recorder.Body.String())
}

func TestControllerUnexpectedRepositoryFailure(t *testing.T) {
	t.Parallel()

	repo := newMemCategoryRepo()
	repo.failAll = errors.New("connection refused")
	handler, logBuf := newCategoryServer(repo)

	recorder := doJSON(t, handler, http.MethodGet, "/categories/", "")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"message":"server error"}`, recorder.Body.String())
	assert.Contains(t, logBuf.String(), "connection refused")
}
