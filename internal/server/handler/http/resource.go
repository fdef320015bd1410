package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Store is the storage surface of one entity: C is its create payload and
// P its patch payload.
type Store[T, C, P any] interface {
	Create(ctx context.Context, in C) (*T, error)
	List(ctx context.Context, page models.Page) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, id int64, patch P) (*T, error)
	Delete(ctx context.Context, id int64) (*T, error)
}

// ResourceHandler serves create/list/get/update/delete for one entity.
type ResourceHandler[T, C, P any] struct {
	Name         string
	Store        Store[T, C, P]
	Validate     *validator.Validate
	Log          *zap.Logger
	DefaultLimit int
}

// NewResourceHandler returns a handler with a list page size of 10.
func NewResourceHandler[T, C, P any](name string, store Store[T, C, P], v *validator.Validate, log *zap.Logger) *ResourceHandler[T, C, P] {
	return &ResourceHandler[T, C, P]{Name: name, Store: store, Validate: v, Log: log, DefaultLimit: 10}
}

// Routes registers the handler on r.
func (h *ResourceHandler[T, C, P]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *ResourceHandler[T, C, P]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if !decodeBody(w, r, h.Validate, &in) {
		return
	}
	out, err := h.Store.Create(r.Context(), in)
	if err != nil {
		storeError(w, h.Log, "create "+h.Name, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *ResourceHandler[T, C, P]) List(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r, h.DefaultLimit)
	if !ok {
		return
	}
	out, err := h.Store.List(r.Context(), page)
	if err != nil {
		storeError(w, h.Log, "list "+h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ResourceHandler[T, C, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Store.Get(r.Context(), id)
	if err != nil {
		storeError(w, h.Log, "get "+h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Update applies a partial patch: only fields present in the body change.
func (h *ResourceHandler[T, C, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch P
	if !decodeBody(w, r, h.Validate, &patch) {
		return
	}
	out, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		storeError(w, h.Log, "update "+h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete removes the row and echoes it back.
func (h *ResourceHandler[T, C, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Store.Delete(r.Context(), id)
	if err != nil {
		storeError(w, h.Log, "delete "+h.Name, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
