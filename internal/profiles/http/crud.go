package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/domain"
	"github.com/aussiebroadwan/profilefeed/pkg/httpx"
)

// crudHandler serves the list/get/create/update/delete surface of one
// resource. T is the domain type, P the decoded request body. The per-verb
// funcs come from the service layer; a nil func is never routed.
type crudHandler[T, P any] struct {
	list   func(ctx context.Context, q domain.ListQuery) ([]T, error)
	get    func(ctx context.Context, id string) (T, error)
	create func(ctx context.Context, actorID string, body P) (T, error)
	update func(ctx context.Context, actorID, id string, body P, partial bool) (T, error)
	delete func(ctx context.Context, actorID, id string) error

	// render maps T to its wire shape.
	render func(T) any
}

func (h *crudHandler[T, P]) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items, err := h.list(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, h.render(it))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *crudHandler[T, P]) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(item))
}

func (h *crudHandler[T, P]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body P
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}

	actorID, _ := httpx.UserIDFromContext(r.Context())
	item, err := h.create(r.Context(), actorID, body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.render(item))
}

// handleReplace serves PUT.
func (h *crudHandler[T, P]) handleReplace(w http.ResponseWriter, r *http.Request) {
	h.handleUpdate(w, r, false)
}

// handlePatch serves PATCH.
func (h *crudHandler[T, P]) handlePatch(w http.ResponseWriter, r *http.Request) {
	h.handleUpdate(w, r, true)
}

func (h *crudHandler[T, P]) handleUpdate(w http.ResponseWriter, r *http.Request, partial bool) {
	var body P
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeServiceError(w, r, err)
		return
	}

	actorID, _ := httpx.UserIDFromContext(r.Context())
	item, err := h.update(r.Context(), actorID, r.PathValue("id"), body, partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(item))
}

func (h *crudHandler[T, P]) handleDelete(w http.ResponseWriter, r *http.Request) {
	actorID, _ := httpx.UserIDFromContext(r.Context())
	if err := h.delete(r.Context(), actorID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
