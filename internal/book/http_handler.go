package book

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

const msgBookNotFound = "Book not found"

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/books", h.List)
	mux.HandleFunc("POST /api/books", h.Create)
	mux.HandleFunc("GET /api/books/{id}", h.Get)
	mux.HandleFunc("PUT /api/books/{id}", h.Update)
	mux.HandleFunc("DELETE /api/books/{id}", h.Delete)
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.InternalError(w, r, err)
		return
	}
	httpx.JSONList(w, books, len(books))
}

// Get handles GET /api/books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, b)
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeCreate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, created)
}

// Update handles PUT /api/books/{id}. A missing book is reported before
// anything is wrong with the body.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}

	if _, err := h.service.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	patch, err := decodeUpdate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, updated)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONMessage(w, fmt.Sprintf("Book with id %d deleted", id))
}

// pathID accepts only unsigned decimal ids; anything else is not a route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := IsValidation(err); ok {
		httpx.JSONError(w, http.StatusBadRequest, ve.Message)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, msgBookNotFound)
	case errors.Is(err, ErrBodyTooLarge):
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		httpx.InternalError(w, r, err)
	}
}
