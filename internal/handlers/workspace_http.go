package handlers

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

// Stampable items can be given a fresh id and creation time.
type Stampable[T any] interface {
	models.Item
	Stamp(id string, at time.Time) T
}

// CollectionHTTP serves one workspace collection (notes, bookmarks, ...).
type CollectionHTTP[T Stampable[T]] struct {
	mu    sync.Mutex // serialises read-modify-write cycles
	store repository.CollectionStore[T]
	now   func() time.Time
}

func NewCollectionHTTP[T Stampable[T]](store repository.CollectionStore[T]) *CollectionHTTP[T] {
	return &CollectionHTTP[T]{store: store, now: time.Now}
}

// Mount registers the collection routes on r.
func (h *CollectionHTTP[T]) Mount(r chi.Router) {
	r.Get("/", h.List())
	r.Put("/", h.Replace())
	r.Post("/", h.Add())
	r.Delete("/{id}", h.Delete())
}

// GET ?q= filters by name and text.
func (h *CollectionHTTP[T]) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.store.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			items = slices.DeleteFunc(items, func(it T) bool { return !it.Matches(q) })
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

func (h *CollectionHTTP[T]) Replace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []T
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, it := range items {
			if it.ItemID() == "" {
				items[i] = it.Stamp(uuid.NewString(), h.now())
			}
		}
		if err := h.store.ReplaceAll(r.Context(), items); err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	}
}

// Add prepends the new item so the newest comes first.
func (h *CollectionHTTP[T]) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var it T
		if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		it = it.Stamp(uuid.NewString(), h.now())
		h.mu.Lock()
		defer h.mu.Unlock()
		items, err := h.store.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if err := h.store.ReplaceAll(r.Context(), append([]T{it}, items...)); err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, it)
	}
}

func (h *CollectionHTTP[T]) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		h.mu.Lock()
		defer h.mu.Unlock()
		items, err := h.store.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		i := slices.IndexFunc(items, func(it T) bool { return it.ItemID() == id })
		if i < 0 {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if err := h.store.ReplaceAll(r.Context(), slices.Delete(items, i, i+1)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
