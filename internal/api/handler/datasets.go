package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matchday/matchday-data/internal/api/respond"
	"github.com/matchday/matchday-data/internal/cache"
	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/season"
)

// GetCatalog lists every published dataset with its metadata.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "catalog"
	ttl := cache.TTLCatalog

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err := h.pool.QueryRow(r.Context(), "api_catalog").Scan(&raw)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Catalog query failed")
		return
	}
	if raw == nil {
		raw = []byte("[]")
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetCatalogEntry returns the catalog metadata for one club/season.
func (h *Handler) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	key, ok := h.datasetKey(w, r)
	if !ok {
		return
	}

	cacheKey := "catalog:" + key
	ttl := cache.TTLCatalog

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err := h.pool.QueryRow(r.Context(), "api_catalog_entry", key).Scan(&raw)
	if err != nil || raw == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Dataset %s has not been published", key))
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetDataset returns the full row set of one published season dataset,
// ordered by match date.
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	key, ok := h.datasetKey(w, r)
	if !ok {
		return
	}

	cacheKey := "dataset:" + key
	ttl := cache.TTLDataset

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err := h.pool.QueryRow(r.Context(), "api_dataset_rows", key).Scan(&raw)
	if err != nil || raw == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Dataset %s has not been published", key))
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetClubs lists the registered club names.
func (h *Handler) GetClubs(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"clubs": config.ClubNames(),
	})
}

// datasetKey validates the {club}/{season} path params and returns the
// dataset key. Season arrives URL-safe as "2021-22".
func (h *Handler) datasetKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	club := chi.URLParam(r, "club")
	label := chi.URLParam(r, "season")

	if _, err := config.ClubCode(club); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "UNKNOWN_CLUB",
			fmt.Sprintf("Unknown club %q", club))
		return "", false
	}

	se, err := season.ParseURLSafe(label)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON",
			"Season must look like 2021-22")
		return "", false
	}
	return se.Key(club), true
}
