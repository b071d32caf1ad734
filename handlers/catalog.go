// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/campusboard/catalog"
	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/models"
)

type CatalogHandler struct {
	builder *catalog.Builder
}

func NewCatalogHandler(b *catalog.Builder) *CatalogHandler {
	return &CatalogHandler{builder: b}
}

// GetCatalog handles GET /catalog?category=&q=
// Each request refreshes from the remote feed (the pull-to-refresh path);
// when the feed is unreachable the previous view is served instead, and
// only an empty previous view becomes an error.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	events, err := h.builder.Refresh(r.Context())
	if err != nil {
		if len(events) == 0 {
			slog.Error("catalog fetch failed with no cached view", "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to fetch events. Please try again later.")
			return
		}
		slog.Warn("catalog fetch failed, serving previous view", "error", err)
	}

	category := r.URL.Query().Get("category")
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	events = catalog.ApplyFilters(events, category, search)

	middleware.JSONResponse(w, http.StatusOK, events)
}

// GetRecommended handles GET /catalog/recommended
// Pure derivation over the already-joined view; it does not re-fetch.
func (h *CatalogHandler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, catalog.Recommend(h.builder.View()))
}

// SubmitEvent handles POST /events
func (h *CatalogHandler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.builder.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			slog.Error("event submission failed", "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to add event. Please try again.")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add event")
		return
	}

	slog.Info("event submitted", "event_id", created.ID, "name", created.Name)
	middleware.JSONResponse(w, http.StatusCreated, created)
}
