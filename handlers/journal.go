// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campusboard/catalog"
	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/profile"
)

type JournalHandler struct {
	journal  *journal.Repository
	profiles *profile.Repository
	builder  *catalog.Builder
}

func NewJournalHandler(jr *journal.Repository, profiles *profile.Repository, b *catalog.Builder) *JournalHandler {
	return &JournalHandler{journal: jr, profiles: profiles, builder: b}
}

// Register handles POST /events/{id}/register
func (h *JournalHandler) Register(w http.ResponseWriter, r *http.Request) {
	event, ok := h.findEvent(w, r)
	if !ok {
		return
	}

	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := h.profiles.DisplayName(r.Context())
	reg, err := h.journal.RegisterForEvent(r.Context(), event, user, req.Email, req.Quantity)
	if err != nil {
		if errors.Is(err, journal.ErrMissingField) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Please fill in all fields.")
			return
		}
		slog.Error("failed to register", "error", err, "event_id", event.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register for the event.")
		return
	}

	slog.Info("registration recorded", "event_id", event.ID, "registration_id", reg.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Registration: reg,
		Message:      "You have successfully registered for the event!",
	})
}

// ListRegistrations handles GET /registrations
func (h *JournalHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.journal.Registrations(r.Context())
	if err != nil {
		slog.Error("failed to load registrations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load registrations")
		return
	}
	if regs == nil {
		regs = []models.Registration{}
	}
	middleware.JSONResponse(w, http.StatusOK, regs)
}

// ListNotifications handles GET /notifications
// Stored oldest-first; presented newest-first.
func (h *JournalHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.journal.Notifications(r.Context())
	if err != nil {
		slog.Error("failed to load notifications", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	reversed := make([]string, 0, len(notifications))
	for i := len(notifications) - 1; i >= 0; i-- {
		reversed = append(reversed, notifications[i])
	}
	middleware.JSONResponse(w, http.StatusOK, reversed)
}

// findEvent resolves {id} against the cached catalog view, refreshing
// once when the view is still empty (cold start).
func (h *JournalHandler) findEvent(w http.ResponseWriter, r *http.Request) (models.Event, bool) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return models.Event{}, false
	}

	view := h.builder.View()
	if len(view) == 0 {
		var refreshErr error
		if view, refreshErr = h.builder.Refresh(r.Context()); refreshErr != nil {
			slog.Warn("catalog refresh for event lookup failed", "error", refreshErr, "event_id", eventID)
		}
	}

	for _, e := range view {
		if e.ID == eventID {
			return e, true
		}
	}
	middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
	return models.Event{}, false
}
