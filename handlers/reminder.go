// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/campusboard/catalog"
	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/reminder"
)

type ReminderHandler struct {
	scheduler *reminder.Scheduler
	builder   *catalog.Builder
}

func NewReminderHandler(s *reminder.Scheduler, b *catalog.Builder) *ReminderHandler {
	return &ReminderHandler{scheduler: s, builder: b}
}

// SetReminder handles POST /events/{id}/reminder
func (h *ReminderHandler) SetReminder(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var event models.Event
	found := false
	view := h.builder.View()
	if len(view) == 0 {
		var refreshErr error
		if view, refreshErr = h.builder.Refresh(r.Context()); refreshErr != nil {
			slog.Warn("catalog refresh for event lookup failed", "error", refreshErr, "event_id", eventID)
		}
	}
	for _, e := range view {
		if e.ID == eventID {
			event = e
			found = true
			break
		}
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}

	scheduled, err := h.scheduler.Set(r.Context(), event)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrPermissionDenied):
			middleware.ErrorResponse(w, http.StatusForbidden, "Notification permissions are required.")
		case errors.Is(err, reminder.ErrEventPassed):
			middleware.ErrorResponse(w, http.StatusConflict, "This event has already passed.")
		case errors.Is(err, reminder.ErrBadDate):
			middleware.ErrorResponse(w, http.StatusBadRequest, "Event date is not a valid calendar date")
		default:
			slog.Error("failed to set reminder", "error", err, "event_id", eventID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set reminder")
		}
		return
	}

	starts := event.Date
	if d, parseErr := time.ParseInLocation("2006-01-02", event.Date, time.Local); parseErr == nil {
		starts = humanize.Time(d)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReminderResponse{
		Scheduled:   scheduled,
		EventStarts: starts,
		Message:     "You will be reminded daily until the event.",
	})
}
