// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campusboard/engagement"
	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/profile"
	"github.com/danielhkuo/campusboard/store"
)

type EngagementHandler struct {
	ledger   *engagement.Repository
	profiles *profile.Repository
}

func NewEngagementHandler(ledger *engagement.Repository, profiles *profile.Repository) *EngagementHandler {
	return &EngagementHandler{ledger: ledger, profiles: profiles}
}

// GetEngagement handles GET /events/{id}/engagement
func (h *EngagementHandler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	resp, err := h.ledger.Load(r.Context(), eventID)
	if err != nil {
		slog.Error("failed to load engagement", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load engagement")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Like handles POST /events/{id}/like
func (h *EngagementHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.ledger.IncrementLike)
}

// Dislike handles POST /events/{id}/dislike
func (h *EngagementHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.ledger.IncrementDislike)
}

func (h *EngagementHandler) react(w http.ResponseWriter, r *http.Request, inc func(ctx context.Context, eventID string) (int, error)) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	if _, err := inc(r.Context(), eventID); err != nil {
		slog.Error("failed to save reaction", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save reaction")
		return
	}

	resp, err := h.ledger.Load(r.Context(), eventID)
	if err != nil {
		slog.Error("failed to reload counters", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save reaction")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ReactionResponse{Likes: resp.Likes, Dislikes: resp.Dislikes})
}

// AddComment handles POST /events/{id}/comments
func (h *EngagementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.AddCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := h.profiles.DisplayName(r.Context())
	comment, err := h.ledger.AppendComment(r.Context(), eventID, user, req.Text)
	if err != nil {
		if errors.Is(err, engagement.ErrEmptyText) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Comment cannot be empty.")
			return
		}
		slog.Error("failed to save comment", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save comment")
		return
	}

	slog.Info("comment added", "event_id", eventID, "comment_id", comment.ID)
	middleware.JSONResponse(w, http.StatusCreated, comment)
}

// AddFeedback handles POST /events/{id}/feedback
func (h *EngagementHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event id is required")
		return
	}

	var req models.FeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user := h.profiles.DisplayName(r.Context())
	if err := h.ledger.AppendFeedback(r.Context(), eventID, user, req.Feedback); err != nil {
		if errors.Is(err, engagement.ErrEmptyText) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Feedback cannot be empty.")
			return
		}
		if errors.Is(err, store.ErrStorage) {
			slog.Error("failed to save feedback", "error", err, "event_id", eventID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save feedback.")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save feedback.")
		return
	}

	slog.Info("feedback submitted", "event_id", eventID, "user", user)
	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"message": "Thank you for your feedback!"})
}
