// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/profile"
)

type ProfileHandler struct {
	profiles *profile.Repository
}

func NewProfileHandler(profiles *profile.Repository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Load(r.Context())
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// SaveProfile handles PUT /profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := middleware.ParseJSONBody(r, &p); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.profiles.Save(r.Context(), p); err != nil {
		slog.Error("failed to save profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	slog.Info("profile saved")
	middleware.JSONResponse(w, http.StatusOK, p)
}
