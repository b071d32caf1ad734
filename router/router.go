// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/campusboard/catalog"
	"github.com/danielhkuo/campusboard/engagement"
	"github.com/danielhkuo/campusboard/handlers"
	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/middleware"
	"github.com/danielhkuo/campusboard/profile"
	"github.com/danielhkuo/campusboard/reminder"
)

// Deps carries the engine components the handlers need.
type Deps struct {
	Builder   *catalog.Builder
	Ledger    *engagement.Repository
	Journal   *journal.Repository
	Profiles  *profile.Repository
	Scheduler *reminder.Scheduler
}

func NewRouter(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(d.Builder)
	engagementHandler := handlers.NewEngagementHandler(d.Ledger, d.Profiles)
	journalHandler := handlers.NewJournalHandler(d.Journal, d.Profiles, d.Builder)
	reminderHandler := handlers.NewReminderHandler(d.Scheduler, d.Builder)
	profileHandler := handlers.NewProfileHandler(d.Profiles)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Catalog views
	mux.HandleFunc("GET /catalog", route("/catalog", catalogHandler.GetCatalog))
	mux.HandleFunc("GET /catalog/recommended", route("/catalog/recommended", catalogHandler.GetRecommended))
	mux.HandleFunc("POST /events", route("/events", catalogHandler.SubmitEvent))

	// Per-event engagement
	mux.HandleFunc("GET /events/{id}/engagement", route("/events/{id}/engagement", engagementHandler.GetEngagement))
	mux.HandleFunc("POST /events/{id}/like", route("/events/{id}/like", engagementHandler.Like))
	mux.HandleFunc("POST /events/{id}/dislike", route("/events/{id}/dislike", engagementHandler.Dislike))
	mux.HandleFunc("POST /events/{id}/comments", route("/events/{id}/comments", engagementHandler.AddComment))
	mux.HandleFunc("POST /events/{id}/feedback", route("/events/{id}/feedback", engagementHandler.AddFeedback))

	// Registration, notifications, reminders
	mux.HandleFunc("POST /events/{id}/register", route("/events/{id}/register", journalHandler.Register))
	mux.HandleFunc("GET /registrations", route("/registrations", journalHandler.ListRegistrations))
	mux.HandleFunc("GET /notifications", route("/notifications", journalHandler.ListNotifications))
	mux.HandleFunc("POST /events/{id}/reminder", route("/events/{id}/reminder", reminderHandler.SetReminder))

	// Profile
	mux.HandleFunc("GET /profile", route("/profile", profileHandler.GetProfile))
	mux.HandleFunc("PUT /profile", route("/profile", profileHandler.SaveProfile))

	return mux
}

func route(pattern string, h http.HandlerFunc) http.HandlerFunc {
	return middleware.WithLogging(middleware.WithMetrics(pattern, h))
}
