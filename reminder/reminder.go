// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/models"
)

var (
	// ErrPermissionDenied is returned when the notification capability
	// refuses permission. Nothing is scheduled.
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrEventPassed is returned when the event date is today or earlier.
	ErrEventPassed = errors.New("event has already passed")
	// ErrBadDate is returned when the event date cannot be parsed.
	ErrBadDate = errors.New("unrecognized event date")
)

const dateLayout = "2006-01-02"

// Content is the rendered notification handed to the OS capability.
type Content struct {
	Title string
	Body  string
}

// Notifier is the OS-level notification capability. Schedule returns an
// opaque id usable with Cancel until the notification fires.
type Notifier interface {
	RequestPermission(ctx context.Context) error
	Schedule(ctx context.Context, c Content, fireAt time.Time) (string, error)
	Cancel(id string)
}

// Scheduler computes the day-granular reminder schedule for an event and
// hands it to the Notifier. Repeat activation for the same event cancels
// the previous schedule instead of doubling it.
type Scheduler struct {
	notifier Notifier
	journal  *journal.Repository
	now      func() time.Time

	mu     sync.Mutex
	active map[string][]string // event id -> scheduled notification ids
}

// NewScheduler constructs a Scheduler.
func NewScheduler(n Notifier, jr *journal.Repository) *Scheduler {
	return &Scheduler{
		notifier: n,
		journal:  jr,
		now:      time.Now,
		active:   make(map[string][]string),
	}
}

// Set schedules one notification per remaining calendar day, today through
// the event date inclusive, then logs one summary notification and
// publishes reminder-scheduled. Returns how many notifications were
// scheduled. Per-day scheduling is best-effort: a failed day is logged and
// skipped, the remaining days still go out.
func (s *Scheduler) Set(ctx context.Context, event models.Event) (int, error) {
	if err := s.notifier.RequestPermission(ctx); err != nil {
		return 0, ErrPermissionDenied
	}

	eventDate, err := time.ParseInLocation(dateLayout, event.Date, time.Local)
	if err != nil {
		return 0, ErrBadDate
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	daysUntil := 0
	for d := today; d.Before(eventDate); d = d.AddDate(0, 0, 1) {
		daysUntil++
	}
	if daysUntil <= 0 {
		return 0, ErrEventPassed
	}

	s.cancelExisting(event.ID)

	content := Content{
		Title: "Reminder: " + event.Name,
		Body:  "Don't forget to attend " + event.Name + " on " + event.Date + ".",
	}

	var ids []string
	for i := 0; i <= daysUntil; i++ {
		fireAt := now.AddDate(0, 0, i)
		id, err := s.notifier.Schedule(ctx, content, fireAt)
		if err != nil {
			slog.Warn("reminder scheduling failed for one day", "event_id", event.ID, "fire_at", fireAt, "error", err)
			continue
		}
		ids = append(ids, id)
	}

	s.mu.Lock()
	s.active[event.ID] = ids
	s.mu.Unlock()

	summary := "Reminder set for " + event.Name + " on " + event.Date
	if err := s.journal.AddReminderNotification(ctx, summary); err != nil {
		return len(ids), err
	}

	slog.Info("reminder scheduled", "event_id", event.ID, "notifications", len(ids))
	return len(ids), nil
}

func (s *Scheduler) cancelExisting(eventID string) {
	s.mu.Lock()
	ids := s.active[eventID]
	delete(s.active, eventID)
	s.mu.Unlock()

	for _, id := range ids {
		s.notifier.Cancel(id)
	}
}
