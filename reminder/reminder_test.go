// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/campusboard/bus"
	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/testutil"
)

// fakeNotifier records scheduling calls instead of arming timers.
type fakeNotifier struct {
	denied bool
	failOn map[int]bool // call index -> fail

	mu        sync.Mutex
	calls     int
	scheduled map[string]Content
	fireTimes []time.Time
	canceled  []string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{scheduled: make(map[string]Content)}
}

func (f *fakeNotifier) RequestPermission(ctx context.Context) error {
	if f.denied {
		return ErrPermissionDenied
	}
	return nil
}

func (f *fakeNotifier) Schedule(ctx context.Context, c Content, fireAt time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failOn[f.calls] {
		return "", errors.New("transient scheduling failure")
	}
	id := fmt.Sprintf("n%d", f.calls)
	f.scheduled[id] = c
	f.fireTimes = append(f.fireTimes, fireAt)
	return id, nil
}

func (f *fakeNotifier) Cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, id)
	f.canceled = append(f.canceled, id)
}

func newTestScheduler(t *testing.T, n Notifier) (*Scheduler, *journal.Repository, *bus.Bus) {
	t.Helper()
	b := bus.New()
	jr := journal.NewRepository(testutil.SetupTestStore(t), b)
	s := NewScheduler(n, jr)
	// Pin "now" so day math is deterministic regardless of wall clock.
	s.now = func() time.Time {
		return time.Date(2025, time.September, 1, 10, 30, 0, 0, time.Local)
	}
	return s, jr, b
}

func eventDatedDaysAhead(days int) models.Event {
	d := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, days)
	return models.Event{ID: "e1", Name: "Tech Fest", Date: d.Format("2006-01-02")}
}

func TestSetSchedulesOnePerDayThroughEventDate(t *testing.T) {
	notifier := newFakeNotifier()
	s, jr, b := newTestScheduler(t, notifier)
	rec := testutil.RecordTopic(b, bus.TopicReminderScheduled)

	scheduled, err := s.Set(context.Background(), eventDatedDaysAhead(3))
	if err != nil {
		t.Fatal(err)
	}

	// Today plus the 3 days up to and including the event date.
	if scheduled != 4 {
		t.Errorf("expected 4 scheduled notifications, got %d", scheduled)
	}
	if len(notifier.fireTimes) != 4 {
		t.Fatalf("notifier saw %d schedules", len(notifier.fireTimes))
	}
	for i, fireAt := range notifier.fireTimes {
		want := s.now().AddDate(0, 0, i)
		if !fireAt.Equal(want) {
			t.Errorf("day %d fires at %v, want %v", i, fireAt, want)
		}
	}

	for _, c := range notifier.scheduled {
		if c.Title != "Reminder: Tech Fest" {
			t.Errorf("unexpected title %q", c.Title)
		}
		if c.Body != "Don't forget to attend Tech Fest on 2025-09-04." {
			t.Errorf("unexpected body %q", c.Body)
		}
	}

	// One summary notification, published on reminder-scheduled.
	notifications, _ := jr.Notifications(context.Background())
	if len(notifications) != 1 || notifications[0] != "Reminder set for Tech Fest on 2025-09-04" {
		t.Errorf("unexpected notification log: %v", notifications)
	}
	if rec.Count() != 1 {
		t.Errorf("expected 1 reminder-scheduled publish, got %d", rec.Count())
	}
}

func TestSetRejectsPassedEvent(t *testing.T) {
	notifier := newFakeNotifier()
	s, jr, _ := newTestScheduler(t, notifier)

	for _, days := range []int{0, -1, -30} {
		if _, err := s.Set(context.Background(), eventDatedDaysAhead(days)); !errors.Is(err, ErrEventPassed) {
			t.Errorf("event %d days ahead: expected ErrEventPassed, got %v", days, err)
		}
	}

	if len(notifier.scheduled) != 0 {
		t.Error("nothing may be scheduled for a passed event")
	}
	notifications, _ := jr.Notifications(context.Background())
	if len(notifications) != 0 {
		t.Error("no summary notification for a passed event")
	}
}

func TestSetRejectsWhenPermissionDenied(t *testing.T) {
	notifier := newFakeNotifier()
	notifier.denied = true
	s, jr, _ := newTestScheduler(t, notifier)

	if _, err := s.Set(context.Background(), eventDatedDaysAhead(3)); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(notifier.scheduled) != 0 {
		t.Error("denied permission must schedule nothing")
	}
	notifications, _ := jr.Notifications(context.Background())
	if len(notifications) != 0 {
		t.Error("denied permission must not log a summary")
	}
}

func TestSetRejectsUnparseableDate(t *testing.T) {
	s, _, _ := newTestScheduler(t, newFakeNotifier())

	event := models.Event{ID: "e1", Name: "Tech Fest", Date: "next Tuesday"}
	if _, err := s.Set(context.Background(), event); !errors.Is(err, ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

// A failed day is skipped; the remaining days still go out.
func TestPerDayFailuresDoNotAbort(t *testing.T) {
	notifier := newFakeNotifier()
	notifier.failOn = map[int]bool{2: true}
	s, _, _ := newTestScheduler(t, notifier)

	scheduled, err := s.Set(context.Background(), eventDatedDaysAhead(3))
	if err != nil {
		t.Fatal(err)
	}
	if scheduled != 3 {
		t.Errorf("expected 3 of 4 days scheduled, got %d", scheduled)
	}
}

// Repeat activation replaces the previous schedule instead of stacking.
func TestRepeatActivationCancelsPreviousSchedule(t *testing.T) {
	notifier := newFakeNotifier()
	s, jr, _ := newTestScheduler(t, notifier)
	ctx := context.Background()
	event := eventDatedDaysAhead(3)

	if _, err := s.Set(ctx, event); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Set(ctx, event); err != nil {
		t.Fatal(err)
	}

	if len(notifier.scheduled) != 4 {
		t.Errorf("active schedule must stay at 4 notifications, got %d", len(notifier.scheduled))
	}
	if len(notifier.canceled) != 4 {
		t.Errorf("first activation's 4 notifications must be canceled, got %d", len(notifier.canceled))
	}

	// Each activation still logs its own summary.
	notifications, _ := jr.Notifications(ctx)
	if len(notifications) != 2 {
		t.Errorf("expected 2 summary notifications, got %d", len(notifications))
	}
}
