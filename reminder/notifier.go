// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/campusboard/journal"
)

// TimerNotifier is the shipped Notifier. It arms one timer per scheduled
// notification and, when a timer fires, delivers by appending the rendered
// body to the notification log - which is what a delivered local
// notification looks like from this side of the OS boundary.
type TimerNotifier struct {
	journal *journal.Repository
	granted bool

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimerNotifier constructs a TimerNotifier. granted mirrors the OS
// permission state; when false every permission request is refused.
func NewTimerNotifier(jr *journal.Repository, granted bool) *TimerNotifier {
	return &TimerNotifier{
		journal: jr,
		granted: granted,
		timers:  make(map[string]*time.Timer),
	}
}

// RequestPermission reports the configured permission state.
func (n *TimerNotifier) RequestPermission(ctx context.Context) error {
	if !n.granted {
		return ErrPermissionDenied
	}
	return nil
}

// Schedule arms a timer for fireAt and returns its cancellation id.
// A fireAt in the past fires immediately.
func (n *TimerNotifier) Schedule(ctx context.Context, c Content, fireAt time.Time) (string, error) {
	id := uuid.NewString()

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	n.mu.Lock()
	n.timers[id] = time.AfterFunc(delay, func() { n.fire(id, c) })
	n.mu.Unlock()

	return id, nil
}

// Cancel stops the timer for id if it has not fired yet.
func (n *TimerNotifier) Cancel(id string) {
	n.mu.Lock()
	timer, ok := n.timers[id]
	delete(n.timers, id)
	n.mu.Unlock()

	if ok {
		timer.Stop()
	}
}

func (n *TimerNotifier) fire(id string, c Content) {
	n.mu.Lock()
	delete(n.timers, id)
	n.mu.Unlock()

	if err := n.journal.AddNotification(context.Background(), c.Body); err != nil {
		slog.Error("failed to deliver fired reminder", "error", err)
	}
}
