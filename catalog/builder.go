// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/campusboard/engagement"
	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/models"
)

const (
	recommendLimit = 5
	dateLayout     = "2006-01-02"
)

// Builder derives the catalog view: the remote event list sorted by date
// and joined with the local engagement counters. The last successful view
// is cached so a failed refresh leaves something to display.
type Builder struct {
	client     *Client
	engagement *engagement.Repository
	journal    *journal.Repository

	mu         sync.Mutex
	view       []models.Event
	generation int
}

// NewBuilder constructs a Builder.
func NewBuilder(c *Client, er *engagement.Repository, jr *journal.Repository) *Builder {
	return &Builder{client: c, engagement: er, journal: jr}
}

// Refresh fetches the remote list, stable-sorts it ascending by date (ties
// keep remote order), joins likes and registration counts, and replaces
// the cached view. A response that arrives after a newer refresh started
// is discarded so a slow fetch never overwrites fresher data.
func (b *Builder) Refresh(ctx context.Context) ([]models.Event, error) {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.mu.Unlock()

	events, err := b.client.Fetch(ctx)
	if err != nil {
		return b.View(), err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return dateLess(events[i].Date, events[j].Date)
	})

	for i := range events {
		if err := b.annotate(ctx, &events[i]); err != nil {
			return b.View(), err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		slog.Info("discarding stale catalog refresh", "generation", gen)
		return append([]models.Event(nil), b.view...), nil
	}
	b.view = events
	return append([]models.Event(nil), events...), nil
}

// View returns a copy of the last successfully built catalog.
func (b *Builder) View() []models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Event(nil), b.view...)
}

// Submit sends a new event to the remote collaborator and appends the
// created record to the cached view.
func (b *Builder) Submit(ctx context.Context, req models.SubmitEventRequest) (models.Event, error) {
	created, err := b.client.Submit(ctx, req)
	if err != nil {
		return models.Event{}, err
	}

	b.mu.Lock()
	b.view = append(b.view, created)
	b.mu.Unlock()
	return created, nil
}

func (b *Builder) annotate(ctx context.Context, e *models.Event) error {
	likes, err := b.engagement.Likes(ctx, e.ID)
	if err != nil {
		return err
	}
	registered, err := b.journal.CountForEvent(ctx, e.ID, e.Name)
	if err != nil {
		return err
	}
	e.Likes = likes
	e.Registered = registered
	return nil
}

// dateLess orders calendar-date strings. Well-formed dates compare as
// dates; anything unparseable falls back to string order so the sort
// stays total.
func dateLess(a, b string) bool {
	ta, errA := time.Parse(dateLayout, a)
	tb, errB := time.Parse(dateLayout, b)
	if errA == nil && errB == nil {
		return ta.Before(tb)
	}
	return a < b
}

// ApplyFilters narrows a catalog by category and search text. Category
// "All" matches everything; the search is a case-insensitive substring
// match against name or venue; the filters intersect.
func ApplyFilters(events []models.Event, category, search string) []models.Event {
	search = strings.ToLower(search)

	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if category != "" && category != models.CategoryAll && e.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Venue), search) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// Recommend selects events with likes > 10 or registered > 5, keeping the
// catalog's order, truncated to the first 5. Pure function of the
// already-joined catalog.
func Recommend(events []models.Event) []models.Event {
	recommended := make([]models.Event, 0, recommendLimit)
	for _, e := range events {
		if e.Likes > 10 || e.Registered > 5 {
			recommended = append(recommended, e)
			if len(recommended) == recommendLimit {
				break
			}
		}
	}
	return recommended
}
