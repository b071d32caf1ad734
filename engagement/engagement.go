// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/campusboard/journal"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/store"
)

// ErrEmptyText is returned when a comment or feedback body is empty after
// trimming. Nothing is persisted.
var ErrEmptyText = errors.New("text cannot be empty")

// Repository owns the per-event engagement state: reaction counters and
// the comment and feedback lists. Counters are stored as decimal strings,
// lists as JSON arrays, under likes_{id}, dislikes_{id}, comments_{id},
// and feedback_{id}.
type Repository struct {
	store   *store.Store
	journal *journal.Repository
}

// NewRepository constructs a Repository. journal receives the
// notification written on feedback submission.
func NewRepository(st *store.Store, jr *journal.Repository) *Repository {
	return &Repository{store: st, journal: jr}
}

// IncrementLike adds one like to the event and returns the new count.
// Every call is a fresh vote; there is no retraction.
func (r *Repository) IncrementLike(ctx context.Context, eventID string) (int, error) {
	return r.increment(ctx, "likes_"+eventID)
}

// IncrementDislike adds one dislike to the event and returns the new count.
func (r *Repository) IncrementDislike(ctx context.Context, eventID string) (int, error) {
	return r.increment(ctx, "dislikes_"+eventID)
}

func (r *Repository) increment(ctx context.Context, key string) (int, error) {
	var updated int
	err := r.store.Update(ctx, key, func(old string, ok bool) (string, error) {
		count, err := parseCounter(old, ok)
		if err != nil {
			return "", err
		}
		updated = count + 1
		return strconv.Itoa(updated), nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// AppendComment validates, builds a Comment with a creation-time id, and
// appends it to the event's list. user falls back to "Anonymous".
func (r *Repository) AppendComment(ctx context.Context, eventID, user, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, ErrEmptyText
	}
	if user == "" {
		user = models.AnonymousUser
	}

	comment := models.Comment{
		ID:   models.NewID(),
		User: user,
		Text: text,
	}

	err := r.store.Update(ctx, "comments_"+eventID, func(old string, ok bool) (string, error) {
		comments, err := decodeComments(old, ok)
		if err != nil {
			return "", err
		}
		return encodeJSON(append(comments, comment))
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// AppendFeedback validates and appends a feedback entry, then records a
// notification summarizing the submission.
func (r *Repository) AppendFeedback(ctx context.Context, eventID, user, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if user == "" {
		user = models.AnonymousUser
	}

	entry := models.FeedbackEntry{User: user, Feedback: text}
	err := r.store.Update(ctx, "feedback_"+eventID, func(old string, ok bool) (string, error) {
		var list []models.FeedbackEntry
		if ok && old != "" {
			if err := json.Unmarshal([]byte(old), &list); err != nil {
				return "", fmt.Errorf("%w: decode feedback: %v", store.ErrStorage, err)
			}
		}
		return encodeJSON(append(list, entry))
	})
	if err != nil {
		return err
	}

	return r.journal.AddNotification(ctx, "Feedback submitted by "+user)
}

// Load returns the counters and comment list for initial screen population.
func (r *Repository) Load(ctx context.Context, eventID string) (models.EngagementResponse, error) {
	var resp models.EngagementResponse

	likes, ok, err := r.store.Get(ctx, "likes_"+eventID)
	if err != nil {
		return resp, err
	}
	if resp.Likes, err = parseCounter(likes, ok); err != nil {
		return resp, err
	}

	dislikes, ok, err := r.store.Get(ctx, "dislikes_"+eventID)
	if err != nil {
		return resp, err
	}
	if resp.Dislikes, err = parseCounter(dislikes, ok); err != nil {
		return resp, err
	}

	raw, ok, err := r.store.Get(ctx, "comments_"+eventID)
	if err != nil {
		return resp, err
	}
	if resp.Comments, err = decodeComments(raw, ok); err != nil {
		return resp, err
	}
	return resp, nil
}

// Likes returns the like counter for the catalog join (absent = 0).
func (r *Repository) Likes(ctx context.Context, eventID string) (int, error) {
	raw, ok, err := r.store.Get(ctx, "likes_"+eventID)
	if err != nil {
		return 0, err
	}
	return parseCounter(raw, ok)
}

// Feedback returns the feedback list for an event.
func (r *Repository) Feedback(ctx context.Context, eventID string) ([]models.FeedbackEntry, error) {
	raw, ok, err := r.store.Get(ctx, "feedback_"+eventID)
	if err != nil {
		return nil, err
	}
	var list []models.FeedbackEntry
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("%w: decode feedback: %v", store.ErrStorage, err)
		}
	}
	return list, nil
}

// parseCounter enforces the counter invariant: absent defaults to 0,
// anything else must be a non-negative integer.
func parseCounter(raw string, ok bool) (int, error) {
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: corrupt counter %q", store.ErrStorage, raw)
	}
	return n, nil
}

func decodeComments(raw string, ok bool) ([]models.Comment, error) {
	if !ok || raw == "" {
		return nil, nil
	}
	var comments []models.Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return nil, fmt.Errorf("%w: decode comments: %v", store.ErrStorage, err)
	}
	return comments, nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", store.ErrStorage, err)
	}
	return string(data), nil
}
