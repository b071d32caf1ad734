// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/campusboard/bus"
	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/store"
)

const (
	registrationsKey = "registered_events"
	notificationsKey = "notifications"
)

// ErrMissingField is returned when a required registration field is empty
// after trimming.
var ErrMissingField = errors.New("required field is empty")

// Repository owns the global registration list and the global
// notification log, and publishes the matching bus topics on every write.
type Repository struct {
	store *store.Store
	bus   *bus.Bus
}

// NewRepository constructs a Repository.
func NewRepository(st *store.Store, b *bus.Bus) *Repository {
	return &Repository{store: st, bus: b}
}

// RegisterForEvent appends a registration record and a derived
// notification, then publishes registration-changed and
// notification-log-changed with the full updated lists.
func (r *Repository) RegisterForEvent(ctx context.Context, event models.Event, user, email, quantity string) (models.Registration, error) {
	email = strings.TrimSpace(email)
	quantity = strings.TrimSpace(quantity)
	if email == "" || quantity == "" {
		return models.Registration{}, ErrMissingField
	}
	if user == "" {
		user = models.AnonymousUser
	}

	reg := models.Registration{
		ID:        models.NewID(),
		EventID:   event.ID,
		EventName: event.Name,
		UserName:  user,
		Email:     email,
		Quantity:  quantity,
	}

	var updated []models.Registration
	err := r.store.Update(ctx, registrationsKey, func(old string, ok bool) (string, error) {
		regs, err := decodeRegistrations(old, ok)
		if err != nil {
			return "", err
		}
		updated = append(regs, reg)
		return encode(updated)
	})
	if err != nil {
		return models.Registration{}, err
	}
	r.bus.Publish(bus.TopicRegistrationChanged, updated)

	if err := r.AddNotification(ctx, "User "+user+" registered for "+event.Name); err != nil {
		return models.Registration{}, err
	}
	return reg, nil
}

// AddNotification appends one string to the notification log and
// publishes notification-log-changed with the full updated list.
func (r *Repository) AddNotification(ctx context.Context, text string) error {
	updated, err := r.appendNotification(ctx, text)
	if err != nil {
		return err
	}
	r.bus.Publish(bus.TopicNotificationsChanged, updated)
	return nil
}

// AddReminderNotification appends the reminder summary and publishes
// reminder-scheduled instead of the generic notification topic.
func (r *Repository) AddReminderNotification(ctx context.Context, text string) error {
	updated, err := r.appendNotification(ctx, text)
	if err != nil {
		return err
	}
	r.bus.Publish(bus.TopicReminderScheduled, updated)
	return nil
}

func (r *Repository) appendNotification(ctx context.Context, text string) ([]string, error) {
	var updated []string
	err := r.store.Update(ctx, notificationsKey, func(old string, ok bool) (string, error) {
		list, err := decodeNotifications(old, ok)
		if err != nil {
			return "", err
		}
		updated = append(list, text)
		return encode(updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Registrations returns the global registration list in storage order.
func (r *Repository) Registrations(ctx context.Context) ([]models.Registration, error) {
	raw, ok, err := r.store.Get(ctx, registrationsKey)
	if err != nil {
		return nil, err
	}
	return decodeRegistrations(raw, ok)
}

// Notifications returns the notification log in storage order (oldest
// first). Consumers presenting newest-first reverse it at the read edge.
func (r *Repository) Notifications(ctx context.Context) ([]string, error) {
	raw, ok, err := r.store.Get(ctx, notificationsKey)
	if err != nil {
		return nil, err
	}
	return decodeNotifications(raw, ok)
}

// CountForEvent counts registrations for one event. Records carrying an
// event id match by id; legacy records without one fall back to the
// denormalized name.
func (r *Repository) CountForEvent(ctx context.Context, eventID, eventName string) (int, error) {
	regs, err := r.Registrations(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, reg := range regs {
		if reg.EventID == eventID || (reg.EventID == "" && reg.EventName == eventName) {
			count++
		}
	}
	return count, nil
}

func decodeRegistrations(raw string, ok bool) ([]models.Registration, error) {
	if !ok || raw == "" {
		return nil, nil
	}
	var regs []models.Registration
	if err := json.Unmarshal([]byte(raw), &regs); err != nil {
		return nil, fmt.Errorf("%w: decode registrations: %v", store.ErrStorage, err)
	}
	return regs, nil
}

func decodeNotifications(raw string, ok bool) ([]string, error) {
	if !ok || raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: decode notifications: %v", store.ErrStorage, err)
	}
	return list, nil
}

func encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", store.ErrStorage, err)
	}
	return string(data), nil
}
