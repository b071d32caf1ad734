// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package profile persists the singleton user profile. The profile is
// overwritten wholesale on save; the picture reference is a local URI and
// absent means the default asset.
package profile

import (
	"context"

	"github.com/danielhkuo/campusboard/models"
	"github.com/danielhkuo/campusboard/store"
)

const (
	nameKey   = "profile_name"
	numberKey = "profile_number"
	emailKey  = "profile_email"
	picKey    = "profile_pic"
)

// Repository reads and writes the profile keys.
type Repository struct {
	store *store.Store
}

// NewRepository constructs a Repository.
func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// Load returns the stored profile. Missing fields come back empty.
func (r *Repository) Load(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	var err error
	if p.Name, err = r.get(ctx, nameKey); err != nil {
		return p, err
	}
	if p.Number, err = r.get(ctx, numberKey); err != nil {
		return p, err
	}
	if p.Email, err = r.get(ctx, emailKey); err != nil {
		return p, err
	}
	if p.Pic, err = r.get(ctx, picKey); err != nil {
		return p, err
	}
	return p, nil
}

// Save overwrites the whole profile. The picture key is only written when
// a reference is present, so clearing the app's picture keeps the prior one.
func (r *Repository) Save(ctx context.Context, p models.Profile) error {
	if err := r.store.Set(ctx, nameKey, p.Name); err != nil {
		return err
	}
	if err := r.store.Set(ctx, numberKey, p.Number); err != nil {
		return err
	}
	if err := r.store.Set(ctx, emailKey, p.Email); err != nil {
		return err
	}
	if p.Pic != "" {
		return r.store.Set(ctx, picKey, p.Pic)
	}
	return nil
}

// DisplayName returns the profile name or "Anonymous" when unset.
func (r *Repository) DisplayName(ctx context.Context) string {
	name, err := r.get(ctx, nameKey)
	if err != nil || name == "" {
		return models.AnonymousUser
	}
	return name
}

func (r *Repository) get(ctx context.Context, key string) (string, error) {
	value, _, err := r.store.Get(ctx, key)
	return value, err
}
