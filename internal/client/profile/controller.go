// Package profile implements profile loading and editing over the remote
// profile store, with an in-memory mirror so the UI reflects updates without
// a re-fetch.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/validate"
	"github.com/kampanlabs/sawari/internal/common"
	"github.com/kampanlabs/sawari/internal/logging"
	"github.com/kampanlabs/sawari/internal/netx"
)

const (
	cacheTTL     = 10 * time.Minute
	cacheCleanup = 15 * time.Minute
)

// ErrNotLoaded is returned by Update when no record exists for the owner.
// Update never creates; callers load first.
var ErrNotLoaded = errors.New("profile not loaded")

// Controller reads and writes the profile record of the signed-in user.
type Controller struct {
	store  remote.ProfileStore
	logger logging.Logger
	cache  *cache.Cache

	// now is injected for deterministic UpdatedAt stamps under test.
	now func() time.Time
}

func NewController(store remote.ProfileStore, logger logging.Logger) *Controller {
	return &Controller{
		store:  store,
		logger: logger,
		cache:  cache.New(cacheTTL, cacheCleanup),
		now:    time.Now,
	}
}

// Load fetches the owner's profile record. A missing record is self-healed:
// a default record derived from the identity is written and returned instead
// of failing. The result is mirrored into the cache.
func (c *Controller) Load(ctx context.Context, id *remote.Identity) (*remote.ProfileRecord, error) {
	rec, err := c.store.Get(ctx, id.ID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("load profile: %w", err)
		}

		c.logger.Warn(ctx, "profile record missing, creating default", "accountId", id.ID)
		rec = c.defaultRecord(id)
		if err := c.store.Set(ctx, id.ID, rec); err != nil {
			return nil, fmt.Errorf("create default profile: %w", err)
		}
	}

	c.cache.Set(id.ID, rec, cache.DefaultExpiration)
	return rec, nil
}

// Cached returns the mirrored record for ownerID, or nil when absent.
func (c *Controller) Cached(ownerID string) *remote.ProfileRecord {
	v, ok := c.cache.Get(ownerID)
	if !ok {
		return nil
	}
	return v.(*remote.ProfileRecord)
}

// Clear drops every mirrored record. Called on sign-out.
func (c *Controller) Clear() {
	c.cache.Flush()
}

// Changes is a partial profile edit. Nil fields are left untouched.
type Changes struct {
	Name          *string
	City          *string
	DateOfBirth   *time.Time
	Notifications *bool
	Privacy       *string
	PhotoURL      *string
}

// Update merges ch into the owner's remote record, stamps UpdatedAt, and
// mirrors the result into the cache. It never creates a record: an absent
// record yields ErrNotLoaded.
func (c *Controller) Update(ctx context.Context, ownerID string, ch Changes) error {
	fields := map[string]any{}
	if ch.Name != nil {
		fields["name"] = *ch.Name
	}
	if ch.City != nil {
		fields["city"] = *ch.City
	}
	if ch.DateOfBirth != nil {
		fields["dateOfBirth"] = remote.NewFlexTime(*ch.DateOfBirth)
	}
	if ch.Notifications != nil {
		fields["settings.notifications"] = *ch.Notifications
	}
	if ch.Privacy != nil {
		fields["settings.privacy"] = *ch.Privacy
	}
	if ch.PhotoURL != nil {
		fields["profile.photoURL"] = *ch.PhotoURL
	}

	updatedAt := remote.NewFlexTime(c.now().UTC())
	fields["updatedAt"] = updatedAt

	if err := c.store.Update(ctx, ownerID, fields); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrNotLoaded
		}
		return fmt.Errorf("update profile: %w", err)
	}

	if cached := c.Cached(ownerID); cached != nil {
		mirrored := *cached
		if ch.Name != nil {
			mirrored.Name = *ch.Name
		}
		if ch.City != nil {
			mirrored.City = *ch.City
		}
		if ch.DateOfBirth != nil {
			dob := remote.NewFlexTime(*ch.DateOfBirth)
			mirrored.DateOfBirth = &dob
		}
		if ch.Notifications != nil {
			mirrored.Settings.Notifications = *ch.Notifications
		}
		if ch.Privacy != nil {
			mirrored.Settings.Privacy = *ch.Privacy
		}
		if ch.PhotoURL != nil {
			url := *ch.PhotoURL
			mirrored.Profile.PhotoURL = &url
		}
		mirrored.UpdatedAt = updatedAt
		c.cache.Set(ownerID, &mirrored, cache.DefaultExpiration)
	}

	return nil
}

// uploadToPresignedURL is a seam for tests.
var uploadToPresignedURL = netx.UploadToPresignedURL

// UploadAvatar pushes the photo bytes to a presigned slot issued by the
// backend and records the resulting photo URL on the profile.
func (c *Controller) UploadAvatar(ctx context.Context, ownerID string, contentType string, data []byte) (string, error) {
	slot, err := c.store.RequestAvatarUpload(ctx, ownerID, contentType)
	if err != nil {
		return "", fmt.Errorf("request avatar upload: %w", err)
	}

	if err := uploadToPresignedURL(ctx, slot.UploadURL, contentType, data); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := c.Update(ctx, ownerID, Changes{PhotoURL: &slot.PhotoURL}); err != nil {
		return "", err
	}
	return slot.PhotoURL, nil
}

// Age derives the owner's age from the record's date of birth. The second
// return is false when no date of birth is stored. Age is never persisted.
func Age(rec *remote.ProfileRecord, today time.Time) (int, bool) {
	if rec == nil || rec.DateOfBirth == nil || rec.DateOfBirth.IsZero() {
		return 0, false
	}
	return validate.Age(rec.DateOfBirth.Time, today), true
}

func (c *Controller) defaultRecord(id *remote.Identity) *remote.ProfileRecord {
	now := remote.NewFlexTime(c.now().UTC())
	return &remote.ProfileRecord{
		OwnerID:       id.ID,
		Name:          id.DisplayName,
		Email:         id.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
		EmailVerified: id.EmailVerified,
		Profile:       remote.ProfileMeta{DisplayName: id.DisplayName},
		Settings:      remote.Settings{Notifications: true, Privacy: "public"},
		IsActive:      true,
	}
}
