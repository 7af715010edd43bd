// Package session tracks the current authenticated identity. One observer
// subscribes to the identity adapter's change stream for the life of the
// process and owns the current-identity slot; everything else only reads it.
package session

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/kampanlabs/sawari/internal/client/profile"
	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/logging"
)

// ErrAlreadyStarted is returned by Start when the observer is already
// subscribed.
var ErrAlreadyStarted = errors.New("session observer already started")

// Observer is the single writer of the current-identity slot. Replacement is
// atomic and whole-value: readers always see either the previous or the new
// identity, never a partial update.
type Observer struct {
	identity remote.IdentityService
	profiles *profile.Controller
	logger   logging.Logger

	current     atomic.Pointer[remote.Identity]
	started     atomic.Bool
	unsubscribe func()
}

func NewObserver(identity remote.IdentityService, profiles *profile.Controller, logger logging.Logger) *Observer {
	return &Observer{identity: identity, profiles: profiles, logger: logger}
}

// Start subscribes to identity changes. It may be called once per process.
func (o *Observer) Start(ctx context.Context) error {
	if !o.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	o.unsubscribe = o.identity.Subscribe(func(id *remote.Identity) {
		o.current.Store(id)

		if id == nil {
			o.profiles.Clear()
			return
		}
		if _, err := o.profiles.Load(ctx, id); err != nil {
			o.logger.Warn(ctx, "profile reload on identity change failed",
				"accountId", id.ID, "error", err)
		}
	})
	return nil
}

// Stop cancels the subscription. The current slot keeps its last value.
func (o *Observer) Stop() {
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
}

// Current returns the identity of the active session, or nil.
func (o *Observer) Current() *remote.Identity {
	return o.current.Load()
}

// SignedIn reports whether an identity is active. It gates which top-level
// screen set the CLI presents.
func (o *Observer) SignedIn() bool {
	return o.current.Load() != nil
}
