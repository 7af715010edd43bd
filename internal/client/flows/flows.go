package flows

import (
	"time"

	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/validate"
	"github.com/kampanlabs/sawari/internal/logging"
)

// Flows orchestrates the three auth workflows. Each flow is independent and
// guarded by its own gate; no mutable state is shared across flows beyond
// the session held by the identity adapter.
type Flows struct {
	identity remote.IdentityService
	profiles remote.ProfileStore
	probe    remote.ConnectivityProbe
	logger   logging.Logger

	// now is injected for deterministic age validation under test.
	now func() time.Time

	signIn gate
	signUp gate
	reset  gate
}

func New(identity remote.IdentityService, profiles remote.ProfileStore, probe remote.ConnectivityProbe, logger logging.Logger) *Flows {
	return &Flows{
		identity: identity,
		profiles: profiles,
		probe:    probe,
		logger:   logger,
		now:      time.Now,
	}
}

// Result is the caller-visible outcome of one flow submission. Alerts travel
// separately through the AlertSink.
type Result struct {
	// FieldErrors is non-empty when the submission stopped on field-local
	// validation or a field-routed backend error.
	FieldErrors validate.FieldErrors

	// Done is true when the flow reached its success terminal state. The
	// caller clears its form fields and runs its continuation on Done.
	Done bool
}

// SignInBusy reports whether a sign-in submission is in flight.
func (f *Flows) SignInBusy() bool { return f.signIn.Busy() }

// SignUpBusy reports whether a sign-up submission is in flight.
func (f *Flows) SignUpBusy() bool { return f.signUp.Busy() }

// ResetBusy reports whether a password-reset submission is in flight.
func (f *Flows) ResetBusy() bool { return f.reset.Busy() }

// CancelSignIn drops the pending sign-in invocation's results.
func (f *Flows) CancelSignIn() { f.signIn.cancel() }

// CancelSignUp drops the pending sign-up invocation's results.
func (f *Flows) CancelSignUp() { f.signUp.cancel() }

// CancelReset drops the pending password-reset invocation's results.
func (f *Flows) CancelReset() { f.reset.cancel() }

var connectionAlert = AlertRequest{
	Title:    "Connection Error",
	Message:  "No internet connection. Please check your connection and try again.",
	Severity: SeverityError,
}
