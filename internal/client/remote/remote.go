package remote

import "context"

// IdentityService is the consumed surface of the identity backend. The HTTP
// adapter is the production implementation; tests substitute struct fakes.
type IdentityService interface {
	// SignIn exchanges credentials for a session and returns the identity
	// snapshot. On success the identity becomes current and subscribers are
	// notified.
	SignIn(ctx context.Context, email, password string) (*Identity, error)

	// CreateAccount registers a new identity. Like the managed service it
	// stands in for, a successful creation also signs the session in.
	CreateAccount(ctx context.Context, email, password string) (*Identity, error)

	// SignOut tears down the current session. Local session state is always
	// cleared, even when the backend call fails.
	SignOut(ctx context.Context) error

	// SendVerificationEmail asks the backend to (re)send the verification
	// mail for the given address. No session is required, so it still works
	// right after an unverified sign-in has been torn down.
	SendVerificationEmail(ctx context.Context, email string) error

	// SendPasswordReset asks the backend to send a reset mail. No session
	// required.
	SendPasswordReset(ctx context.Context, email string) error

	// LookupSignInMethods returns the registered sign-in methods for an
	// email; an empty slice means no account exists.
	LookupSignInMethods(ctx context.Context, email string) ([]string, error)

	// UpdateDisplayName changes the display name on the current identity.
	UpdateDisplayName(ctx context.Context, name string) error

	// Reload re-fetches the current identity snapshot (e.g. to observe a
	// verification that happened out of band).
	Reload(ctx context.Context) (*Identity, error)

	// Subscribe registers a callback invoked with every identity change
	// (nil on sign-out). The returned function cancels the subscription.
	Subscribe(fn func(*Identity)) (unsubscribe func())

	// CurrentIdentity returns the identity of the active session, or nil.
	CurrentIdentity() *Identity
}

// ProfileStore is the consumed surface of the profile document backend.
type ProfileStore interface {
	// Get fetches the profile record for ownerID. Absent records yield
	// common.ErrorNotFound.
	Get(ctx context.Context, ownerID string) (*ProfileRecord, error)

	// Set writes the full record for ownerID, creating it if absent.
	Set(ctx context.Context, ownerID string, rec *ProfileRecord) error

	// Update merges partial fields into an existing record. It never
	// creates: absent records yield common.ErrorNotFound.
	Update(ctx context.Context, ownerID string, fields map[string]any) error

	// RequestAvatarUpload asks the backend for a presigned upload slot for
	// the owner's profile photo.
	RequestAvatarUpload(ctx context.Context, ownerID string, contentType string) (*AvatarUpload, error)
}

// ConnectivityProbe reports whether the backend is currently reachable.
type ConnectivityProbe interface {
	Online(ctx context.Context) bool
}
