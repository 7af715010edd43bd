package flows

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/validate"
	"github.com/kampanlabs/sawari/internal/logging"
)

// ---------- fakes ----------

type fakeIdentity struct {
	signInFn       func(ctx context.Context, email, password string) (*remote.Identity, error)
	createFn       func(ctx context.Context, email, password string) (*remote.Identity, error)
	signOutCalls   int
	signOutErr     error
	verifyEmails   []string
	verifyErr      error
	resetEmails    []string
	resetErr       error
	lookupMethods  []string
	lookupErr      error
	displayNames   []string
	displayNameErr error
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*remote.Identity, error) {
	return f.signInFn(ctx, email, password)
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, password string) (*remote.Identity, error) {
	return f.createFn(ctx, email, password)
}

func (f *fakeIdentity) SignOut(ctx context.Context) error {
	f.signOutCalls++
	return f.signOutErr
}

func (f *fakeIdentity) SendVerificationEmail(ctx context.Context, email string) error {
	f.verifyEmails = append(f.verifyEmails, email)
	return f.verifyErr
}

func (f *fakeIdentity) SendPasswordReset(ctx context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return f.resetErr
}

func (f *fakeIdentity) LookupSignInMethods(ctx context.Context, email string) ([]string, error) {
	return f.lookupMethods, f.lookupErr
}

func (f *fakeIdentity) UpdateDisplayName(ctx context.Context, name string) error {
	f.displayNames = append(f.displayNames, name)
	return f.displayNameErr
}

func (f *fakeIdentity) Reload(ctx context.Context) (*remote.Identity, error) { return nil, nil }
func (f *fakeIdentity) Subscribe(fn func(*remote.Identity)) func()           { return func() {} }
func (f *fakeIdentity) CurrentIdentity() *remote.Identity                    { return nil }

type fakeProfiles struct {
	setRecords map[string]*remote.ProfileRecord
	setErr     error
}

func (f *fakeProfiles) Get(ctx context.Context, ownerID string) (*remote.ProfileRecord, error) {
	return nil, nil
}

func (f *fakeProfiles) Set(ctx context.Context, ownerID string, rec *remote.ProfileRecord) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.setRecords == nil {
		f.setRecords = map[string]*remote.ProfileRecord{}
	}
	f.setRecords[ownerID] = rec
	return nil
}

func (f *fakeProfiles) Update(ctx context.Context, ownerID string, fields map[string]any) error {
	return nil
}

func (f *fakeProfiles) RequestAvatarUpload(ctx context.Context, ownerID string, contentType string) (*remote.AvatarUpload, error) {
	return nil, nil
}

type fakeProbe struct{ online bool }

func (f *fakeProbe) Online(ctx context.Context) bool { return f.online }

type alertRecorder struct{ alerts []AlertRequest }

func (r *alertRecorder) sink() AlertSink {
	return func(a AlertRequest) { r.alerts = append(r.alerts, a) }
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func newFlows(id *fakeIdentity, profiles *fakeProfiles, online bool) *Flows {
	f := New(id, profiles, &fakeProbe{online: online}, testLogger())
	f.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func verifiedIdentity() *remote.Identity {
	return &remote.Identity{ID: "u-1", Email: "rider@example.com", EmailVerified: true}
}

func unverifiedIdentity() *remote.Identity {
	return &remote.Identity{ID: "u-1", Email: "rider@example.com", EmailVerified: false}
}

// ---------- sign-in ----------

func TestSignIn_Success(t *testing.T) {
	id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		return verifiedIdentity(), nil
	}}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "rider@example.com", Password: "secret1"}, rec.sink())
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Empty(t, rec.alerts)
	assert.False(t, f.SignInBusy())
}

func TestSignIn_ValidationStopsBeforeRemote(t *testing.T) {
	called := false
	id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		called = true
		return verifiedIdentity(), nil
	}}
	f := newFlows(id, &fakeProfiles{}, true)

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "not-an-email", Password: ""}, nil)
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, "Please enter a valid email", res.FieldErrors["email"])
	assert.Equal(t, "Password is required", res.FieldErrors["password"])
	assert.False(t, called)
}

func TestSignIn_OfflineEmitsConnectionError(t *testing.T) {
	called := false
	id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		called = true
		return nil, nil
	}}
	f := newFlows(id, &fakeProfiles{}, false)
	rec := &alertRecorder{}

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Connection Error", rec.alerts[0].Title)
	assert.Equal(t, SeverityError, rec.alerts[0].Severity)
	assert.False(t, called)
	assert.False(t, f.SignInBusy())
}

func TestSignIn_ErrorRouting(t *testing.T) {
	tests := []struct {
		name       string
		code       remote.Code
		wantField  string
		wantTitle  string
		wantInText string
	}{
		{name: "wrong password -> password field", code: remote.CodeWrongPassword,
			wantField: "password", wantInText: "Incorrect password. Please try again or reset your password."},
		{name: "user not found -> password field", code: remote.CodeUserNotFound,
			wantField: "password", wantInText: "No account found with this email. Please check your email or sign up."},
		{name: "invalid credentials -> password field", code: remote.CodeInvalidCredentials,
			wantField: "password", wantInText: "Invalid login credentials. Please check your email and password."},
		{name: "invalid email -> email field", code: remote.CodeInvalidEmail,
			wantField: "email", wantInText: "The email address is not valid."},
		{name: "too many requests -> alert", code: remote.CodeTooManyRequests,
			wantTitle: "Too Many Attempts", wantInText: "Too many failed login attempts. Please try again later or reset your password."},
		{name: "user disabled -> alert", code: remote.CodeUserDisabled,
			wantTitle: "Login Failed", wantInText: "This account has been disabled. Please contact support."},
		{name: "unknown code -> generic fallback", code: remote.CodeUnknown,
			wantTitle: "Login Failed", wantInText: "Something went wrong. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
				return nil, &remote.AuthError{Code: tt.code, Message: "backend detail"}
			}}
			f := newFlows(id, &fakeProfiles{}, true)
			rec := &alertRecorder{}

			res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, rec.sink())
			require.NoError(t, err)
			assert.False(t, res.Done)
			assert.False(t, f.SignInBusy())

			if tt.wantField != "" {
				assert.Equal(t, tt.wantInText, res.FieldErrors[tt.wantField])
				assert.Empty(t, rec.alerts)
			} else {
				require.Len(t, rec.alerts, 1)
				assert.Equal(t, tt.wantTitle, rec.alerts[0].Title)
				assert.Equal(t, tt.wantInText, rec.alerts[0].Message)
			}
		})
	}
}

func TestSignIn_UnverifiedIdentitySignedBackOut(t *testing.T) {
	id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		return unverifiedIdentity(), nil
	}}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "rider@example.com", Password: "secret1"}, rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, 1, id.signOutCalls)
	assert.Equal(t, []string{"rider@example.com"}, id.verifyEmails)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Email Verification Required", rec.alerts[0].Title)
	assert.Equal(t, SeverityWarning, rec.alerts[0].Severity)
	assert.False(t, f.SignInBusy())
}

func TestSignIn_UnverifiedResendFailureSoftensAlert(t *testing.T) {
	id := &fakeIdentity{
		signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
			return unverifiedIdentity(), nil
		},
		verifyErr: &remote.AuthError{Code: remote.CodeInternalError, Message: "smtp down"},
	}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "rider@example.com", Password: "secret1"}, rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, 1, id.signOutCalls)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Verification Required", rec.alerts[0].Title)
	assert.Equal(t, SeverityWarning, rec.alerts[0].Severity)
}

// ---------- sign-up ----------

func validSignUpForm() validate.SignUpForm {
	dob := time.Date(2000, 5, 15, 0, 0, 0, 0, time.UTC)
	return validate.SignUpForm{
		Name:            "Sita Sharma",
		Email:           " Sita@Example.com ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		DateOfBirth:     &dob,
		City:            "Pokhara",
	}
}

func TestSignUp_Success(t *testing.T) {
	id := &fakeIdentity{createFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		assert.Equal(t, "Sita@Example.com", email)
		return &remote.Identity{ID: "u-9", Email: "sita@example.com"}, nil
	}}
	profiles := &fakeProfiles{}
	f := newFlows(id, profiles, true)
	rec := &alertRecorder{}

	res, err := f.SignUp(context.Background(), validSignUpForm(), rec.sink())
	require.NoError(t, err)
	assert.True(t, res.Done)

	require.Contains(t, profiles.setRecords, "u-9")
	saved := profiles.setRecords["u-9"]
	assert.Equal(t, "u-9", saved.OwnerID)
	assert.Equal(t, "Sita Sharma", saved.Name)
	assert.Equal(t, "sita@example.com", saved.Email)
	assert.Equal(t, "Pokhara", saved.City)
	assert.False(t, saved.EmailVerified)
	assert.True(t, saved.Settings.Notifications)
	assert.Equal(t, "public", saved.Settings.Privacy)
	assert.True(t, saved.IsActive)
	assert.Nil(t, saved.Profile.PhotoURL)
	assert.Equal(t, "Sita Sharma", saved.Profile.DisplayName)
	require.NotNil(t, saved.DateOfBirth)

	assert.Equal(t, []string{"Sita Sharma"}, id.displayNames)
	assert.Equal(t, []string{"sita@example.com"}, id.verifyEmails)
	assert.Equal(t, 1, id.signOutCalls)

	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Account Created Successfully!", rec.alerts[0].Title)
	assert.Equal(t, SeveritySuccess, rec.alerts[0].Severity)
	assert.False(t, f.SignUpBusy())
}

func TestSignUp_EmailInUseAttachesToEmailField(t *testing.T) {
	id := &fakeIdentity{createFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		return nil, &remote.AuthError{Code: remote.CodeEmailInUse}
	}}
	profiles := &fakeProfiles{}
	f := newFlows(id, profiles, true)
	rec := &alertRecorder{}

	res, err := f.SignUp(context.Background(), validSignUpForm(), rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Equal(t, "This email is already registered. Please use a different email or login.", res.FieldErrors["email"])
	assert.Empty(t, rec.alerts, "email-in-use must not raise a modal")
	assert.Empty(t, profiles.setRecords, "no profile record may be created")
	assert.False(t, f.SignUpBusy())
}

func TestSignUp_ValidationShortPassword(t *testing.T) {
	id := &fakeIdentity{createFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		t.Fatal("createAccount must not be called")
		return nil, nil
	}}
	f := newFlows(id, &fakeProfiles{}, true)

	form := validSignUpForm()
	form.Password = "12345"
	form.ConfirmPassword = "12345"

	res, err := f.SignUp(context.Background(), form, nil)
	require.NoError(t, err)
	assert.Equal(t, "Password must be at least 6 characters", res.FieldErrors["password"])
}

func TestSignUp_ProvisioningFailureSurfacesSupportAlert(t *testing.T) {
	id := &fakeIdentity{createFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		return &remote.Identity{ID: "u-9", Email: "sita@example.com"}, nil
	}}
	profiles := &fakeProfiles{setErr: &remote.AuthError{Code: remote.CodeInternalError, Message: "write failed"}}
	f := newFlows(id, profiles, true)
	rec := &alertRecorder{}

	res, err := f.SignUp(context.Background(), validSignUpForm(), rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Signup Failed", rec.alerts[0].Title)
	assert.Equal(t, "Account created but there was an issue saving your profile. Please contact support.", rec.alerts[0].Message)
	assert.Equal(t, 1, id.signOutCalls)
	assert.False(t, f.SignUpBusy())
}

func TestSignUp_VerificationFailureDoesNotAbort(t *testing.T) {
	id := &fakeIdentity{
		createFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
			return &remote.Identity{ID: "u-9", Email: "sita@example.com"}, nil
		},
		verifyErr: &remote.AuthError{Code: remote.CodeInternalError},
	}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.SignUp(context.Background(), validSignUpForm(), rec.sink())
	require.NoError(t, err)
	assert.True(t, res.Done)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Account Created Successfully!", rec.alerts[0].Title)
}

// ---------- password reset ----------

func TestReset_NoMethodsMeansAccountNotFound(t *testing.T) {
	id := &fakeIdentity{lookupMethods: nil}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.Reset(context.Background(), "ghost@example.com", rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Account Not Found", rec.alerts[0].Title)
	assert.Equal(t, SeverityWarning, rec.alerts[0].Severity)
	assert.Empty(t, id.resetEmails, "sendPasswordReset must never be invoked")
	assert.False(t, f.ResetBusy())
}

func TestReset_Success(t *testing.T) {
	id := &fakeIdentity{lookupMethods: []string{"password"}}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.Reset(context.Background(), "rider@example.com", rec.sink())
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, []string{"rider@example.com"}, id.resetEmails)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Success", rec.alerts[0].Title)
	assert.Equal(t, "Password reset email sent to your email address.", rec.alerts[0].Message)
}

func TestReset_SendFailureMapped(t *testing.T) {
	id := &fakeIdentity{
		lookupMethods: []string{"password"},
		resetErr:      &remote.AuthError{Code: remote.CodeTooManyRequests},
	}
	f := newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.Reset(context.Background(), "rider@example.com", rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	require.Len(t, rec.alerts, 1)
	assert.Equal(t, "Too many requests. Please try again later.", rec.alerts[0].Message)
	assert.False(t, f.ResetBusy())
}

func TestReset_ValidationOnly(t *testing.T) {
	id := &fakeIdentity{}
	f := newFlows(id, &fakeProfiles{}, true)

	res, err := f.Reset(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Email is required", res.FieldErrors["email"])
}

// ---------- busy / cancellation ----------

func TestBusyFlagRejectsDoubleSubmission(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		close(started)
		<-release
		return verifiedIdentity(), nil
	}}
	f := newFlows(id, &fakeProfiles{}, true)

	done := make(chan Result)
	go func() {
		res, _ := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, nil)
		done <- res
	}()

	<-started
	assert.True(t, f.SignInBusy())

	_, err := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	res := <-done
	assert.True(t, res.Done)
	assert.False(t, f.SignInBusy())
}

func TestBusyFlagClearsOnRemoteFailure(t *testing.T) {
	id := &fakeIdentity{signInFn: func(ctx context.Context, email, password string) (*remote.Identity, error) {
		return nil, &remote.AuthError{Code: remote.CodeInternalError}
	}}
	f := newFlows(id, &fakeProfiles{}, true)

	_, err := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, func(AlertRequest) {})
	require.NoError(t, err)
	assert.False(t, f.SignInBusy())
}

func TestCancelledInvocationResultsAreDropped(t *testing.T) {
	var f *Flows
	id := &fakeIdentity{}
	id.signInFn = func(ctx context.Context, email, password string) (*remote.Identity, error) {
		// The screen goes away while the request is in flight.
		f.CancelSignIn()
		return unverifiedIdentity(), nil
	}
	f = newFlows(id, &fakeProfiles{}, true)
	rec := &alertRecorder{}

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, rec.sink())
	require.NoError(t, err)
	assert.False(t, res.Done)
	assert.Empty(t, rec.alerts, "alerts from a cancelled invocation must be dropped")
	assert.False(t, f.SignInBusy())
}

func TestCancelledInvocationSuppressesDone(t *testing.T) {
	var f *Flows
	id := &fakeIdentity{}
	id.signInFn = func(ctx context.Context, email, password string) (*remote.Identity, error) {
		f.CancelSignIn()
		return verifiedIdentity(), nil
	}
	f = newFlows(id, &fakeProfiles{}, true)

	res, err := f.SignIn(context.Background(), validate.SignInForm{Email: "a@b.co", Password: "x"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Done)
}
