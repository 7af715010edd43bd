package flows

import (
	"context"
	"strings"

	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/validate"
)

var signUpMessages = map[remote.Code]string{
	remote.CodeInvalidEmail:  "Please enter a valid email address.",
	remote.CodeWeakPassword:  "Password must be at least 6 characters long.",
	remote.CodeNetworkFailed: "Network error. Please check your internet connection and try again.",
}

const (
	signUpFallback     = "Something went wrong while creating your account."
	emailInUseMessage  = "This email is already registered. Please use a different email or login."
	provisioningFailed = "Account created but there was an issue saving your profile. Please contact support."
)

// SignUp runs the sign-up flow: Validating, CheckingConnectivity, Creating,
// Provisioning, Verifying. Provisioning is not transactional with Creating;
// when the profile write fails after the account exists, the divergence is
// logged for reconciliation and the flow fails with the saving-your-profile
// alert. The flow always ends signed out: the new identity is unverified
// and must not reach the authenticated state.
func (f *Flows) SignUp(ctx context.Context, form validate.SignUpForm, sink AlertSink) (Result, error) {
	tok, ok := f.signUp.begin()
	if !ok {
		return Result{}, ErrBusy
	}
	defer f.signUp.end()

	emit := func(a AlertRequest) {
		if f.signUp.current(tok) && sink != nil {
			sink(a)
		}
	}

	if errs := validate.SignUp(form, f.now()); !errs.Valid() {
		return Result{FieldErrors: errs}, nil
	}

	if !f.probe.Online(ctx) {
		emit(connectionAlert)
		return Result{}, nil
	}

	email := strings.TrimSpace(form.Email)

	// Creating.
	id, err := f.identity.CreateAccount(ctx, email, form.Password)
	if err != nil {
		code := remote.CodeOf(err)
		f.logger.Warn(ctx, "account creation failed", "code", code, "error", err)

		if code == remote.CodeEmailInUse {
			// Field-local so the user can correct the address in place.
			return Result{FieldErrors: validate.FieldErrors{"email": emailInUseMessage}}, nil
		}

		msg, known := signUpMessages[code]
		if !known {
			msg = signUpFallback
		}
		emit(AlertRequest{Title: "Signup Failed", Message: msg, Severity: SeverityError})
		return Result{}, nil
	}

	// Provisioning: display name plus the profile document.
	if err := f.provision(ctx, id, form); err != nil {
		f.logger.Error(ctx, "profile provisioning failed, identity has no profile record",
			"accountId", id.ID, "error", err)
		if serr := f.identity.SignOut(ctx); serr != nil {
			f.logger.Warn(ctx, "sign out after failed provisioning failed", "error", serr)
		}
		emit(AlertRequest{Title: "Signup Failed", Message: provisioningFailed, Severity: SeverityError})
		return Result{}, nil
	}

	// Verifying: best effort, never aborts the flow.
	if err := f.identity.SendVerificationEmail(ctx, id.Email); err != nil {
		f.logger.Warn(ctx, "verification email send failed", "accountId", id.ID, "error", err)
	}

	// The fresh identity is unverified; it never stays signed in.
	if err := f.identity.SignOut(ctx); err != nil {
		f.logger.Warn(ctx, "sign out after sign up failed", "error", err)
	}

	emit(AlertRequest{
		Title:    "Account Created Successfully!",
		Message:  "Your account has been created and your information has been saved. Please check your email to verify your account before logging in.",
		Severity: SeveritySuccess,
	})

	if !f.signUp.current(tok) {
		return Result{}, nil
	}
	return Result{Done: true}, nil
}

// provision sets the display name and writes the initial profile document.
func (f *Flows) provision(ctx context.Context, id *remote.Identity, form validate.SignUpForm) error {
	name := strings.TrimSpace(form.Name)

	if err := f.identity.UpdateDisplayName(ctx, name); err != nil {
		return err
	}

	now := f.now().UTC()
	rec := &remote.ProfileRecord{
		OwnerID:       id.ID,
		Name:          name,
		Email:         strings.ToLower(strings.TrimSpace(form.Email)),
		City:          form.City,
		CreatedAt:     remote.NewFlexTime(now),
		UpdatedAt:     remote.NewFlexTime(now),
		EmailVerified: false,
		Profile:       remote.ProfileMeta{DisplayName: name, PhotoURL: nil},
		Settings:      remote.Settings{Notifications: true, Privacy: "public"},
		IsActive:      true,
	}
	if form.DateOfBirth != nil {
		dob := remote.NewFlexTime(*form.DateOfBirth)
		rec.DateOfBirth = &dob
	}

	return f.profiles.Set(ctx, id.ID, rec)
}
