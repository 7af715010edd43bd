package flows

import (
	"context"
	"strings"

	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/validate"
)

// signInMessages maps backend codes to the user-facing sign-in messages.
// Unmatched codes fall through to signInFallback; the raw code and message
// are logged but never shown.
var signInMessages = map[remote.Code]string{
	remote.CodeInvalidEmail:       "The email address is not valid.",
	remote.CodeUserDisabled:       "This account has been disabled. Please contact support.",
	remote.CodeUserNotFound:       "No account found with this email. Please check your email or sign up.",
	remote.CodeWrongPassword:      "Incorrect password. Please try again or reset your password.",
	remote.CodeTooManyRequests:    "Too many failed login attempts. Please try again later or reset your password.",
	remote.CodeNetworkFailed:      "Network error. Please check your connection and try again.",
	remote.CodeInvalidCredentials: "Invalid login credentials. Please check your email and password.",
	remote.CodeInternalError:      "An internal error occurred. Please try again later.",
}

const signInFallback = "Something went wrong. Please try again later."

// SignIn runs the sign-in flow: Validating, CheckingConnectivity,
// Authenticating, VerifyingEmailStatus. An unverified identity is signed
// back out immediately and never reaches the authenticated state.
func (f *Flows) SignIn(ctx context.Context, form validate.SignInForm, sink AlertSink) (Result, error) {
	tok, ok := f.signIn.begin()
	if !ok {
		return Result{}, ErrBusy
	}
	defer f.signIn.end()

	emit := func(a AlertRequest) {
		if f.signIn.current(tok) && sink != nil {
			sink(a)
		}
	}

	if errs := validate.SignIn(form); !errs.Valid() {
		return Result{FieldErrors: errs}, nil
	}

	if !f.probe.Online(ctx) {
		emit(connectionAlert)
		return Result{}, nil
	}

	id, err := f.identity.SignIn(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		code := remote.CodeOf(err)
		f.logger.Warn(ctx, "sign in failed", "code", code, "error", err)

		msg, known := signInMessages[code]
		if !known {
			msg = signInFallback
		}

		switch code {
		case remote.CodeUserNotFound, remote.CodeWrongPassword, remote.CodeInvalidCredentials:
			return Result{FieldErrors: validate.FieldErrors{"password": msg}}, nil
		case remote.CodeInvalidEmail:
			return Result{FieldErrors: validate.FieldErrors{"email": msg}}, nil
		case remote.CodeTooManyRequests:
			emit(AlertRequest{Title: "Too Many Attempts", Message: msg, Severity: SeverityError})
			return Result{}, nil
		default:
			emit(AlertRequest{Title: "Login Failed", Message: msg, Severity: SeverityError})
			return Result{}, nil
		}
	}

	if !id.EmailVerified {
		if err := f.identity.SignOut(ctx); err != nil {
			f.logger.Warn(ctx, "sign out after unverified login failed", "error", err)
		}

		if err := f.identity.SendVerificationEmail(ctx, id.Email); err != nil {
			// Best effort: a failed resend softens the alert, it does not
			// fail the flow.
			f.logger.Warn(ctx, "verification email send failed", "error", err)
			emit(AlertRequest{
				Title:    "Verification Required",
				Message:  "Your email is not verified. Please check your inbox for a verification email or request a new one.",
				Severity: SeverityWarning,
			})
			return Result{}, nil
		}

		emit(AlertRequest{
			Title:    "Email Verification Required",
			Message:  "A verification email has been sent. Please verify your email before logging in.",
			Severity: SeverityWarning,
		})
		return Result{}, nil
	}

	if !f.signIn.current(tok) {
		return Result{}, nil
	}
	return Result{Done: true}, nil
}
