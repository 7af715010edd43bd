package flows

import (
	"context"
	"strings"

	"github.com/kampanlabs/sawari/internal/client/remote"
	"github.com/kampanlabs/sawari/internal/client/validate"
)

var resetMessages = map[remote.Code]string{
	remote.CodeInvalidEmail:     "The email address is not valid.",
	remote.CodeUserNotFound:     "No account found with this email. Please check your email or sign up.",
	remote.CodeTooManyRequests:  "Too many requests. Please try again later.",
	remote.CodeNetworkFailed:    "Network error. Please check your connection and try again.",
	remote.CodeMisconfiguration: "Password reset is not available right now. Please try again later.",
}

const resetFallback = "Failed to send password reset email"

// Reset runs the password-reset flow: Validating, CheckingConnectivity,
// LookingUp, Sending. When no sign-in methods are registered for the email,
// the flow ends with an Account Not Found warning without ever calling the
// reset endpoint.
func (f *Flows) Reset(ctx context.Context, email string, sink AlertSink) (Result, error) {
	tok, ok := f.reset.begin()
	if !ok {
		return Result{}, ErrBusy
	}
	defer f.reset.end()

	emit := func(a AlertRequest) {
		if f.reset.current(tok) && sink != nil {
			sink(a)
		}
	}

	if errs := validate.Reset(email); !errs.Valid() {
		return Result{FieldErrors: errs}, nil
	}

	if !f.probe.Online(ctx) {
		emit(connectionAlert)
		return Result{}, nil
	}

	email = strings.TrimSpace(email)

	// LookingUp.
	methods, err := f.identity.LookupSignInMethods(ctx, email)
	if err != nil {
		code := remote.CodeOf(err)
		f.logger.Warn(ctx, "sign-in method lookup failed", "code", code, "error", err)
		msg, known := resetMessages[code]
		if !known {
			msg = resetFallback
		}
		emit(AlertRequest{Title: "Error", Message: msg, Severity: SeverityError})
		return Result{}, nil
	}
	if len(methods) == 0 {
		emit(AlertRequest{
			Title:    "Account Not Found",
			Message:  "No account found with this email. Please check your email or sign up.",
			Severity: SeverityWarning,
		})
		return Result{}, nil
	}

	// Sending.
	if err := f.identity.SendPasswordReset(ctx, email); err != nil {
		code := remote.CodeOf(err)
		f.logger.Warn(ctx, "password reset send failed", "code", code, "error", err)
		msg, known := resetMessages[code]
		if !known {
			msg = resetFallback
		}
		emit(AlertRequest{Title: "Error", Message: msg, Severity: SeverityError})
		return Result{}, nil
	}

	emit(AlertRequest{
		Title:    "Success",
		Message:  "Password reset email sent to your email address.",
		Severity: SeveritySuccess,
	})

	if !f.reset.current(tok) {
		return Result{}, nil
	}
	return Result{Done: true}, nil
}
