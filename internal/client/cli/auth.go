package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kampanlabs/sawari/internal/client/flows"
	"github.com/kampanlabs/sawari/internal/client/validate"
	"github.com/kampanlabs/sawari/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for credentials and runs the sign-in flow. Field errors and
// alerts are rendered; the password buffer is wiped before returning.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.flows.SignIn(ctx, validate.SignInForm{Email: email, Password: string(password)}, a.showAlert)
	if err != nil {
		if errors.Is(err, flows.ErrBusy) {
			printlnFn("A sign-in is already in progress.")
			return nil
		}
		return err
	}

	if !res.FieldErrors.Valid() {
		renderFieldErrors(res.FieldErrors)
		return nil
	}
	if res.Done {
		printlnFn("Signed in.")
	}
	return nil
}

// SignUp prompts for the registration fields and runs the sign-up flow.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	dobText, err := getSimpleText(a.reader, "Enter date of birth (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	var dob *time.Time
	if dobText != "" {
		parsed, perr := time.Parse("2006-01-02", dobText)
		if perr != nil {
			printlnFn("  dateOfBirth: Date of birth is required")
			return nil
		}
		dob = &parsed
	}

	city, err := a.selectCity()
	if err != nil {
		return err
	}

	form := validate.SignUpForm{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		DateOfBirth:     dob,
		City:            city,
	}

	res, err := a.flows.SignUp(ctx, form, a.showAlert)
	if err != nil {
		if errors.Is(err, flows.ErrBusy) {
			printlnFn("A sign-up is already in progress.")
			return nil
		}
		return err
	}

	if !res.FieldErrors.Valid() {
		renderFieldErrors(res.FieldErrors)
	}
	return nil
}

// ResetPassword prompts for an email and runs the password-reset flow.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.flows.Reset(ctx, email, a.showAlert)
	if err != nil {
		if errors.Is(err, flows.ErrBusy) {
			printlnFn("A reset is already in progress.")
			return nil
		}
		return err
	}

	if !res.FieldErrors.Valid() {
		renderFieldErrors(res.FieldErrors)
	}
	return nil
}

// SignOut ends the current session.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.identity.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "sign out failed", "error", err)
	}
	printlnFn("Signed out.")
	return nil
}

func (a *App) showAlert(alert flows.AlertRequest) {
	renderAlert(alert)
}

func (a *App) selectCity() (string, error) {
	printlnFn("Select city:")
	for i, city := range validate.Cities {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, city))
	}
	choice, err := getSimpleText(a.reader, "City number or name", os.Stdout)
	if err != nil {
		return "", err
	}
	for i, city := range validate.Cities {
		if choice == fmt.Sprintf("%d", i+1) || strings.EqualFold(choice, city) {
			return city, nil
		}
	}
	return choice, nil
}
