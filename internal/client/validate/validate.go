// Package validate holds the pure form-validation rules for the auth and
// profile forms. Nothing here touches the network; wall-clock "today" is an
// explicit input so age checks are deterministic under test.
package validate

import (
	"regexp"
	"strings"
	"time"
)

// Cities is the closed set of supported pickup cities, in display order.
var Cities = []string{"Kathmandu", "Pokhara", "Bharatpur", "Nepalgunj", "Birgunj"}

// MinPasswordLen applies to sign-up only; sign-in merely requires non-empty.
const MinPasswordLen = 6

// MinAge is the minimum account-holder age in years.
const MinAge = 13

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps field name to a user-facing message. An empty map means
// the form is valid.
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool { return len(e) == 0 }

// EmailValid reports whether email matches the accepted address shape.
func EmailValid(email string) bool {
	return emailRe.MatchString(email)
}

// Age computes full years between birth and today, decrementing by one when
// the birthday has not yet occurred in today's year.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// CityAllowed reports whether city is one of the supported cities.
func CityAllowed(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

// SignInForm carries the sign-in form fields.
type SignInForm struct {
	Email    string
	Password string
}

// SignIn validates a sign-in submission. Passwords only need to be present.
func SignIn(f SignInForm) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !EmailValid(f.Email) {
		errs["email"] = "Please enter a valid email"
	}

	if f.Password == "" {
		errs["password"] = "Password is required"
	}

	return errs
}

// SignUpForm carries the sign-up form fields. DateOfBirth is nil when the
// user has not picked a date.
type SignUpForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	DateOfBirth     *time.Time
	City            string
}

// SignUp validates a sign-up submission against the full rule set, using
// today for the age check.
func SignUp(f SignUpForm, today time.Time) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}

	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !EmailValid(f.Email) {
		errs["email"] = "Please enter a valid email"
	}

	if f.Password == "" {
		errs["password"] = "Password is required"
	} else if len(f.Password) < MinPasswordLen {
		errs["password"] = "Password must be at least 6 characters"
	}

	if f.ConfirmPassword != f.Password {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if f.DateOfBirth == nil {
		errs["dateOfBirth"] = "Date of birth is required"
	} else if Age(*f.DateOfBirth, today) < MinAge {
		errs["dateOfBirth"] = "You must be at least 13 years old"
	}

	if strings.TrimSpace(f.City) == "" || !CityAllowed(f.City) {
		errs["city"] = "City is required"
	}

	return errs
}

// Reset validates a password-reset submission (email only).
func Reset(email string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	} else if !EmailValid(email) {
		errs["email"] = "Please enter a valid email"
	}

	return errs
}
