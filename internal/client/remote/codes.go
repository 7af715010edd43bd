// Package remote defines the client-side boundary to the account backend:
// the consumed service interfaces, the data types that cross the wire, and
// the closed error-code vocabulary the rest of the client branches on.
//
// No raw backend error leaves this package. Transport and HTTP failures are
// converted to AuthError values carrying a Code from the closed set below;
// workflow code matches on Code, never on backend strings.
package remote

import "errors"

// Code identifies a backend failure category. The set is closed: anything
// the adapter cannot classify becomes CodeUnknown.
type Code string

const (
	CodeInvalidEmail       Code = "invalid-email"
	CodeUserDisabled       Code = "user-disabled"
	CodeUserNotFound       Code = "user-not-found"
	CodeWrongPassword      Code = "wrong-password"
	CodeTooManyRequests    Code = "too-many-requests"
	CodeNetworkFailed      Code = "network-failed"
	CodeInvalidCredentials Code = "invalid-credentials"
	CodeInternalError      Code = "internal-error"
	CodeEmailInUse         Code = "email-already-in-use"
	CodeWeakPassword       Code = "weak-password"
	CodeMisconfiguration   Code = "misconfiguration"
	CodeUnknown            Code = "unknown"
)

var knownCodes = map[Code]struct{}{
	CodeInvalidEmail:       {},
	CodeUserDisabled:       {},
	CodeUserNotFound:       {},
	CodeWrongPassword:      {},
	CodeTooManyRequests:    {},
	CodeNetworkFailed:      {},
	CodeInvalidCredentials: {},
	CodeInternalError:      {},
	CodeEmailInUse:         {},
	CodeWeakPassword:       {},
	CodeMisconfiguration:   {},
}

// classify maps a wire code string to a member of the closed set.
func classify(s string) Code {
	c := Code(s)
	if _, ok := knownCodes[c]; ok {
		return c
	}
	return CodeUnknown
}

// AuthError is a classified backend failure. Message carries the backend's
// diagnostic text for logging; it is never shown to the user.
type AuthError struct {
	Code    Code
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// CodeOf extracts the Code from err. Non-AuthError values classify as
// CodeUnknown; nil classifies as the empty Code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}
