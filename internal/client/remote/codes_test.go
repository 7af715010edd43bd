package remote

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, CodeWrongPassword, classify("wrong-password"))
	assert.Equal(t, CodeEmailInUse, classify("email-already-in-use"))
	assert.Equal(t, CodeUnknown, classify("auth/some-new-code"))
	assert.Equal(t, CodeUnknown, classify(""))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(nil))
	assert.Equal(t, CodeUserDisabled, CodeOf(&AuthError{Code: CodeUserDisabled}))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("sign in: %w", &AuthError{Code: CodeTooManyRequests})
	assert.Equal(t, CodeTooManyRequests, CodeOf(wrapped))
}

func TestAuthError_Error(t *testing.T) {
	assert.Equal(t, "user-not-found", (&AuthError{Code: CodeUserNotFound}).Error())
	assert.Equal(t, "internal-error: boom", (&AuthError{Code: CodeInternalError, Message: "boom"}).Error())
}
