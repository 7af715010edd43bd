package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kampanlabs/sawari/internal/common"
)

// errorBody is the wire envelope for every failed request:
// {"error":{"code":"...","message":"..."}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// mapError translates service errors into the closed code set clients
// understand. Unrecognized errors become a 500 without detail.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorEmailExists):
		return respondError(c, http.StatusConflict, "email-already-in-use",
			"The email address is already in use by another account.")
	case errors.Is(err, common.ErrorWeakPassword):
		return respondError(c, http.StatusBadRequest, "weak-password",
			"Password should be at least 6 characters")
	case errors.Is(err, common.ErrorNotFound):
		return respondError(c, http.StatusNotFound, "user-not-found",
			"There is no user record corresponding to this identifier.")
	case errors.Is(err, common.ErrorUnauthorized):
		return respondError(c, http.StatusUnauthorized, "wrong-password",
			"The password is invalid or the user does not have a password.")
	case errors.Is(err, common.ErrorAccountDisabled):
		return respondError(c, http.StatusForbidden, "user-disabled",
			"The user account has been disabled by an administrator.")
	case errors.Is(err, common.ErrorTooManyRequests):
		return respondError(c, http.StatusTooManyRequests, "too-many-requests",
			"Access to this account has been temporarily disabled due to many failed login attempts.")
	case errors.Is(err, common.ErrTokenExpired):
		// Clients key their refresh-and-retry on this exact message.
		return respondError(c, http.StatusUnauthorized, "invalid-credentials", "token expired")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return respondError(c, http.StatusUnauthorized, "invalid-credentials", "refresh token expired")
	case errors.Is(err, common.ErrInvalidToken):
		return respondError(c, http.StatusUnauthorized, "invalid-credentials", "invalid token")
	default:
		return respondError(c, http.StatusInternalServerError, "internal-error", "internal error")
	}
}
