package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kampanlabs/sawari/internal/server/auth"
)

const accountIDKey = "accountID"

// requireBearer extracts and validates the access token. Expired tokens get
// the exact "token expired" message clients use to trigger a refresh.
func (s *Server) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return respondError(c, http.StatusUnauthorized, "invalid-credentials", "missing bearer token")
		}

		accountID, err := auth.GetAccountIDFromToken(token, s.jwtSecret)
		if err != nil {
			return mapError(c, err)
		}

		c.Set(accountIDKey, accountID)
		return next(c)
	}
}

func requesterID(c echo.Context) string {
	id, _ := c.Get(accountIDKey).(string)
	return id
}
