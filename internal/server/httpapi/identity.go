package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kampanlabs/sawari/internal/server/models"
	"github.com/kampanlabs/sawari/internal/server/services"
)

// identityJSON is the account as clients see it.
type identityJSON struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// sessionJSON is returned by sign-in, account creation and refresh.
type sessionJSON struct {
	Identity     identityJSON `json:"identity"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type displayNameRequest struct {
	DisplayName string `json:"displayName"`
}

func toIdentityJSON(a *models.Account) identityJSON {
	return identityJSON{
		ID:            a.ID,
		Email:         a.Email,
		DisplayName:   a.DisplayName,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
	}
}

func toSessionJSON(a *models.Account, pair *services.TokenPair) sessionJSON {
	return sessionJSON{
		Identity:     toIdentityJSON(a),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func plausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

func (s *Server) handleCreateAccount(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid-email", "The email address is badly formatted.")
	}
	if !plausibleEmail(req.Email) {
		return respondError(c, http.StatusBadRequest, "invalid-email", "The email address is badly formatted.")
	}

	account, pair, err := s.identity.CreateAccount(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionJSON(account, pair))
}

func (s *Server) handleSignIn(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid-email", "The email address is badly formatted.")
	}

	account, pair, err := s.identity.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionJSON(account, pair))
}

func (s *Server) handleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "missing refresh token")
	}

	account, pair, err := s.identity.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionJSON(account, pair))
}

func (s *Server) handleSignOut(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "missing refresh token")
	}
	if req.RefreshToken != "" {
		if err := s.identity.SignOut(c.Request().Context(), req.RefreshToken); err != nil {
			return mapError(c, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleLookup(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return respondError(c, http.StatusBadRequest, "invalid-email", "email parameter is required")
	}

	methods, err := s.identity.LookupMethods(c.Request().Context(), email)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"methods": methods})
}

func (s *Server) handleSendVerification(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return respondError(c, http.StatusBadRequest, "invalid-email", "The email address is badly formatted.")
	}
	if err := s.identity.SendVerification(c.Request().Context(), req.Email); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (s *Server) handleConfirmVerification(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "missing verification token")
	}
	if err := s.identity.ConfirmVerification(c.Request().Context(), req.Token); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSendPasswordReset(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return respondError(c, http.StatusBadRequest, "invalid-email", "The email address is badly formatted.")
	}
	if err := s.identity.SendPasswordReset(c.Request().Context(), req.Email); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (s *Server) handleGetMe(c echo.Context) error {
	account, err := s.identity.GetAccount(c.Request().Context(), requesterID(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toIdentityJSON(account))
}

func (s *Server) handlePatchMe(c echo.Context) error {
	var req displayNameRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "malformed request body")
	}

	account, err := s.identity.UpdateDisplayName(c.Request().Context(), requesterID(c), req.DisplayName)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toIdentityJSON(account))
}
