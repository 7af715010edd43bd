// Package httpapi exposes the account backend over JSON/HTTP: account and
// session endpoints, profile documents, avatar upload slots and a health
// probe. Error responses use a single envelope with a closed code set.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kampanlabs/sawari/internal/logging"
	"github.com/kampanlabs/sawari/internal/server/config"
	"github.com/kampanlabs/sawari/internal/server/models"
	"github.com/kampanlabs/sawari/internal/server/services"
)

// IdentityAPI is the identity surface the routes consume.
type IdentityAPI interface {
	CreateAccount(ctx context.Context, email, password string) (*models.Account, *services.TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*models.Account, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Account, *services.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) (*models.Account, error)
	LookupMethods(ctx context.Context, email string) ([]string, error)
	SendVerification(ctx context.Context, email string) error
	ConfirmVerification(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// ProfileAPI is the profile document surface the routes consume.
type ProfileAPI interface {
	Get(ctx context.Context, accountID string) (json.RawMessage, error)
	Set(ctx context.Context, accountID string, doc json.RawMessage) error
	Patch(ctx context.Context, accountID string, fields map[string]any) error
}

// AvatarAPI issues avatar upload slots.
type AvatarAPI interface {
	IssueUploadSlot(ctx context.Context, accountID, contentType string) (*services.AvatarSlot, error)
}

var (
	_ IdentityAPI = (*services.IdentityService)(nil)
	_ ProfileAPI  = (*services.ProfileService)(nil)
	_ AvatarAPI   = (*services.AvatarService)(nil)
)

// Server wires the services to their routes and owns the echo instance.
type Server struct {
	echo      *echo.Echo
	addr      string
	jwtSecret []byte
	logger    logging.Logger

	identity IdentityAPI
	profiles ProfileAPI
	avatars  AvatarAPI
}

func NewServer(cfg *config.Config, logger logging.Logger,
	identity IdentityAPI, profiles ProfileAPI, avatars AvatarAPI) *Server {

	s := &Server{
		echo:      echo.New(),
		addr:      cfg.EndpointAddr,
		jwtSecret: []byte(cfg.SecretKey),
		logger:    logger,
		identity:  identity,
		profiles:  profiles,
		avatars:   avatars,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.logRequests)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/healthz", s.handleHealth)

	e.POST("/v1/accounts", s.handleCreateAccount)
	e.GET("/v1/accounts/lookup", s.handleLookup)
	e.POST("/v1/sessions", s.handleSignIn)
	e.POST("/v1/sessions/refresh", s.handleRefresh)
	e.POST("/v1/verification-emails", s.handleSendVerification)
	e.POST("/v1/verifications/confirm", s.handleConfirmVerification)
	e.POST("/v1/password-resets", s.handleSendPasswordReset)

	authed := e.Group("", s.requireBearer)
	authed.DELETE("/v1/sessions", s.handleSignOut)
	authed.GET("/v1/accounts/me", s.handleGetMe)
	authed.PATCH("/v1/accounts/me", s.handlePatchMe)
	authed.GET("/v1/users/:id", s.handleGetProfile)
	authed.PUT("/v1/users/:id", s.handlePutProfile)
	authed.PATCH("/v1/users/:id", s.handlePatchProfile)
	authed.POST("/v1/users/:id/avatar-uploads", s.handleAvatarUpload)
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		req := c.Request()
		s.logger.Info(req.Context(), "http request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
		)
		return err
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Run blocks serving requests until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
