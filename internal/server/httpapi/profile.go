package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

type avatarUploadRequest struct {
	ContentType string `json:"contentType"`
}

type avatarUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PhotoURL  string `json:"photoUrl"`
}

// ownedProfile enforces that accounts only touch their own profile document.
// Foreign ids read as missing so the route does not confirm they exist.
func ownedProfile(c echo.Context) (string, bool) {
	id := c.Param("id")
	return id, id == requesterID(c)
}

func (s *Server) handleGetProfile(c echo.Context) error {
	id, owned := ownedProfile(c)
	if !owned {
		return respondError(c, http.StatusNotFound, "user-not-found",
			"There is no user record corresponding to this identifier.")
	}

	doc, err := s.profiles.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSONBlob(http.StatusOK, doc)
}

func (s *Server) handlePutProfile(c echo.Context) error {
	id, owned := ownedProfile(c)
	if !owned {
		return respondError(c, http.StatusNotFound, "user-not-found",
			"There is no user record corresponding to this identifier.")
	}

	doc, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(doc) {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "malformed profile document")
	}

	if err := s.profiles.Set(c.Request().Context(), id, doc); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlePatchProfile(c echo.Context) error {
	id, owned := ownedProfile(c)
	if !owned {
		return respondError(c, http.StatusNotFound, "user-not-found",
			"There is no user record corresponding to this identifier.")
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil || len(fields) == 0 {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "malformed patch body")
	}

	if err := s.profiles.Patch(c.Request().Context(), id, fields); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAvatarUpload(c echo.Context) error {
	id, owned := ownedProfile(c)
	if !owned {
		return respondError(c, http.StatusNotFound, "user-not-found",
			"There is no user record corresponding to this identifier.")
	}

	var req avatarUploadRequest
	if err := c.Bind(&req); err != nil || req.ContentType == "" {
		return respondError(c, http.StatusBadRequest, "invalid-credentials", "missing content type")
	}

	slot, err := s.avatars.IssueUploadSlot(c.Request().Context(), id, req.ContentType)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, avatarUploadResponse{
		Key:       slot.Key,
		UploadURL: slot.UploadURL,
		PhotoURL:  slot.PhotoURL,
	})
}
