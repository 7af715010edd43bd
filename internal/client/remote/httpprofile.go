package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kampanlabs/sawari/internal/common"
)

// HTTPProfileStore reads and writes profile documents through the account
// backend. It shares the identity adapter's session so requests carry the
// same bearer token and benefit from the same refresh-and-retry handling.
type HTTPProfileStore struct {
	session *HTTPIdentityService
}

func NewHTTPProfileStore(session *HTTPIdentityService) *HTTPProfileStore {
	return &HTTPProfileStore{session: session}
}

func (s *HTTPProfileStore) Get(ctx context.Context, ownerID string) (*ProfileRecord, error) {
	var rec ProfileRecord
	err := s.session.doAuthed(ctx, http.MethodGet, "/v1/users/"+ownerID, nil, &rec)
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *HTTPProfileStore) Set(ctx context.Context, ownerID string, rec *ProfileRecord) error {
	return s.session.doAuthed(ctx, http.MethodPut, "/v1/users/"+ownerID, rec, nil)
}

func (s *HTTPProfileStore) Update(ctx context.Context, ownerID string, fields map[string]any) error {
	err := s.session.doAuthed(ctx, http.MethodPatch, "/v1/users/"+ownerID, fields, nil)
	if err != nil && isNotFound(err) {
		return fmt.Errorf("profile %s: %w", ownerID, common.ErrorNotFound)
	}
	return err
}

func (s *HTTPProfileStore) RequestAvatarUpload(ctx context.Context, ownerID string, contentType string) (*AvatarUpload, error) {
	var slot AvatarUpload
	err := s.session.doAuthed(ctx, http.MethodPost, "/v1/users/"+ownerID+"/avatar-uploads",
		map[string]string{"contentType": contentType}, &slot)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func isNotFound(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Code == CodeUserNotFound
}
