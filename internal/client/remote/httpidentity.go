package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kampanlabs/sawari/internal/common"
)

const requestTimeout = 12 * time.Second

// errorEnvelope is the backend's error body: {"error":{"code","message"}}.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// sessionResponse is returned by sign-in, account creation and refresh.
type sessionResponse struct {
	Identity     *Identity `json:"identity"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

// HTTPIdentityService talks JSON over HTTP to the account backend. It owns
// the access/refresh token pair, transparently refreshing the access token
// when the backend reports it expired, and fans identity changes out to
// subscribers.
type HTTPIdentityService struct {
	baseURL string
	client  *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	current      *Identity
	subscribers  map[int]func(*Identity)
	nextSubID    int
}

func NewHTTPIdentityService(baseURL string) *HTTPIdentityService {
	return &HTTPIdentityService{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: requestTimeout},
		subscribers: make(map[int]func(*Identity)),
	}
}

// doJSON performs one request. in (when non-nil) is marshalled as the JSON
// body; out (when non-nil) receives the decoded response. Transport failures
// become CodeNetworkFailed; HTTP error bodies are classified through the
// closed code set.
func (s *HTTPIdentityService) doJSON(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		s.mu.Lock()
		token := s.accessToken
		s.mu.Unlock()
		req.Header.Set(common.AccessTokenHeaderName, "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &AuthError{Code: CodeNetworkFailed, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env errorEnvelope
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, &env); err != nil || env.Error.Code == "" {
			return &AuthError{Code: CodeUnknown, Message: fmt.Sprintf("status %d: %s", resp.StatusCode, data)}
		}
		return &AuthError{Code: classify(env.Error.Code), Message: env.Error.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// doAuthed runs an authenticated request, refreshing the token pair and
// retrying once when the backend reports an expired access token.
func (s *HTTPIdentityService) doAuthed(ctx context.Context, method, path string, in, out any) error {
	err := s.doJSON(ctx, method, path, in, out, true)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()
	if refresh == "" {
		return err
	}

	var sr sessionResponse
	if rerr := s.doJSON(ctx, http.MethodPost, "/v1/sessions/refresh",
		map[string]string{"refreshToken": refresh}, &sr, false); rerr != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = sr.AccessToken
	s.refreshToken = sr.RefreshToken
	s.mu.Unlock()

	return s.doJSON(ctx, method, path, in, out, true)
}

func isTokenExpired(err error) bool {
	ae, ok := err.(*AuthError)
	return ok && ae.Message == "token expired"
}

// setSession stores the token pair and identity, then notifies subscribers.
func (s *HTTPIdentityService) setSession(sr *sessionResponse) {
	s.mu.Lock()
	s.accessToken = sr.AccessToken
	s.refreshToken = sr.RefreshToken
	s.current = sr.Identity
	s.mu.Unlock()
	s.notify(sr.Identity)
}

func (s *HTTPIdentityService) notify(id *Identity) {
	s.mu.Lock()
	subs := make([]func(*Identity), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(id)
	}
}

func (s *HTTPIdentityService) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	var sr sessionResponse
	err := s.doJSON(ctx, http.MethodPost, "/v1/sessions",
		map[string]string{"email": email, "password": password}, &sr, false)
	if err != nil {
		return nil, err
	}
	s.setSession(&sr)
	return sr.Identity, nil
}

func (s *HTTPIdentityService) CreateAccount(ctx context.Context, email, password string) (*Identity, error) {
	var sr sessionResponse
	err := s.doJSON(ctx, http.MethodPost, "/v1/accounts",
		map[string]string{"email": email, "password": password}, &sr, false)
	if err != nil {
		return nil, err
	}
	s.setSession(&sr)
	return sr.Identity, nil
}

func (s *HTTPIdentityService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()

	var err error
	if refresh != "" {
		err = s.doJSON(ctx, http.MethodDelete, "/v1/sessions",
			map[string]string{"refreshToken": refresh}, nil, true)
	}

	// The local session ends regardless of the backend's answer.
	s.mu.Lock()
	s.accessToken = ""
	s.refreshToken = ""
	s.current = nil
	s.mu.Unlock()
	s.notify(nil)

	return err
}

func (s *HTTPIdentityService) SendVerificationEmail(ctx context.Context, email string) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/verification-emails",
		map[string]string{"email": email}, nil, false)
}

func (s *HTTPIdentityService) SendPasswordReset(ctx context.Context, email string) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/password-resets",
		map[string]string{"email": email}, nil, false)
}

func (s *HTTPIdentityService) LookupSignInMethods(ctx context.Context, email string) ([]string, error) {
	var resp struct {
		Methods []string `json:"methods"`
	}
	err := s.doJSON(ctx, http.MethodGet, "/v1/accounts/lookup?email="+url.QueryEscape(email), nil, &resp, false)
	if err != nil {
		return nil, err
	}
	return resp.Methods, nil
}

func (s *HTTPIdentityService) UpdateDisplayName(ctx context.Context, name string) error {
	var id Identity
	err := s.doAuthed(ctx, http.MethodPatch, "/v1/accounts/me",
		map[string]string{"displayName": name}, &id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
	return nil
}

func (s *HTTPIdentityService) Reload(ctx context.Context) (*Identity, error) {
	var id Identity
	err := s.doAuthed(ctx, http.MethodGet, "/v1/accounts/me", nil, &id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
	s.notify(&id)
	return &id, nil
}

func (s *HTTPIdentityService) Subscribe(fn func(*Identity)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *HTTPIdentityService) CurrentIdentity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
