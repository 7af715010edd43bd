package remote

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 2 * time.Second

// HTTPProbe answers the "are we online" question with a cheap liveness call.
type HTTPProbe struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProbe(baseURL string) *HTTPProbe {
	return &HTTPProbe{
		baseURL: baseURL,
		client:  &http.Client{Timeout: probeTimeout},
	}
}

func (p *HTTPProbe) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
