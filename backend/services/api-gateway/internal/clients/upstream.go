package clients

import (
	"context"

	"everse/backend/libs/httpx"
)

// Service names used in logs, metrics and error messages.
const (
	ServiceAuth     = "auth"
	ServiceStations = "stations"
	ServiceRoutes   = "routes"
	ServiceAssist   = "assist"
	ServiceRevenue  = "revenue"
)

// Upstream is one backend service behind the gateway.
type Upstream struct {
	name string
	base *httpx.Client
}

// NewUpstream returns client for the service at baseURL.
func NewUpstream(name, baseURL string, httpClient httpx.HTTPDoer) *Upstream {
	return &Upstream{name: name, base: httpx.NewClient(baseURL, httpClient, nil)}
}

// Name identifies the service in logs and metrics.
func (u *Upstream) Name() string {
	return u.name
}

// Do forwards one request and returns status and body.
func (u *Upstream) Do(ctx context.Context, method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	return u.base.Do(ctx, method, path, body, headers)
}
