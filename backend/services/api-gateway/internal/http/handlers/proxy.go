package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/api-gateway/internal/http/middleware"
	"everse/backend/services/api-gateway/internal/metrics"
)

const (
	apiPrefix    = "/api"
	maxBodyBytes = 1 << 20
)

// Identity headers read by the backend services.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// Upstream is the subset of the service client the proxy needs.
type Upstream interface {
	Name() string
	Do(ctx context.Context, method, path string, body []byte, headers map[string]string) (int, []byte, error)
}

// Proxy forwards /api/... requests to one backend service with the /api prefix removed.
type Proxy struct {
	upstream Upstream
	logger   *zap.Logger
}

// NewProxy returns handler for upstream.
func NewProxy(upstream Upstream, logger *zap.Logger) *Proxy {
	return &Proxy{upstream: upstream, logger: logger}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
	}

	status, respBody, err := p.upstream.Do(r.Context(), r.Method, upstreamPath(r), body, forwardHeaders(r))
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues(p.upstream.Name()).Inc()
		p.logger.Error("upstream request failed",
			zap.String("service", p.upstream.Name()),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		httpx.WriteError(w, http.StatusBadGateway, p.upstream.Name()+" service unavailable")
		return
	}
	if status == http.StatusNoContent || len(respBody) == 0 {
		w.WriteHeader(status)
		return
	}
	httpx.WriteRaw(w, status, respBody)
}

func upstreamPath(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.EscapedPath(), apiPrefix)
	if path == "" {
		path = "/"
	}
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}
	return path
}

// forwardHeaders builds the upstream header set. Identity headers only ever come from the
// verified token, never from the client.
func forwardHeaders(r *http.Request) map[string]string {
	headers := map[string]string{}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		headers["Content-Type"] = ct
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		headers[middleware.RequestIDHeader] = id
	}
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		headers[HeaderUserID] = strconv.FormatInt(id.UserID, 10)
		headers[HeaderUserEmail] = id.Email
		headers[HeaderUserRole] = id.Role
	}
	return headers
}

// stripIdentity removes client supplied identity headers.
func stripIdentity(h http.Header) {
	h.Del(HeaderUserID)
	h.Del(HeaderUserEmail)
	h.Del(HeaderUserRole)
}
