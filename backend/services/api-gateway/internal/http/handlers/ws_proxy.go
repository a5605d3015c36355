package handlers

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/api-gateway/internal/http/middleware"
	"everse/backend/services/api-gateway/internal/metrics"
)

// NewWebSocketProxy tunnels websocket upgrades to the named service.
func NewWebSocketProxy(name, baseURL string, logger *zap.Logger) (http.Handler, error) {
	target, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || target.Host == "" {
		return nil, fmt.Errorf("gateway: invalid %s url %q", name, baseURL)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = target.Path + strings.TrimPrefix(pr.In.URL.Path, apiPrefix)
			pr.Out.URL.RawPath = ""
			query := pr.In.URL.Query()
			query.Del(middleware.AccessTokenParam)
			pr.Out.URL.RawQuery = query.Encode()
			stripIdentity(pr.Out.Header)
			if id, ok := middleware.IdentityFromContext(pr.In.Context()); ok {
				pr.Out.Header.Set(HeaderUserID, strconv.FormatInt(id.UserID, 10))
				pr.Out.Header.Set(HeaderUserEmail, id.Email)
				pr.Out.Header.Set(HeaderUserRole, id.Role)
			}
			if rid := middleware.RequestIDFromContext(pr.In.Context()); rid != "" {
				pr.Out.Header.Set(middleware.RequestIDHeader, rid)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			metrics.UpstreamErrors.WithLabelValues(name).Inc()
			logger.Error("websocket proxy failed", zap.String("service", name), zap.Error(err))
			httpx.WriteError(w, http.StatusBadGateway, name+" service unavailable")
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the tunnel outlives the server's per request deadlines
		rc := http.NewResponseController(w)
		_ = rc.SetReadDeadline(time.Time{})
		_ = rc.SetWriteDeadline(time.Time{})
		proxy.ServeHTTP(w, r)
	}), nil
}
