package router

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// NewFrontendProxy returns a reverse proxy that serves page requests from the
// frontend application at target.
func NewFrontendProxy(target string) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse frontend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("frontend url %q must be absolute", target)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
			pr.Out.Host = u.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Named("frontend_proxy").Warnw("Frontend unreachable",
				"path", r.URL.Path, "target", u.Host, "error", err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = fmt.Fprintf(w, `{"type":%q,"message":%q}`, "UPSTREAM_ERROR", "Frontend unavailable")
		},
	}
	return proxy, nil
}

// frontendNotFound is used when no frontend is configured.
func frontendNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Type: "NOT_FOUND", Message: "Route not found"})
}
