package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/binna/binna-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

// PageSessions resolves the session of a page navigation. It never fails;
// an unusable credential yields nil.
type PageSessions interface {
	Resolve(w http.ResponseWriter, r *http.Request) *auth.Session
}

var gateSkipPrefixes = []string{"/api", "/health", "/metrics", "/swagger", "/_next", "/favicon"}

// PageGate redirects page navigations according to auth.Decide. API calls,
// infrastructure endpoints and static assets pass through untouched.
func PageGate(sessions PageSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if !isPageNavigation(c.Request.Method, p) {
			c.Next()
			return
		}

		session := sessions.Resolve(c.Writer, c.Request)
		if session != nil {
			setSession(c, session)
		}

		decision := auth.Decide(p, session)
		if decision.Action == auth.ActionRedirect {
			c.Redirect(http.StatusTemporaryRedirect, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}

func isPageNavigation(method, p string) bool {
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	for _, prefix := range gateSkipPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return false
		}
	}
	return path.Ext(p) == ""
}
