package middleware

import (
	"strings"

	"github.com/binna/binna-backend/config"
	"github.com/gin-gonic/gin"
)

var securityHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "camera=(), microphone=(), geolocation=()",
}

// SecurityHeadersMiddleware sets the security headers on every response.
// API responses are never cached since auth routes return tokens. HSTS is
// production only so local http keeps working.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	hsts := cfg.IsProduction()
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			h.Set("Cache-Control", "no-store")
		}
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
