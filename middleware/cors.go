package middleware

import (
	"strings"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured frontend origins with credentials,
// since the session travels in cookies. "*.example.com" entries match any
// subdomain.
func CORSMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Accept",
		},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 && cfg.FrontendURL != "" {
		origins = []string{strings.TrimRight(cfg.FrontendURL, "/")}
	}

	corsConfig.AllowOriginFunc = func(origin string) bool {
		return originAllowed(origins, origin)
	}
	return cors.New(corsConfig)
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == origin {
			return true
		}
		if strings.HasPrefix(a, "*.") {
			scheme, host, ok := strings.Cut(origin, "://")
			if ok && scheme != "" && strings.HasSuffix(host, a[1:]) {
				return true
			}
		}
	}
	return false
}
