package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/binna/binna-backend/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		environment config.Environment
		wantHSTS    bool
	}{
		{"development has no HSTS", config.EnvDevelopment, false},
		{"production sets HSTS", config.EnvProduction, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Server: config.ServerConfig{Environment: tt.environment}}
			r := gin.New()
			r.Use(SecurityHeadersMiddleware(cfg))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
			if tt.wantHSTS {
				assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
			} else {
				assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
			}
		})
	}
}

func TestSecurityHeadersNoStoreOnAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(&config.Config{}))
	r.GET("/api/auth/session", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/store/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/store/dashboard", nil))
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	t.Run("reuses a valid inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "7f1c1f44-5f5b-4d4e-9a51-3f3a0c3f2b11")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "7f1c1f44-5f5b-4d4e-9a51-3f3a0c3f2b11", w.Body.String())
	})

	t.Run("replaces junk", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
	})
}
