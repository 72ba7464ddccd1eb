package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPageSessions struct {
	session *auth.Session
	calls   int
}

func (s *stubPageSessions) Resolve(http.ResponseWriter, *http.Request) *auth.Session {
	s.calls++
	return s.session
}

func gatedRouter(sessions PageSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PageGate(sessions))
	r.NoRoute(func(c *gin.Context) { c.String(http.StatusOK, "page") })
	return r
}

func TestPageGate(t *testing.T) {
	storeOwner := &auth.Session{UserID: "u-1", AccountType: types.AccountTypeStore}

	tests := []struct {
		name         string
		session      *auth.Session
		method       string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"anonymous on user area", nil, http.MethodGet, "/user/orders", http.StatusTemporaryRedirect, "/login?redirect=%2Fuser%2Forders"},
		{"anonymous on public page", nil, http.MethodGet, "/products", http.StatusOK, ""},
		{"store on login", storeOwner, http.MethodGet, "/login", http.StatusTemporaryRedirect, "/store/dashboard"},
		{"store on user area", storeOwner, http.MethodGet, "/user/dashboard", http.StatusTemporaryRedirect, "/store/dashboard"},
		{"store on own area", storeOwner, http.MethodGet, "/store/products", http.StatusOK, ""},
		{"api untouched", nil, http.MethodGet, "/api/user/dashboard", http.StatusOK, ""},
		{"health untouched", nil, http.MethodGet, "/health/readiness", http.StatusOK, ""},
		{"static asset untouched", nil, http.MethodGet, "/user/avatar.png", http.StatusOK, ""},
		{"form post untouched", nil, http.MethodPost, "/user/settings", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &stubPageSessions{session: tt.session}
			w := httptest.NewRecorder()
			gatedRouter(sessions).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestPageGateSkipsResolutionForAPI(t *testing.T) {
	sessions := &stubPageSessions{}
	w := httptest.NewRecorder()
	gatedRouter(sessions).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Zero(t, sessions.calls)
}

func TestPageGateMatchesWholeSegments(t *testing.T) {
	sessions := &stubPageSessions{}
	w := httptest.NewRecorder()
	gatedRouter(sessions).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthy-homes", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sessions.calls)

	sessions.calls = 0
	gatedRouter(sessions).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Zero(t, sessions.calls)
}
