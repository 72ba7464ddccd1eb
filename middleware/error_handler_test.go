package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
		noDetails  bool
	}{
		{
			name:       "not found exposes details",
			err:        apperrors.NotFound("Order", "o-1"),
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"type": "NOT_FOUND", "message": "Order not found", "code": "404", "details": "ID: o-1"},
		},
		{
			name:       "insufficient stock",
			err:        apperrors.InsufficientStock("Cement", 5, 2),
			wantStatus: http.StatusConflict,
			wantBody:   map[string]any{"type": "INSUFFICIENT_STOCK", "details": "Cement: requested 5, available 2"},
		},
		{
			name:       "database error hides details",
			err:        apperrors.NewDatabaseError(errors.New("connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"type": "DATABASE_ERROR", "message": "Database operation failed"},
			noDetails:  true,
		},
		{
			name:       "expired token advertises refresh",
			err:        apperrors.Unauthorized(CodeTokenExpired, "Your session has expired"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"code": "token_expired", "refresh_endpoint": "/api/auth/refresh", "refresh_required": true},
		},
		{
			name:       "wrapped app error",
			err:        errors.Join(errors.New("context"), apperrors.Forbidden("nope", "")),
			wantStatus: http.StatusForbidden,
			wantBody:   map[string]any{"type": "FORBIDDEN"},
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"type": "SERVER_ERROR", "message": "Internal Server Error", "code": "500"},
			noDetails:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/x", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			for k, v := range tt.wantBody {
				assert.Equal(t, v, body[k], k)
			}
			if tt.noDetails {
				assert.NotContains(t, body, "details")
			}
		})
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(errors.New("logged only"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
