package logger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogError writes an error entry enriched with request context when ctx is a
// *gin.Context. Stack traces are attached outside production.
func LogError(ctx context.Context, err error, message string, metadata map[string]interface{}) {
	fields := []zap.Field{zap.Error(err)}
	if err != nil {
		fields = append(fields, zap.String("error_type", fmt.Sprintf("%T", err)))
	}

	if c, ok := ctx.(*gin.Context); ok && c.Request != nil {
		fields = append(fields,
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("client_ip", c.ClientIP()),
		)
		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		fields = append(fields, zap.String("stack_trace", stackTrace(3)))
	}

	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}

	GetLogger().Desugar().Error(message, fields...)
}

// LogHTTPError logs a failed request along with its status and redacted headers.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	LogError(c, err, message, map[string]interface{}{
		"status_code": statusCode,
		"headers":     filterSensitiveHeaders(c.Request.Header),
	})
}

func stackTrace(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			b.WriteString(frame.Function)
			b.WriteString("\n\t")
			b.WriteString(frame.File)
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(frame.Line))
			b.WriteByte('\n')
		}
		if !more {
			break
		}
	}
	return b.String()
}

func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		lower := strings.ToLower(name)
		if lower == "authorization" || lower == "cookie" || lower == "set-cookie" ||
			strings.Contains(lower, "token") || strings.Contains(lower, "key") || strings.Contains(lower, "secret") {
			filtered[name] = "[REDACTED]"
			continue
		}
		if len(values) > 0 {
			filtered[name] = values[0]
		}
	}
	return filtered
}
