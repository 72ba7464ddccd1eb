package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/binna/binna-backend/logger"
)

type ErrorType string

const (
	ValidationError              ErrorType = "VALIDATION_ERROR"
	NotFoundError                ErrorType = "NOT_FOUND"
	AuthError                    ErrorType = "AUTHENTICATION_ERROR"
	DatabaseError                ErrorType = "DATABASE_ERROR"
	ServerError                  ErrorType = "SERVER_ERROR"
	ForbiddenError               ErrorType = "FORBIDDEN"
	ConflictError                ErrorType = "CONFLICT"
	InvalidStatusTransitionError ErrorType = "INVALID_STATUS_TRANSITION"
	InsufficientStockError       ErrorType = "INSUFFICIENT_STOCK"
	RateLimitError               ErrorType = "RATE_LIMIT_EXCEEDED"
	UpstreamError                ErrorType = "UPSTREAM_ERROR"
	UnavailableError             ErrorType = "SERVICE_UNAVAILABLE"
)

var statusByType = map[ErrorType]int{
	ValidationError:              http.StatusBadRequest,
	InvalidStatusTransitionError: http.StatusBadRequest,
	NotFoundError:                http.StatusNotFound,
	AuthError:                    http.StatusUnauthorized,
	ForbiddenError:               http.StatusForbidden,
	ConflictError:                http.StatusConflict,
	InsufficientStockError:       http.StatusConflict,
	RateLimitError:               http.StatusTooManyRequests,
	UpstreamError:                http.StatusBadGateway,
	UnavailableError:             http.StatusServiceUnavailable,
}

// StatusFor maps an error type to its HTTP status; unknown types are 500.
func StatusFor(t ErrorType) int {
	if s, ok := statusByType[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError is the error every layer returns to handlers. The error
// middleware renders it; Raw is never shown to clients.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
}

func (e *AppError) Unwrap() error { return e.Raw }

// WithCode attaches a machine readable code, e.g. "token_expired".
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func New(errType ErrorType, message, detail string) *AppError {
	return &AppError{Type: errType, Message: message, Detail: detail, HTTPStatus: StatusFor(errType)}
}

// Wrap keeps err as Raw and uses its text as the detail.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	e := New(errType, message, err.Error())
	e.Raw = err
	return e
}

func NotFound(entity string, id any) *AppError {
	return New(NotFoundError, entity+" not found", fmt.Sprintf("ID: %v", id))
}

func ValidationFailed(message, details string) *AppError {
	return New(ValidationError, message, details)
}

func AuthenticationFailed(message string) *AppError {
	return New(AuthError, message, "")
}

func Unauthorized(code, message string) *AppError {
	return New(AuthError, message, "").WithCode(code)
}

func Forbidden(message, details string) *AppError {
	return New(ForbiddenError, message, details)
}

func NewConflictError(message, detail string) *AppError {
	return New(ConflictError, message, detail)
}

// NewDatabaseError logs err and hides it behind a generic message.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	e := New(DatabaseError, "Database operation failed", "Please try again later")
	e.Raw = err
	return e
}

func InternalServerError(message string) *AppError {
	return New(ServerError, message, "")
}

func InvalidStatusTransition(current, next string) *AppError {
	return New(InvalidStatusTransitionError, "Invalid status transition",
		fmt.Sprintf("Cannot transition from %s to %s", current, next))
}

// InsufficientStock reports that a product cannot cover the requested quantity.
func InsufficientStock(productName string, requested, available int) *AppError {
	return New(InsufficientStockError, "Insufficient stock",
		fmt.Sprintf("%s: requested %d, available %d", productName, requested, available))
}

func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return New(RateLimitError, message, fmt.Sprintf("retry after %d seconds", retryAfterSeconds))
}

// UpstreamFailure is a failed call to a third-party API (502).
func UpstreamFailure(service string, err error) *AppError {
	e := New(UpstreamError, service+" request failed", err.Error())
	e.Raw = err
	return e
}

// ServiceUnavailable is an optional integration that is switched off (503).
func ServiceUnavailable(service string) *AppError {
	return New(UnavailableError, service+" is not configured", "")
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == errType
}
