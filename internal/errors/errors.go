package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountLocked is returned while a lockout window is active.
	ErrAccountLocked = errors.New("account is temporarily locked due to too many failed login attempts")
	// ErrEmailTaken is returned when registering or changing to an email that exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrTokenInvalid is returned for expired, malformed or revoked tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrForbidden is returned when the actor lacks the required role or ownership.
	ErrForbidden = errors.New("not authorized for this resource")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a blog post lookup misses.
	ErrPostNotFound = errors.New("post not found")
	// ErrProfileNotFound is returned when a profile lookup misses.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEntryNotFound is returned when a profile sub-entry lookup misses.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrSlugTaken is returned on a blog slug collision.
	ErrSlugTaken = errors.New("a post with this slug already exists")
	// ErrRateLimited is returned when the contact rate limit is exceeded.
	ErrRateLimited = errors.New("too many requests, please try again later")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unrecognized errors
// surface as a generic 500 without internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrAccountLocked):
		return NewHTTPError(http.StatusLocked, err.Error(), "ACCOUNT_LOCKED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrEntryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENTRY_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrSlugTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_TAKEN")
	case errors.Is(err, ErrRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "RATE_LIMITED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
