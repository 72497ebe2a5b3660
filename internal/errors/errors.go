package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The message is identical for unknown emails and wrong passwords so the
	// login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when the signup email is taken.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrUserNotFound is returned when a user id resolves to no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrLanguageNotFound is returned when a language lookup misses.
	ErrLanguageNotFound = errors.New("language not found")
	// ErrInvalidLanguage is returned when a generation references an unknown language.
	ErrInvalidLanguage = errors.New("language is not supported")
	// ErrProviderUnavailable is returned when the configured model is not available upstream.
	ErrProviderUnavailable = errors.New("generation model is not available")
	// ErrProviderAuthFailed is returned when the provider rejects our API key.
	ErrProviderAuthFailed = errors.New("authentication with the generation provider failed")
)

// RateLimitError is returned when the provider reports too many requests.
// RetryAfter carries the provider's suggested delay, when it supplied one,
// for relaying to the end user; nothing is retried automatically.
type RateLimitError struct {
	RetryAfter string
}

func (e *RateLimitError) Error() string {
	after := e.RetryAfter
	if after == "" {
		after = "a few moments"
	}
	return fmt.Sprintf("rate limit exceeded, please try again after %s", after)
}

// GenerationError wraps any provider or network failure that does not fall
// into a more specific class, preserving the upstream message for diagnostics.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate code: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   http.StatusText(e.StatusCode),
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Handlers call this once
// at the boundary; components below it only produce the error kinds above.
func MapErrorToHTTP(err error) *HTTPError {
	var rateLimit *RateLimitError
	var generation *GenerationError

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrLanguageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LANGUAGE_NOT_FOUND")
	case errors.Is(err, ErrInvalidLanguage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LANGUAGE")
	case errors.As(err, &rateLimit):
		return NewHTTPError(http.StatusTooManyRequests, rateLimit.Error(), "RATE_LIMITED")
	case errors.Is(err, ErrProviderUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "PROVIDER_UNAVAILABLE")
	case errors.Is(err, ErrProviderAuthFailed):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "PROVIDER_AUTH_FAILED")
	case errors.As(err, &generation):
		return NewHTTPError(http.StatusBadGateway, generation.Error(), "GENERATION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
