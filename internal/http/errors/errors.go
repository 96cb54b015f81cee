// Package errors defines the HTTP error contract: a stable code/message
// envelope plus the mapping from gateway failures to status codes.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/authgate/internal/gateway"
)

// AppError is the standard error envelope returned to callers.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // original cause, for logs only
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail returns a copy with an added detail, leaving the catalogue
// value untouched.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithCause returns a copy carrying the original error.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// Catalogue.
var (
	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "request body is not valid JSON",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrMissingFields = &AppError{
		Code:       "MISSING_FIELDS",
		Message:    "required fields are missing from the request",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "a bearer token is required for this operation",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrChallengeExpired = &AppError{
		Code:       "CHALLENGE_EXPIRED",
		Message:    "the otp challenge was not found or has expired",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrAssertionParse = &AppError{
		Code:       "ASSERTION_PARSE",
		Message:    "could not parse the assertion response from the identity platform",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "too many requests",
		HTTPStatus: http.StatusTooManyRequests,
	}
	ErrUpstream = &AppError{
		Code:       "UPSTREAM_ERROR",
		Message:    "the identity platform rejected the request or is unavailable",
		HTTPStatus: http.StatusBadGateway,
	}
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
	}
)

// FromGateway maps an orchestrator failure to its HTTP envelope. Anything
// that is not a recognized gateway kind is an upstream failure: the
// orchestrator re-raises backend errors unchanged.
func FromGateway(err error) *AppError {
	switch {
	case stderrors.Is(err, gateway.ErrUnauthorized):
		return ErrUnauthorized.WithCause(err)
	case stderrors.Is(err, gateway.ErrChallengeNotFound):
		return ErrChallengeExpired.WithCause(err)
	case stderrors.Is(err, gateway.ErrChallengeExpired):
		return ErrChallengeExpired.WithCause(err)
	case stderrors.Is(err, gateway.ErrParseResponse):
		return ErrAssertionParse.WithCause(err)
	default:
		return ErrUpstream.WithCause(err)
	}
}

// WriteError writes the envelope with its status code.
func WriteError(w http.ResponseWriter, e *AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.HTTPStatus)
	_ = json.NewEncoder(w).Encode(e)
}
