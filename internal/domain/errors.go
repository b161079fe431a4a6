package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies failures so handlers can pick a status code
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindAuth         ErrorKind = "auth"
	KindTimeout      ErrorKind = "timeout"
	KindUnclassified ErrorKind = "unclassified"
)

// HTTPStatus returns the status code reported for the kind
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is a client-safe failure carrying its kind and, for provider failures,
// the platform it came from.
type Error struct {
	Kind     ErrorKind
	Platform Platform
	Message  string
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given kind
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewValidationError(message string) *Error {
	return NewError(KindValidation, message)
}

func NewNotFoundError(message string) *Error {
	return NewError(KindNotFound, message)
}

func NewAuthError(message string) *Error {
	return NewError(KindAuth, message)
}

func NewUnclassifiedError(message string) *Error {
	return NewError(KindUnclassified, message)
}

// Common request validation failures
var (
	ErrMissingURL     = NewValidationError("URL parameter is required.")
	ErrInvalidURL     = NewValidationError("Invalid URL format.")
	ErrInvalidAPIKey  = NewAuthError("Invalid API key.")
	ErrNoDownloadURL  = NewNotFoundError("Download link not found for the selected format.")
	ErrJournalOffline = NewNotFoundError("Lookup journal is not enabled.")
)

// UnsupportedPlatformError reports a URL whose host matches no platform
func UnsupportedPlatformError() *Error {
	return NewValidationError(fmt.Sprintf("Unsupported platform. Supported platforms: %s", SupportedPlatformNames()))
}

// KindOf returns the kind of err, or KindUnclassified for foreign errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// StatusFor maps an error to its HTTP status code
func StatusFor(err error) int {
	return KindOf(err).HTTPStatus()
}

// ClassifyMessage assigns a kind from the wording of an upstream message
func ClassifyMessage(message string) ErrorKind {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "not found") || strings.Contains(lower, "unavailable"):
		return KindNotFound
	case strings.Contains(message, "Invalid") || strings.Contains(message, "Unsupported"):
		return KindValidation
	case strings.Contains(lower, "timeout"):
		return KindTimeout
	default:
		return KindUnclassified
	}
}

// PublicMessage returns the text that may be shown to a client. Only
// messages of domain errors are exposed.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
