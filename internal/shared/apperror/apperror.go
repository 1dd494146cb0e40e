package apperror

import (
	"errors"
	"net/http"
)

// Kind identifies a failure class that callers can branch on.
type Kind string

const (
	KindExtraction      Kind = "extraction_error"
	KindValidation      Kind = "validation_error"
	KindUpstreamTimeout Kind = "upstream_timeout"
	KindUpstream        Kind = "upstream_error"
	KindParse           Kind = "parse_error"
	KindCache           Kind = "cache_error"
	KindInternal        Kind = "internal_error"
)

// Error is the single error type crossing subsystem boundaries.
// Message is safe to surface to clients; Detail carries extra context
// (for parse failures, a truncated raw-response excerpt).
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error with the given kind and message.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Extraction(message string, err error) *Error {
	return New(KindExtraction, message, err)
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func UpstreamTimeout(message string, err error) *Error {
	return New(KindUpstreamTimeout, message, err)
}

func Upstream(message string, err error) *Error {
	return New(KindUpstream, message, err)
}

func Parse(message, detail string, err error) *Error {
	return &Error{Kind: KindParse, Message: message, Detail: detail, Err: err}
}

func Internal(err error) *Error {
	return New(KindInternal, "unexpected internal error", err)
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to the response status used by the HTTP layer.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindExtraction:
		return http.StatusUnprocessableEntity
	case KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	case KindUpstream:
		return http.StatusBadGateway
	case KindParse, KindCache, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
