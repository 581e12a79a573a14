// Package errors attaches machine-readable codes to chromatic failures.
//
// A code travels with the error from wherever it is raised to the two front
// ends: the CLI turns it into an exit status and the API into an HTTP status
// via [HTTPStatus]. Plain Go errors coming out of the graph, csf and catalog
// packages are classified by pipeline.ClassifyError.
//
//	if g.Size() > limit {
//	    return errors.New(errors.ErrCodeTooLarge, "%d edges exceed %d", g.Size(), limit)
//	}
//	...
//	if errors.Is(err, errors.ErrCodeTooLarge) {
//	    os.Exit(3)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	// ErrCodeInvalidInput rejects a request before any graph is read:
	// a missing graph, bad flag values or an unparseable request body.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	// ErrCodeInvalidGraph is a well-formed description of something that is
	// not a simple graph, such as a self-loop or a repeated edge.
	ErrCodeInvalidGraph Code = "INVALID_GRAPH"
	// ErrCodeInvalidFormat is input that matches no graph encoding, or an
	// unknown plot format.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFixtureNotFound Code = "FIXTURE_NOT_FOUND"
	ErrCodeRecordNotFound  Code = "RECORD_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// ErrCodeTooLarge means the graph has more vertices or edges than the
	// caller allows. The subset sum doubles with every edge.
	ErrCodeTooLarge Code = "TOO_LARGE"
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeCanceled Code = "CANCELED"

	// ErrCodeNetwork is a cache or catalog backend that cannot be reached.
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is an error with a [Code]. Message is shown to users; Cause, when
// set, is appended to it and reachable through errors.Is and errors.As.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a Sprintf-formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// for uncoded errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for a terminal or a JSON error body: the message
// and cause of a coded error without the code, or err.Error() otherwise.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// HTTPStatus returns the status the API answers with for code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidGraph, ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFixtureNotFound, ErrCodeRecordNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return 499 // nginx's client closed request
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	case ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
