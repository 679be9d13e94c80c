// Package errs holds the error kinds shared across webintel. Kinds are
// matched with errors.Is.
package errs

import (
	"errors"
	"net/http"

	"github.com/rotisserie/eris"
)

var (
	ErrExtraction        = eris.New("content extraction failed")
	ErrModelResponse     = eris.New("model response unusable")
	ErrSearchUnavailable = eris.New("web search returned nothing")
	ErrNotFound          = eris.New("not found")
	ErrUnauthorized      = eris.New("unauthorized")
	ErrInvalidRequest    = eris.New("invalid request")
)

// Error tags a cause with one of the kinds above.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Wrap tags cause with kind. A nil cause yields an error carrying only msg.
func Wrap(kind, cause error, msg string) error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Extraction(cause error, msg string) error { return Wrap(ErrExtraction, cause, msg) }

func InvalidRequest(msg string) error { return New(ErrInvalidRequest, msg) }

// Message returns the text shown to API clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
