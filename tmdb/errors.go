package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingCredential is returned before any request is sent when no bearer token is configured.
	ErrMissingCredential = errors.New("catalog token is not set, run \"marquee token set\" or set tmdb.token")

	// ErrUnsupportedMethod is returned for methods other than GET and POST.
	ErrUnsupportedMethod = errors.New("unsupported request method")
)

// Error is a failed catalog request.
// Status is zero when no response was received.
type Error struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.Status, http.StatusText(e.Status))
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports whether the upstream answered 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
