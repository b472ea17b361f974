package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel error kinds for backend rejections. Callers branch with errors.Is.
var (
	ErrUnauthorized = errors.New("credential missing or rejected")
	ErrForbidden    = errors.New("operation not allowed for this role")
	ErrNotFound     = errors.New("resource not found")
)

// Error carries the backend's HTTP status and detail message for a failed
// call. The detail is what the views surface to the user.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Unwrap maps the status onto the sentinel kinds so errors.Is works on the
// wrapped value.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// IsValidation reports whether err is a field-level rejection that should be
// shown inline on the submitting form rather than as a generic alert.
func IsValidation(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity
}

// Detail extracts the backend's message from err, falling back to a generic
// one for transport failures.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "request could not be completed"
}
