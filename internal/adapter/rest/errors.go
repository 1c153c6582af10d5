package rest

import (
	"fmt"
	"net/http"
	"strings"

	"healthpoints/internal/domain"
)

// StatusError is a non-2xx response. Statuses with a domain meaning unwrap to
// the matching domain sentinel.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func newStatusError(method, path string, code int, body []byte) *StatusError {
	return &StatusError{Method: method, Path: path, Code: code, Body: strings.TrimSpace(string(body))}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Code, http.StatusText(e.Code), e.Body)
}

// Unwrap maps the status onto a domain error.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	}
	return nil
}
