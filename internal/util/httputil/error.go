package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// NoStatus marks an absent status code.
const NoStatus = 0

type Error struct {
	code    int
	message string
	headers map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("http error %v: %v", e.code, e.message)
}

func (e *Error) Code() int       { return e.code }
func (e *Error) Message() string { return e.message }
func (e *Error) IsRedirect() bool {
	return 300 <= e.code && e.code <= 399
}

func (e *Error) ApplyHeaders(w http.ResponseWriter) {
	for k, vs := range e.headers {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
}

func MakeError(code int, message string) error {
	return &Error{code: code, message: message}
}

func MakeRedirectError(code int, message string, location string) error {
	if !(300 <= code && code <= 399) {
		return MakeError(code, message)
	}
	return &Error{
		code:    code,
		message: message,
		headers: map[string][]string{
			"Location": {location},
		},
	}
}

// StatusOf returns the status carried by err, or NoStatus if err is not an *Error.
func StatusOf(err error) int {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.code
	}
	return NoStatus
}

// WriteErrorResponse is the plain-text fallback used when a view cannot be rendered.
func WriteErrorResponse(err error, w http.ResponseWriter) error {
	var (
		httpErr *Error
		code    int
		message string
	)
	if errors.As(err, &httpErr) {
		code = httpErr.code
		message = httpErr.message
	} else {
		code = http.StatusInternalServerError
		message = fmt.Sprintf("internal server error: %v", err)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if httpErr != nil {
		httpErr.ApplyHeaders(w)
	}
	w.WriteHeader(code)
	if _, err := io.WriteString(w, message); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
