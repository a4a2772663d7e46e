package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// ResponseError is a non-2xx reply from the backend.
type ResponseError struct {
	Method string
	Path   string
	Status int
	Data   json.RawMessage
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if d := e.Detail(); d != "" {
		msg += ": " + d
	}
	return msg
}

// Is makes a 401 reply match ErrUnauthorized.
func (e *ResponseError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Detail returns the backend's human-readable error message ("detail" or
// "message" field), or "" when the body has neither.
func (e *ResponseError) Detail() string {
	var body struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Data, &body); err != nil {
		return ""
	}
	if s, ok := body.Detail.(string); ok && s != "" {
		return s
	}
	return body.Message
}
