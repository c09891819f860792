// Package api is the HTTP client for the storefront backend.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-success response from the backend.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: backend returned %d", e.Status)
}

// StatusOf returns the backend status code carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Responses that came back successful but without the field the protocol
// depends on. Each is a distinct failure for the checkout flow.
var (
	ErrMissingOrderID     = errors.New("api: order created without identifier")
	ErrMissingCheckoutURL = errors.New("api: payment response missing url")
)

type errorPayload struct {
	Detail string `json:"detail"`
}

// responseError builds an Error from a failed response body. DRF error
// payloads carry a "detail" field; anything else yields just the status.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var p errorPayload
	if err := json.Unmarshal(body, &p); err == nil && p.Detail != "" {
		return &Error{Status: resp.StatusCode, Detail: p.Detail}
	}
	return &Error{Status: resp.StatusCode}
}
