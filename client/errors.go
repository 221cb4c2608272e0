// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"errors"
	"fmt"
)

// ErrInvalidBaseURL is returned by New for an unusable base URL.
var ErrInvalidBaseURL = errors.New("invalid api base url")

// APIError is an error reported by the API, either through an `error` field
// in the body or through a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Message returns the text to show the operator for err. API errors yield the
// server's message, any other error its own text.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
