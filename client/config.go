// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import "time"

// Config holds the options needed to reach the payment methods API.
type Config struct {
	// BaseURL is the API root; resource paths such as /payments are appended.
	BaseURL string
	Timeout time.Duration
	// UserAgent is sent with every request when set.
	UserAgent string
}

func NewDefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8080/api",
		Timeout: 10 * time.Second,
	}
}
