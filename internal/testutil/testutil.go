// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil provides an in-memory payment methods API for tests.
package testutil

import (
	"bytes"
	"net/http/httptest"
	"testing"
)

// BytesFromString returns a buffer containing the provided string.
func BytesFromString(s string) *bytes.Buffer { return bytes.NewBufferString(s) }

// NewServer starts an httptest server backed by a fresh FakeAPI. The API is
// mounted under /api, so BaseURL is the value to put in client.Config.
func NewServer(t *testing.T, seed ...Record) (*FakeAPI, string) {
	t.Helper()
	api := NewFakeAPI(seed...)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, srv.URL + "/api"
}
