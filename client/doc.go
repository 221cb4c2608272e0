// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client talks to the remote payment methods REST API.
package client
