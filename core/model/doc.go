// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the data types shared by the console engine: payment
// method variants, field specs, server records and form payloads.
package model
