// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui contains the top-level wiring shared by the user interfaces.
//
// NewApp builds the services both interfaces need (API client,
// notifications, action journal) from the loaded configuration. Each
// interface then calls NewConsole with its own dialog surface: the TUI
// passes its form widget, the CLI a headless form filled from flags.
package ui
