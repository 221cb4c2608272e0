// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui implements the terminal console. Presentation and input
// handling live here; every API call and state change goes through
// core/console. Tasks run as bubbletea commands and their effects are
// applied in Update, so the dialog, the list and the notifications are only
// touched from the program loop.
package tui
