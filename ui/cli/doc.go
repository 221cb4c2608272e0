// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Paymaster using Cobra.
// It loads the configuration, builds the shared services from package ui and
// runs the same console gestures as the TUI, one per command. Notifications
// are printed instead of shown; an error notification fails the command.
package cli
