// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Paymaster.
//
// Usage:
//
//	go run . [flags]
//	./paymaster [command] [flags]
//
// Without a command Paymaster starts the terminal console. See --help for
// the scriptable commands.
package main

import (
	"os"

	"github.com/toeirei/paymaster/internal/logging"
	"github.com/toeirei/paymaster/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("paymaster: %v", err)
		os.Exit(1)
	}
}
