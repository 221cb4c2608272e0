// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/paymaster/core/console"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/notify"
	"github.com/toeirei/paymaster/internal/config"
	"github.com/toeirei/paymaster/internal/logging"
	"github.com/toeirei/paymaster/ui"
)

// Run starts the console on the terminal and blocks until the operator
// quits. Log output goes to cfg.Log.File, or nowhere, while the screen is
// taken.
func Run(ctx context.Context, cfg config.Config) error {
	renderer := &programRenderer{}
	app, err := ui.NewApp(ctx, cfg, notify.WithRenderer(renderer))
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	restore, err := redirectLogs(cfg.Log.File)
	if err != nil {
		return err
	}
	defer restore()

	m, err := NewModel(ctx, app.Notes, func(form modal.Form, opts ...console.Option) (*console.Console, error) {
		return app.NewConsole(ctx, form, opts...)
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	renderer.attach(p.Send)
	defer renderer.attach(nil)

	_, err = p.Run()
	m.console.Dispose()
	return err
}

func redirectLogs(path string) (func(), error) {
	if path == "" {
		logging.SetOutput(io.Discard)
		return func() { logging.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logging.SetOutput(f)
	return func() {
		logging.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
