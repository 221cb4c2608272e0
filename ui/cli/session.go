// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/toeirei/paymaster/core/console"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/notify"
	"github.com/toeirei/paymaster/core/schema"
	"github.com/toeirei/paymaster/core/task"
	"github.com/toeirei/paymaster/internal/i18n"
	"github.com/toeirei/paymaster/ui"
)

// session is the console of a single command.
type session struct {
	cmd     *cobra.Command
	app     *ui.App
	console *console.Console
	form    *modal.MemoryForm
	printer *printer
}

func (o *options) open(cmd *cobra.Command) (*session, error) {
	p := &printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	app, err := ui.NewApp(cmd.Context(), o.cfg,
		notify.WithRenderer(p),
		// The process ends with the command; entries need no expiry.
		notify.WithScheduler(func(time.Duration, func()) {}),
	)
	if err != nil {
		return nil, err
	}
	form := modal.NewMemoryForm()
	c, err := app.NewConsole(cmd.Context(), form)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	return &session{cmd: cmd, app: app, console: c, form: form, printer: p}, nil
}

func (s *session) close() {
	s.console.Dispose()
	_ = s.app.Close()
}

// run executes t and reports an error notification as a failed command.
func (s *session) run(t task.Task) error {
	task.Run(s.cmd.Context(), t)
	if s.printer.Failed() {
		return errActionFailed
	}
	return nil
}

// submit applies key=value assignments to the open dialog and submits it.
func (s *session) submit(sets []string) error {
	variant := s.console.Modal().Variant()
	for _, raw := range sets {
		k, v, ok := strings.Cut(raw, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return errors.New(i18n.T("cli.bad_set", raw))
		}
		if k == "type" || k == "id" {
			return errors.New(i18n.T("cli.bad_set", raw))
		}
		if _, ok := schema.Field(variant, k); !ok {
			return fmt.Errorf("%s: field %q is not part of %s", i18n.T("cli.bad_set", raw), k, variant)
		}
		s.form.SetValue(k, v)
	}
	t, err := s.console.Submit()
	if err != nil {
		return err
	}
	return s.run(t)
}

func parseVariant(raw string) (model.Variant, error) {
	v, err := schema.ParseVariant(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", fmt.Errorf("%s: %w", i18n.T("cli.unknown_type", raw), err)
	}
	return v, nil
}

func parseIDArg(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New(i18n.T("cli.bad_id", raw))
	}
	return id, nil
}
