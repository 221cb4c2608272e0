// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/paymaster/buildvars"
	"github.com/toeirei/paymaster/client"
	"github.com/toeirei/paymaster/core/console"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/notify"
	"github.com/toeirei/paymaster/core/results"
	"github.com/toeirei/paymaster/internal/audit"
	"github.com/toeirei/paymaster/internal/config"
	"github.com/toeirei/paymaster/internal/i18n"
	"github.com/toeirei/paymaster/internal/logging"
)

// App bundles the services of one process.
type App struct {
	Config  config.Config
	API     client.Client
	Notes   *notify.Channel
	Journal *audit.Journal
}

// NewApp applies the logging and language settings of cfg and builds the
// API client, the notification channel and, when enabled, the journal.
func NewApp(ctx context.Context, cfg config.Config, notifyOpts ...notify.Option) (*App, error) {
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warnf("%v", err)
	}
	i18n.Init(cfg.Language)

	api, err := client.New(client.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: buildvars.UserAgent(),
	})
	if err != nil {
		return nil, err
	}

	opts := append([]notify.Option{notify.WithDelay(cfg.Notifications.Delay)}, notifyOpts...)
	app := &App{
		Config: cfg,
		API:    api,
		Notes:  notify.New(opts...),
	}

	if cfg.Audit.Enabled {
		j, err := audit.Open(ctx, cfg.Database.Type, cfg.Database.Dsn)
		if err != nil {
			return nil, fmt.Errorf("open action journal: %w", err)
		}
		app.Journal = j
	}
	logging.Debugf("ui: api %s, audit %t, language %s", cfg.API.BaseURL, cfg.Audit.Enabled, i18n.GetLang())
	return app, nil
}

// NewConsole builds a console driving form. Texts follow the active
// language; outcomes go to the journal when one is open.
func (a *App) NewConsole(ctx context.Context, form modal.Form, opts ...console.Option) (*console.Console, error) {
	dialog, err := modal.New(form)
	if err != nil {
		return nil, err
	}
	base := []console.Option{console.WithMessages(Messages())}
	if a.Journal != nil {
		base = append(base, console.WithRecorder(a.Journal.Recorder(ctx)))
	}
	return console.New(a.API, dialog, a.Notes, append(base, opts...)...)
}

// Close releases the journal.
func (a *App) Close() error {
	if a.Journal == nil {
		return nil
	}
	return a.Journal.Close()
}

// ErrJournalDisabled is returned when the journal is needed but not enabled.
var ErrJournalDisabled = errors.New("action journal is disabled")

// Messages returns the console texts in the active language.
func Messages() console.Messages {
	return console.Messages{
		Found:       i18n.T("search.found"),
		Retrieved:   i18n.T("retrieve.found"),
		Added:       i18n.T("create.done"),
		Edited:      i18n.T("edit.done"),
		CreateTitle: i18n.T("dialog.create_title"),
		CreateLabel: i18n.T("dialog.create_label"),
		EditTitle:   i18n.T("dialog.edit_title"),
		EditLabel:   i18n.T("dialog.edit_label"),
		Rows: results.Messages{
			Deleted:          i18n.T("delete.done"),
			DeleteFailed:     i18n.T("delete.failed"),
			DefaultSet:       i18n.T("default.done"),
			DefaultSetFailed: i18n.T("default.failed"),
		},
	}
}
