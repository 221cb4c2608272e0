// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/notify"
	"github.com/toeirei/paymaster/internal/audit"
	"github.com/toeirei/paymaster/internal/i18n"
)

// printer renders notifications as coloured lines and remembers whether an
// error was shown.
type printer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	failed bool
}

func (p *printer) Show(e notify.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e.Kind == notify.Error {
		p.failed = true
		_, _ = color.New(color.FgRed).Fprintln(p.errOut, e.Message)
		return
	}
	_, _ = color.New(color.FgGreen).Fprintln(p.out, e.Message)
}

func (p *printer) Hide(notify.Entry) {}

func (p *printer) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

var _ notify.Renderer = (*printer)(nil)

func printRecords(w io.Writer, records []model.Record) {
	if len(records) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		i18n.T("column.id"),
		i18n.T("column.type"),
		i18n.T("column.name"),
		i18n.T("column.user_id"),
		i18n.T("column.default"),
		i18n.T("column.detail"),
	})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, r := range records {
		def := ""
		if r.IsDefault {
			def = "yes"
		}
		table.Append([]string{
			strconv.Itoa(r.ID),
			string(r.Type),
			r.Name,
			strconv.Itoa(r.UserID),
			def,
			detail(r),
		})
	}
	table.Render()
}

func detail(r model.Record) string {
	switch r.Type {
	case model.PayPal:
		return r.Email
	case model.CreditCard:
		number := r.CardNumber
		if len(number) > 4 {
			number = "****" + number[len(number)-4:]
		}
		return number
	}
	return ""
}

func printJournal(w io.Writer, entries []audit.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Timestamp", "User", "Action", "Target", "Result", "Details"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, e := range entries {
		target := ""
		if e.Target != 0 {
			target = strconv.Itoa(e.Target)
		}
		row := []string{e.Timestamp.Local().Format(time.DateTime), e.Username, e.Action, target, "ok", e.Details}
		if !e.OK {
			row[4] = "failed"
			table.Rich(row, []tablewriter.Colors{{}, {}, {}, {}, {tablewriter.FgRedColor}, {}})
			continue
		}
		table.Append(row)
	}
	table.Render()
}
