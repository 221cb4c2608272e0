// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package results keeps the table of visible payment methods in step with
// server responses, including the one-default-per-owner display rule.
package results

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/task"
)

// API is the part of the payment methods API the row actions call.
type API interface {
	Delete(ctx context.Context, id int) error
	SetDefault(ctx context.Context, id int) (model.DefaultChange, error)
}

// Notifier reports row action outcomes.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Messages are the texts used for row action outcomes. Each format takes the
// affected id.
type Messages struct {
	Deleted          string
	DeleteFailed     string
	DefaultSet       string
	DefaultSetFailed string
}

// DefaultMessages are the English row action texts.
var DefaultMessages = Messages{
	Deleted:          "Successfully deleted payment method with id: %d",
	DeleteFailed:     "An error occurred when trying to remove a payment method",
	DefaultSet:       "Successfully set payment method with id %d as default",
	DefaultSetFailed: "An error occurred when trying to set a default payment method",
}

// Row is one visible payment method and the actions wired to it.
type Row struct {
	Record model.Record
	// Edit opens the dialog prefilled with the record.
	Edit func()
	// Delete removes the method on the server, then the row.
	Delete task.Task
	// SetDefault marks the method as default for its owner.
	SetDefault task.Task
}

// Observer, when set, is called after each mutation of the list.
type Observer func()

// List owns the ordered set of visible rows keyed by record id. Methods must
// be called from the UI loop.
type List struct {
	rows     []*Row
	api      API
	notifier Notifier
	edit     func(model.Record)
	messages Messages
	observer Observer
	// Recorder receives the outcome of row actions; may be nil.
	recorder func(action string, id int, err error)
}

type Option func(*List)

func WithMessages(m Messages) Option {
	return func(l *List) { l.messages = m }
}

func WithObserver(o Observer) Option {
	return func(l *List) { l.observer = o }
}

// WithRecorder reports row action outcomes, e.g. to an audit journal. It is
// called from the task goroutine.
func WithRecorder(fn func(action string, id int, err error)) Option {
	return func(l *List) { l.recorder = fn }
}

// New builds an empty list. edit is invoked by a row's Edit action.
func New(api API, notifier Notifier, edit func(model.Record), opts ...Option) *List {
	l := &List{
		api:      api,
		notifier: notifier,
		edit:     edit,
		messages: DefaultMessages,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reset clears every row.
func (l *List) Reset() {
	l.rows = nil
	l.changed()
}

// Upsert appends record, or with replace swaps the row with the same id in
// place. Replacing an id that is not shown appends.
func (l *List) Upsert(record model.Record, replace bool) {
	row := l.newRow(record)
	if replace {
		if _, i, ok := lo.FindIndexOf(l.rows, func(r *Row) bool { return r.Record.ID == record.ID }); ok {
			l.rows[i] = row
			l.changed()
			return
		}
	}
	l.rows = append(l.rows, row)
	l.changed()
}

// ApplyDefault marks id as the default among the visible rows of owner and
// clears the flag on that owner's other rows. Rows of other owners and
// methods that are not shown are left alone.
func (l *List) ApplyDefault(id, owner int) {
	if len(l.rows) == 0 {
		return
	}
	for _, row := range l.rows {
		if row.Record.UserID != owner {
			continue
		}
		row.Record.IsDefault = row.Record.ID == id
	}
	l.changed()
}

// Remove drops the row with id. Unknown ids are ignored.
func (l *List) Remove(id int) {
	before := len(l.rows)
	l.rows = lo.Reject(l.rows, func(r *Row, _ int) bool { return r.Record.ID == id })
	if len(l.rows) != before {
		l.changed()
	}
}

// Rows returns a snapshot of the visible rows.
func (l *List) Rows() []Row {
	return lo.Map(l.rows, func(r *Row, _ int) Row { return *r })
}

// Records returns the visible records in display order.
func (l *List) Records() []model.Record {
	return lo.Map(l.rows, func(r *Row, _ int) model.Record { return r.Record })
}

func (l *List) Len() int { return len(l.rows) }

// Get returns the row showing id.
func (l *List) Get(id int) (Row, bool) {
	r, ok := lo.Find(l.rows, func(r *Row) bool { return r.Record.ID == id })
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// At returns the row at display index i.
func (l *List) At(i int) (Row, bool) {
	if i < 0 || i >= len(l.rows) {
		return Row{}, false
	}
	return *l.rows[i], true
}

func (l *List) newRow(record model.Record) *Row {
	return &Row{
		Record: record,
		Edit: func() {
			if l.edit != nil {
				l.edit(record)
			}
		},
		Delete:     l.deleteTask(record.ID),
		SetDefault: l.setDefaultTask(record.ID),
	}
}

func (l *List) deleteTask(id int) task.Task {
	return func(ctx context.Context) task.Effect {
		err := l.api.Delete(ctx, id)
		l.record("delete", id, err)
		if err != nil {
			return func() { l.notifier.Error(l.messages.DeleteFailed) }
		}
		return func() {
			l.Remove(id)
			l.notifier.Success(fmt.Sprintf(l.messages.Deleted, id))
		}
	}
}

func (l *List) setDefaultTask(id int) task.Task {
	return func(ctx context.Context) task.Effect {
		change, err := l.api.SetDefault(ctx, id)
		l.record("set-default", id, err)
		if err != nil {
			return func() { l.notifier.Error(l.messages.DefaultSetFailed) }
		}
		return func() {
			l.ApplyDefault(change.ID, change.UserID)
			l.notifier.Success(fmt.Sprintf(l.messages.DefaultSet, change.ID))
		}
	}
}

func (l *List) record(action string, id int, err error) {
	if l.recorder != nil {
		l.recorder(action, id, err)
	}
}

func (l *List) changed() {
	if l.observer != nil {
		l.observer()
	}
}
