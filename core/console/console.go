// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/toeirei/paymaster/client"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/results"
	"github.com/toeirei/paymaster/core/task"
	"github.com/toeirei/paymaster/internal/logging"
)

var (
	// ErrNoAPI is returned by New without an API client.
	ErrNoAPI = errors.New("console: api client is missing")
	// ErrNoNotifier is returned by New without a notification sink.
	ErrNoNotifier = errors.New("console: notifier is missing")
	// ErrUnknownRecord is returned for an id that is not in the result list.
	ErrUnknownRecord = errors.New("console: payment method is not listed")
)

// Notifier receives operator visible outcomes.
type Notifier = results.Notifier

// Recorder receives the outcome of every API call. id is zero for searches.
type Recorder func(action string, id int, err error)

// Action names passed to a Recorder.
const (
	ActionSearch     = "search"
	ActionRetrieve   = "retrieve"
	ActionCreate     = "create"
	ActionEdit       = "edit"
	ActionDelete     = "delete"
	ActionSetDefault = "set-default"
)

// Messages are the operator facing texts. Formats take the affected id,
// except Found (the count) and EditTitle (the method name).
type Messages struct {
	Found       string
	Retrieved   string
	Added       string
	Edited      string
	CreateTitle string
	CreateLabel string
	EditTitle   string
	EditLabel   string
	Rows        results.Messages
}

// DefaultMessages are the English texts.
var DefaultMessages = Messages{
	Found:       "Found %d payment methods",
	Retrieved:   "Retrieved payment method with id: %d",
	Added:       "Added payment method with id: %d",
	Edited:      "Edited payment method with id: %d",
	CreateTitle: "Create New Payment Method",
	CreateLabel: "Create",
	EditTitle:   "Edit payment method \"%s\"",
	EditLabel:   "Save",
	Rows:        results.DefaultMessages,
}

// Console wires the API to the dialog, the list and the notifications.
type Console struct {
	api      client.Client
	modal    *modal.Controller
	notes    Notifier
	list     *results.List
	messages Messages
	recorder Recorder
	observer results.Observer
}

type Option func(*Console)

func WithMessages(m Messages) Option {
	return func(c *Console) { c.messages = m }
}

// WithRecorder reports every call outcome. It runs on the task goroutine.
func WithRecorder(r Recorder) Option {
	return func(c *Console) { c.recorder = r }
}

// WithObserver is called after each change of the result list.
func WithObserver(o results.Observer) Option {
	return func(c *Console) { c.observer = o }
}

// New builds a console around dialog. The result list is owned by the
// console; its rows open the edit dialog.
func New(api client.Client, dialog *modal.Controller, notes Notifier, opts ...Option) (*Console, error) {
	if api == nil {
		return nil, ErrNoAPI
	}
	if dialog == nil {
		return nil, modal.ErrNoDialog
	}
	if notes == nil {
		return nil, ErrNoNotifier
	}
	c := &Console{api: api, modal: dialog, notes: notes, messages: DefaultMessages}
	for _, opt := range opts {
		opt(c)
	}
	listOpts := []results.Option{
		results.WithMessages(c.messages.Rows),
		results.WithRecorder(func(action string, id int, err error) { c.record(action, id, err) }),
	}
	if c.observer != nil {
		listOpts = append(listOpts, results.WithObserver(c.observer))
	}
	c.list = results.New(api, notes, c.editRow, listOpts...)
	return c, nil
}

// Results returns the result list.
func (c *Console) Results() *results.List { return c.list }

// Modal returns the dialog controller.
func (c *Console) Modal() *modal.Controller { return c.modal }

// Search replaces the list with every method matching q.
func (c *Console) Search(q client.SearchQuery) task.Task {
	return func(ctx context.Context) task.Effect {
		records, err := c.api.Search(ctx, q)
		c.record(ActionSearch, 0, err)
		if err != nil {
			return c.failure(err)
		}
		return func() {
			c.list.Reset()
			for _, r := range records {
				c.list.Upsert(r, false)
			}
			c.notes.Success(fmt.Sprintf(c.messages.Found, len(records)))
		}
	}
}

// Retrieve replaces the list with the single method id.
func (c *Console) Retrieve(id int) task.Task {
	return func(ctx context.Context) task.Effect {
		record, err := c.api.Get(ctx, id)
		c.record(ActionRetrieve, id, err)
		if err != nil {
			return c.failure(err)
		}
		return func() {
			c.list.Reset()
			c.list.Upsert(record, false)
			c.notes.Success(fmt.Sprintf(c.messages.Retrieved, record.ID))
		}
	}
}

// OpenCreate opens the dialog for a new method. A successful submit closes
// the dialog; the new method is not added to the list.
func (c *Console) OpenCreate() error {
	var generation uint64
	err := c.modal.Open(modal.Options{
		Title:       c.messages.CreateTitle,
		SubmitLabel: c.messages.CreateLabel,
		OnSubmit: func(ctx context.Context, payload model.Payload) task.Effect {
			return c.create(ctx, payload, generation)
		},
	})
	if err != nil {
		return err
	}
	generation = c.modal.Session().Generation
	return nil
}

// OpenEdit opens the dialog prefilled with record. A successful submit
// replaces the row in place and closes the dialog.
func (c *Console) OpenEdit(record model.Record) error {
	var generation uint64
	err := c.modal.Open(modal.Options{
		Title:       fmt.Sprintf(c.messages.EditTitle, record.Name),
		SubmitLabel: c.messages.EditLabel,
		Prefill:     &record,
		OnSubmit: func(ctx context.Context, payload model.Payload) task.Effect {
			return c.edit(ctx, payload, generation)
		},
	})
	if err != nil {
		return err
	}
	generation = c.modal.Session().Generation
	return nil
}

// Edit opens the edit dialog for the listed method id.
func (c *Console) Edit(id int) error {
	row, ok := c.list.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}
	return c.OpenEdit(row.Record)
}

// Delete returns the delete task of the listed method id.
func (c *Console) Delete(id int) (task.Task, error) {
	row, ok := c.list.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}
	return row.Delete, nil
}

// SetDefault returns the set-default task of the listed method id.
func (c *Console) SetDefault(id int) (task.Task, error) {
	row, ok := c.list.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}
	return row.SetDefault, nil
}

// Submit returns the task of the open dialog's submit handler.
func (c *Console) Submit() (task.Task, error) {
	return c.modal.Submit()
}

// Close closes the dialog without submitting.
func (c *Console) Close() { c.modal.Close() }

// Dispose releases the dialog state on shutdown.
func (c *Console) Dispose() { c.modal.Dispose() }

func (c *Console) create(ctx context.Context, payload model.Payload, generation uint64) task.Effect {
	record, err := c.api.Create(ctx, payload)
	c.record(ActionCreate, record.ID, err)
	if err != nil {
		return c.failure(err)
	}
	return func() {
		c.closeSession(generation)
		c.notes.Success(fmt.Sprintf(c.messages.Added, record.ID))
	}
}

func (c *Console) edit(ctx context.Context, payload model.Payload, generation uint64) task.Effect {
	id, _ := payload.Get("id")
	recordID, _ := id.(int)
	record, err := c.api.Update(ctx, recordID, payload.Without("id"))
	c.record(ActionEdit, recordID, err)
	if err != nil {
		return c.failure(err)
	}
	return func() {
		c.list.Upsert(record, true)
		c.closeSession(generation)
		c.notes.Success(fmt.Sprintf(c.messages.Edited, record.ID))
	}
}

// closeSession closes the dialog unless it was reopened since the submit.
func (c *Console) closeSession(generation uint64) {
	if c.modal.IsOpen() && c.modal.Session().Generation != generation {
		return
	}
	c.modal.Close()
}

func (c *Console) editRow(record model.Record) {
	if err := c.OpenEdit(record); err != nil {
		logging.Warnf("console: open edit for %d: %v", record.ID, err)
		c.notes.Error(err.Error())
	}
}

func (c *Console) failure(err error) task.Effect {
	msg := client.Message(err)
	return func() { c.notes.Error(msg) }
}

func (c *Console) record(action string, id int, err error) {
	if err != nil {
		logging.Debugf("console: %s %d failed: %v", action, id, err)
	}
	if c.recorder != nil {
		c.recorder(action, id, err)
	}
}
