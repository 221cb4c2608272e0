// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package modal controls the single payment method dialog: its open/close
// lifecycle, the bound submit handler and the variant dependent field set.
package modal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/schema"
	"github.com/toeirei/paymaster/core/task"
)

var (
	// ErrNoDialog is returned when the controller is built without a form.
	ErrNoDialog = errors.New("modal: dialog form is missing")
	// ErrNoHandler is returned by Open without a submit callback.
	ErrNoHandler = errors.New("modal: submit handler is missing")
	// ErrNotOpen is returned by Submit while no session is active.
	ErrNotOpen = errors.New("modal: dialog is not open")
)

// SubmitFunc receives the serialized form. It runs off the UI loop and
// returns the effect to apply once the request finished.
type SubmitFunc func(ctx context.Context, payload model.Payload) task.Effect

// Options configure one modal session.
type Options struct {
	Title       string
	SubmitLabel string
	OnSubmit    SubmitFunc
	// Prefill turns the session into an edit of this record.
	Prefill *model.Record
}

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Session describes the active modal session.
type Session struct {
	Title       string
	SubmitLabel string
	Prefill     *model.Record
	// Generation increases with every Open.
	Generation uint64
}

type boundHandler struct {
	generation uint64
	fn         SubmitFunc
}

// Controller drives a Form. Methods must be called from the UI loop.
type Controller struct {
	form       Form
	state      State
	handler    *boundHandler
	session    Session
	generation uint64
}

// New binds the controller to form and resets it to the default variant.
func New(form Form) (*Controller, error) {
	if form == nil {
		return nil, ErrNoDialog
	}
	c := &Controller{form: form}
	c.resetForm()
	return c, nil
}

// Open starts a session. An active session is torn down first, so there is
// never more than one bound handler.
func (c *Controller) Open(opts Options) error {
	if opts.OnSubmit == nil {
		return ErrNoHandler
	}
	variant := model.DefaultVariant
	if opts.Prefill != nil {
		v, err := schema.ParseVariant(string(opts.Prefill.Type))
		if err != nil {
			return err
		}
		variant = v
	}

	if c.state == Open {
		c.Close()
	}

	c.generation++
	c.form.SetTitle(opts.Title)
	c.form.SetSubmitLabel(opts.SubmitLabel)
	c.handler = &boundHandler{generation: c.generation, fn: opts.OnSubmit}
	c.session = Session{
		Title:       opts.Title,
		SubmitLabel: opts.SubmitLabel,
		Generation:  c.generation,
	}
	c.state = Open
	c.form.Show()

	if opts.Prefill != nil {
		prefill := *opts.Prefill
		c.session.Prefill = &prefill
		if err := c.prefill(variant, prefill); err != nil {
			c.Close()
			return err
		}
		return nil
	}
	c.form.SetValue("type", string(variant))
	c.form.ShowFieldsFor(variant)
	return nil
}

func (c *Controller) prefill(variant model.Variant, record model.Record) error {
	values := map[string]any{}
	if err := mapstructure.Decode(record, &values); err != nil {
		return fmt.Errorf("modal: flatten prefill record: %w", err)
	}
	c.form.ShowFieldsFor(variant)
	for _, field := range schema.MustFieldsFor(variant) {
		c.form.SetValue(field.Name, formatValue(values[field.Name]))
	}
	return nil
}

// SelectVariant reacts to a change of the type selector. Values already
// entered stay in place; only the visible subset changes.
func (c *Controller) SelectVariant(tag string) error {
	v, err := schema.ParseVariant(tag)
	if err != nil {
		return err
	}
	c.form.SetValue("type", string(v))
	c.form.ShowFieldsFor(v)
	return nil
}

// Variant returns the variant currently selected in the form.
func (c *Controller) Variant() model.Variant {
	return model.Variant(c.form.Value("type"))
}

// Submit serializes the form for the selected variant and returns the bound
// handler's task. The dialog stays open; closing on success is up to the
// handler's effect.
func (c *Controller) Submit() (task.Task, error) {
	if c.state != Open || c.handler == nil {
		return nil, ErrNotOpen
	}
	payload, err := c.Serialize()
	if err != nil {
		return nil, err
	}
	if c.session.Prefill != nil {
		payload.Set("id", c.session.Prefill.ID)
	}
	fn := c.handler.fn
	return func(ctx context.Context) task.Effect {
		return fn(ctx, payload)
	}, nil
}

// Serialize reads the fields of the selected variant in schema order.
func (c *Controller) Serialize() (model.Payload, error) {
	fields, err := schema.FieldsFor(c.Variant())
	if err != nil {
		return model.Payload{}, err
	}
	var payload model.Payload
	for _, field := range fields {
		raw := c.form.Value(field.Name)
		if field.Kind == model.Integer {
			payload.Set(field.Name, ParseNumber(raw))
			continue
		}
		payload.Set(field.Name, raw)
	}
	return payload, nil
}

// Close ends the session. Calling it while closed only resets the form.
func (c *Controller) Close() {
	c.resetForm()
	c.form.Hide()
	c.handler = nil
	c.session = Session{}
	c.state = Closed
}

// Dispose forgets entered data when the program goes away. The dialog widget
// itself is left alone.
func (c *Controller) Dispose() {
	c.resetForm()
	c.handler = nil
	c.session = Session{}
	c.state = Closed
}

func (c *Controller) resetForm() {
	c.form.Reset()
	c.form.SetValue("type", string(model.DefaultVariant))
	c.form.ShowFieldsFor(model.DefaultVariant)
}

func (c *Controller) State() State { return c.state }

func (c *Controller) IsOpen() bool { return c.state == Open }

// HandlerBound reports whether a submit handler is currently attached.
func (c *Controller) HandlerBound() bool { return c.handler != nil }

// Session returns a copy of the active session.
func (c *Controller) Session() Session { return c.session }

// Form returns the surface the controller drives.
func (c *Controller) Form() Form { return c.form }

// ParseNumber converts raw input the way an HTML number coercion does:
// surrounding space is ignored, empty input is zero and anything else that
// is not a number yields NaN.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case model.Variant:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
