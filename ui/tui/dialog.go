// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/schema"
	"github.com/toeirei/paymaster/internal/i18n"
)

const typeField = "type"

// dialogForm is the payment method dialog. Every input of every variant is
// built once; ShowFieldsFor only changes which of them are rendered.
type dialogForm struct {
	title       string
	submitLabel string
	visible     bool
	typeValue   string
	shown       model.Variant
	inputs      map[string]*textinput.Model
	order       []string
	// focus indexes order; len(order) is the submit button.
	focus int
}

func newDialogForm() *dialogForm {
	d := &dialogForm{
		inputs: make(map[string]*textinput.Model),
		shown:  model.DefaultVariant,
	}
	for _, field := range schema.AllFields() {
		if field.Name == typeField {
			continue
		}
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 36
		t.Prompt = ""
		if field.Kind == model.Integer {
			t.Placeholder = "0"
			t.CharLimit = 12
		}
		if field.Name == "security_code" {
			t.EchoMode = textinput.EchoPassword
		}
		d.inputs[field.Name] = &t
	}
	d.ShowFieldsFor(model.DefaultVariant)
	return d
}

func (d *dialogForm) SetTitle(title string)       { d.title = title }
func (d *dialogForm) SetSubmitLabel(label string) { d.submitLabel = label }

func (d *dialogForm) Show() {
	d.visible = true
	d.setFocus(0)
}

func (d *dialogForm) Hide() {
	d.visible = false
	for _, in := range d.inputs {
		in.Blur()
	}
}

func (d *dialogForm) Reset() {
	for _, in := range d.inputs {
		in.SetValue("")
	}
	d.typeValue = ""
}

func (d *dialogForm) Value(field string) string {
	if field == typeField {
		return d.typeValue
	}
	if in, ok := d.inputs[field]; ok {
		return in.Value()
	}
	return ""
}

func (d *dialogForm) SetValue(field, value string) {
	if field == typeField {
		d.typeValue = value
		return
	}
	if in, ok := d.inputs[field]; ok {
		in.SetValue(value)
	}
}

func (d *dialogForm) ShowFieldsFor(v model.Variant) {
	fields, err := schema.FieldsFor(v)
	if err != nil {
		return
	}
	d.shown = v
	d.order = lo.Map(fields, func(f model.FieldSpec, _ int) string { return f.Name })
	if d.focus > len(d.order) {
		d.focus = len(d.order)
	}
	if d.visible {
		d.setFocus(d.focus)
	}
}

var _ modal.Form = (*dialogForm)(nil)

// focused returns the name of the focused field, or "" for the button.
func (d *dialogForm) focused() string {
	if d.focus < len(d.order) {
		return d.order[d.focus]
	}
	return ""
}

func (d *dialogForm) onSubmit() bool { return d.focus == len(d.order) }

// move shifts the focus by delta, wrapping around the button.
func (d *dialogForm) move(delta int) tea.Cmd {
	n := len(d.order) + 1
	return d.setFocus(((d.focus+delta)%n + n) % n)
}

func (d *dialogForm) setFocus(i int) tea.Cmd {
	d.focus = i
	var cmd tea.Cmd
	for name, in := range d.inputs {
		if name == d.focused() {
			cmd = in.Focus()
			continue
		}
		in.Blur()
	}
	return cmd
}

// update forwards msg to the focused input.
func (d *dialogForm) update(msg tea.Msg) tea.Cmd {
	in, ok := d.inputs[d.focused()]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func (d *dialogForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title))
	b.WriteString("\n\n")
	for i, name := range d.order {
		label := fmt.Sprintf("%-16s", i18n.T("field."+name))
		style := labelStyle
		if i == d.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(label))
		if name == typeField {
			b.WriteString(variantSelector(model.Variant(d.typeValue), i == d.focus))
		} else {
			b.WriteString(d.inputs[name].View())
		}
		b.WriteString("\n")
	}
	button := buttonStyle.Render(d.submitLabel)
	if d.onSubmit() {
		button = activeButtonStyle.Render(d.submitLabel)
	}
	b.WriteString(button)
	return dialogBoxStyle.Render(b.String())
}

func variantSelector(current model.Variant, focused bool) string {
	parts := lo.Map(schema.Variants(), func(v model.Variant, _ int) string {
		if v == current {
			return focusedStyle.Render("[" + string(v) + "]")
		}
		return helpStyle.Render(" " + string(v) + " ")
	})
	out := strings.Join(parts, " ")
	if focused {
		return lipgloss.JoinHorizontal(lipgloss.Top, "‹ ", out, " ›")
	}
	return out
}

// nextVariant returns the variant after (or before, for delta -1) current.
func nextVariant(current model.Variant, delta int) model.Variant {
	vs := schema.Variants()
	_, i, ok := lo.FindIndexOf(vs, func(v model.Variant) bool { return v == current })
	if !ok {
		return vs[0]
	}
	n := len(vs)
	return vs[((i+delta)%n+n)%n]
}
