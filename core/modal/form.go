// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package modal

import (
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/schema"
)

// Form is the dialog surface the controller drives. Implementations hold one
// input per field of every variant, so switching the visible subset never
// loses a value.
type Form interface {
	SetTitle(title string)
	SetSubmitLabel(label string)
	Show()
	Hide()
	// Reset clears every input.
	Reset()
	Value(field string) string
	SetValue(field, value string)
	// ShowFieldsFor makes the inputs of v visible and hides the others.
	ShowFieldsFor(v model.Variant)
}

// MemoryForm is a headless Form. The CLI fills it from flags and tests
// inspect it directly.
type MemoryForm struct {
	Title       string
	SubmitLabel string
	Visible     bool
	Shown       model.Variant

	values map[string]string
}

func NewMemoryForm() *MemoryForm {
	return &MemoryForm{
		Shown:  model.DefaultVariant,
		values: make(map[string]string),
	}
}

func (f *MemoryForm) SetTitle(title string)       { f.Title = title }
func (f *MemoryForm) SetSubmitLabel(label string) { f.SubmitLabel = label }
func (f *MemoryForm) Show()                       { f.Visible = true }
func (f *MemoryForm) Hide()                       { f.Visible = false }

func (f *MemoryForm) Reset() {
	f.values = make(map[string]string)
}

func (f *MemoryForm) Value(field string) string { return f.values[field] }

func (f *MemoryForm) SetValue(field, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[field] = value
}

func (f *MemoryForm) ShowFieldsFor(v model.Variant) { f.Shown = v }

// VisibleFields returns the inputs currently shown.
func (f *MemoryForm) VisibleFields() []model.FieldSpec {
	fields, err := schema.FieldsFor(f.Shown)
	if err != nil {
		return nil
	}
	return fields
}

var _ Form = (*MemoryForm)(nil)
