// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package schema is the static registry of form fields per payment method
// variant. Field order defines both form layout and serialization order.
package schema

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/toeirei/paymaster/core/model"
)

// ErrInvalidVariant is returned for a variant tag the registry does not know.
var ErrInvalidVariant = errors.New("invalid payment method variant")

var commonFields = []model.FieldSpec{
	{Name: "name", Kind: model.Text},
	{Name: "type", Kind: model.Text},
	{Name: "user_id", Kind: model.Integer},
}

var variantFields = map[model.Variant][]model.FieldSpec{
	model.PayPal: {
		{Name: "email", Kind: model.Text},
	},
	model.CreditCard: {
		{Name: "first_name", Kind: model.Text},
		{Name: "last_name", Kind: model.Text},
		{Name: "card_number", Kind: model.Text},
		{Name: "expiry_month", Kind: model.Integer},
		{Name: "expiry_year", Kind: model.Integer},
		{Name: "security_code", Kind: model.Text},
		{Name: "billing_address", Kind: model.Text},
		{Name: "zip_code", Kind: model.Text},
	},
}

// variants in display order.
var variants = []model.Variant{model.PayPal, model.CreditCard}

// FieldsFor returns the common fields followed by the fields of v. The
// returned slice is a fresh copy.
func FieldsFor(v model.Variant) ([]model.FieldSpec, error) {
	extra, ok := variantFields[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVariant, string(v))
	}
	out := make([]model.FieldSpec, 0, len(commonFields)+len(extra))
	out = append(out, commonFields...)
	return append(out, extra...), nil
}

// MustFieldsFor is FieldsFor for variants known at compile time.
func MustFieldsFor(v model.Variant) []model.FieldSpec {
	fields, err := FieldsFor(v)
	if err != nil {
		panic(err)
	}
	return fields
}

// Variants lists the known variants.
func Variants() []model.Variant {
	return append([]model.Variant(nil), variants...)
}

// ParseVariant validates a raw variant tag.
func ParseVariant(tag string) (model.Variant, error) {
	v := model.Variant(tag)
	if _, ok := variantFields[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidVariant, tag)
	}
	return v, nil
}

// Field looks up a single field of v by name.
func Field(v model.Variant, name string) (model.FieldSpec, bool) {
	fields, err := FieldsFor(v)
	if err != nil {
		return model.FieldSpec{}, false
	}
	return lo.Find(fields, func(f model.FieldSpec) bool { return f.Name == name })
}

// AllFields returns the union of every variant's fields, in first seen order.
// A form holding inputs for all of them can switch variants without losing
// values.
func AllFields() []model.FieldSpec {
	var all []model.FieldSpec
	for _, v := range variants {
		all = append(all, MustFieldsFor(v)...)
	}
	return lo.UniqBy(all, func(f model.FieldSpec) string { return f.Name })
}

// IsCommon reports whether the named field is shared by all variants.
func IsCommon(name string) bool {
	return lo.ContainsBy(commonFields, func(f model.FieldSpec) bool { return f.Name == name })
}
