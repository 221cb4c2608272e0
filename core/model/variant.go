// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// Variant is the payment method kind. It selects the field schema.
type Variant string

const (
	PayPal     Variant = "PAYPAL"
	CreditCard Variant = "CREDIT_CARD"
)

// DefaultVariant is shown by a freshly opened or reset form.
const DefaultVariant = PayPal

func (v Variant) String() string { return string(v) }

// FieldKind decides how a form value is serialized.
type FieldKind int

const (
	Text FieldKind = iota
	Integer
)

func (k FieldKind) String() string {
	switch k {
	case Text:
		return "text"
	case Integer:
		return "integer"
	default:
		return "unknown"
	}
}

// FieldSpec describes one input of the payment method form.
type FieldSpec struct {
	Name string
	Kind FieldKind
}
