// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// Record is the UI-local copy of a payment method as returned by the API.
// Variant specific fields are left empty for the other variant.
type Record struct {
	ID        int     `json:"id" mapstructure:"id"`
	Type      Variant `json:"type" mapstructure:"type"`
	Name      string  `json:"name" mapstructure:"name"`
	UserID    int     `json:"user_id" mapstructure:"user_id"`
	IsDefault bool    `json:"is_default" mapstructure:"is_default"`

	// PAYPAL
	Email string `json:"email,omitempty" mapstructure:"email"`

	// CREDIT_CARD
	FirstName      string `json:"first_name,omitempty" mapstructure:"first_name"`
	LastName       string `json:"last_name,omitempty" mapstructure:"last_name"`
	CardNumber     string `json:"card_number,omitempty" mapstructure:"card_number"`
	ExpiryMonth    int    `json:"expiry_month,omitempty" mapstructure:"expiry_month"`
	ExpiryYear     int    `json:"expiry_year,omitempty" mapstructure:"expiry_year"`
	SecurityCode   string `json:"security_code,omitempty" mapstructure:"security_code"`
	BillingAddress string `json:"billing_address,omitempty" mapstructure:"billing_address"`
	ZipCode        string `json:"zip_code,omitempty" mapstructure:"zip_code"`
}

// DefaultChange is the body returned by a successful set-default call.
type DefaultChange struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
}
