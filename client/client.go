// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/toeirei/paymaster/core/model"
)

// Client is the payment methods API as seen by the console.
type Client interface {
	// Search lists payment methods matching every set filter.
	Search(ctx context.Context, q SearchQuery) ([]model.Record, error)

	// Get retrieves one payment method.
	Get(ctx context.Context, id int) (model.Record, error)

	// Create stores a new payment method and returns it with its id.
	Create(ctx context.Context, body model.Payload) (model.Record, error)

	// Update replaces the fields of a payment method.
	Update(ctx context.Context, id int, body model.Payload) (model.Record, error)

	// Delete removes a payment method.
	Delete(ctx context.Context, id int) error

	// SetDefault marks a payment method as its owner's default.
	SetDefault(ctx context.Context, id int) (model.DefaultChange, error)
}

// SearchQuery holds the optional search filters. Zero values are not sent.
type SearchQuery struct {
	Type   model.Variant
	Name   string
	UserID *int
}

// Values encodes the set filters as query parameters.
func (q SearchQuery) Values() url.Values {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.UserID != nil {
		v.Set("user_id", strconv.Itoa(*q.UserID))
	}
	return v
}
