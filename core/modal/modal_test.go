// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package modal

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/schema"
	"github.com/toeirei/paymaster/core/task"
)

// capture returns a SubmitFunc that stores every payload it receives.
func capture(got *[]model.Payload) SubmitFunc {
	return func(ctx context.Context, p model.Payload) task.Effect {
		*got = append(*got, p)
		return nil
	}
}

func newController(t *testing.T) (*Controller, *MemoryForm) {
	t.Helper()
	form := NewMemoryForm()
	c, err := New(form)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, form
}

func submit(t *testing.T, c *Controller) {
	t.Helper()
	tk, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	task.Run(context.Background(), tk)
}

func TestNew_MissingFormIsFatal(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoDialog) {
		t.Fatalf("expected ErrNoDialog, got %v", err)
	}
}

func TestOpen_SetsTitleLabelAndDefaultVariant(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	if err := c.Open(Options{Title: "Create New Payment Method", SubmitLabel: "Create", OnSubmit: capture(&got)}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !form.Visible || form.Title != "Create New Payment Method" || form.SubmitLabel != "Create" {
		t.Fatalf("dialog not set up: %+v", form)
	}
	if form.Shown != model.PayPal || form.Value("type") != "PAYPAL" {
		t.Fatalf("expected PAYPAL fields, got %v / %q", form.Shown, form.Value("type"))
	}
	if !c.IsOpen() || !c.HandlerBound() {
		t.Fatalf("controller should be open with a bound handler")
	}
}

func TestOpen_WithoutHandlerFails(t *testing.T) {
	c, _ := newController(t)
	if err := c.Open(Options{Title: "x"}); !errors.Is(err, ErrNoHandler) {
		t.Fatalf("expected ErrNoHandler, got %v", err)
	}
	if c.IsOpen() {
		t.Fatalf("controller must stay closed")
	}
}

func TestOpenTwice_OnlyLatestHandlerFires(t *testing.T) {
	c, form := newController(t)
	var first, second []model.Payload

	_ = c.Open(Options{Title: "one", OnSubmit: capture(&first)})
	form.SetValue("name", "stale")
	_ = c.Open(Options{Title: "two", OnSubmit: capture(&second)})

	if form.Value("name") != "" {
		t.Fatalf("reopening must tear down the previous session, name=%q", form.Value("name"))
	}
	submit(t, c)

	if len(first) != 0 {
		t.Fatalf("stale handler fired %d times", len(first))
	}
	if len(second) != 1 {
		t.Fatalf("current handler fired %d times, want 1", len(second))
	}
	if c.Session().Generation != 2 || c.Session().Title != "two" {
		t.Fatalf("unexpected session %+v", c.Session())
	}
}

func TestSubmit_SerializesVisibleVariantInOrder(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})

	form.SetValue("name", "Personal")
	form.SetValue("user_id", " 42 ")
	form.SetValue("email", "me@example.com")
	form.SetValue("card_number", "4111111111111111") // hidden field, not serialized
	submit(t, c)

	p := got[0]
	keys := p.Keys()
	want := []string{"name", "type", "user_id", "email"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if v, _ := p.Get("user_id"); v != float64(42) {
		t.Fatalf("user_id = %#v, want 42", v)
	}
	if _, ok := p.Get("id"); ok {
		t.Fatalf("create sessions must not carry an id")
	}
	if !c.IsOpen() {
		t.Fatalf("submit must not close the dialog")
	}
}

func TestSubmit_NonNumericIntegerIsNaN(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})
	form.SetValue("user_id", "abc")
	submit(t, c)

	v, _ := got[0].Get("user_id")
	f, ok := v.(float64)
	if !ok || !math.IsNaN(f) {
		t.Fatalf("expected NaN, got %#v", v)
	}
}

func TestSubmit_WhileClosed(t *testing.T) {
	c, _ := newController(t)
	if _, err := c.Submit(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}

func TestSubmit_UnknownTypeValueFails(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})
	form.SetValue("type", "BITCOIN")
	if _, err := c.Submit(); !errors.Is(err, schema.ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
}

func TestPrefill_EditSessionCarriesIdAndShowsVariant(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	record := model.Record{
		ID: 9, Type: model.CreditCard, Name: "Work", UserID: 3,
		FirstName: "Ada", LastName: "Lovelace", CardNumber: "4111111111111111",
		ExpiryMonth: 12, ExpiryYear: 2030, SecurityCode: "123",
		BillingAddress: "1 Main St", ZipCode: "12345",
	}
	if err := c.Open(Options{Title: `Edit payment method "Work"`, OnSubmit: capture(&got), Prefill: &record}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if form.Shown != model.CreditCard {
		t.Fatalf("expected credit card fields, got %v", form.Shown)
	}
	if form.Value("expiry_year") != "2030" || form.Value("first_name") != "Ada" || form.Value("type") != "CREDIT_CARD" {
		t.Fatalf("prefill did not populate fields: %q %q %q", form.Value("expiry_year"), form.Value("first_name"), form.Value("type"))
	}
	submit(t, c)
	if id, _ := got[0].Get("id"); id != 9 {
		t.Fatalf("expected id 9 merged into payload, got %#v", id)
	}
}

func TestPrefill_UnknownVariantRejected(t *testing.T) {
	c, _ := newController(t)
	var got []model.Payload
	err := c.Open(Options{OnSubmit: capture(&got), Prefill: &model.Record{ID: 1, Type: "BITCOIN"}})
	if !errors.Is(err, schema.ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
	if c.IsOpen() {
		t.Fatalf("controller must not open for an unknown variant")
	}
}

func TestSelectVariant_PreservesCommonValues(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})

	form.SetValue("name", "Shared card")
	form.SetValue("user_id", "5")
	form.SetValue("email", "kept@example.com")

	if err := c.SelectVariant("CREDIT_CARD"); err != nil {
		t.Fatalf("SelectVariant: %v", err)
	}
	if form.Shown != model.CreditCard {
		t.Fatalf("visible subset did not switch")
	}
	if form.Value("name") != "Shared card" || form.Value("user_id") != "5" {
		t.Fatalf("common fields cleared by variant switch")
	}

	if err := c.SelectVariant("PAYPAL"); err != nil {
		t.Fatalf("SelectVariant: %v", err)
	}
	if form.Value("email") != "kept@example.com" {
		t.Fatalf("switching back lost the email value")
	}

	if err := c.SelectVariant("BITCOIN"); !errors.Is(err, schema.ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
	if form.Shown != model.PayPal {
		t.Fatalf("invalid selection must not change visibility")
	}
}

func TestClose_IsIdempotentAndResets(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})
	_ = c.SelectVariant("CREDIT_CARD")
	form.SetValue("first_name", "Ada")

	c.Close()
	c.Close()

	if form.Visible || c.IsOpen() || c.HandlerBound() {
		t.Fatalf("close must hide the dialog and unbind the handler")
	}
	if form.Value("first_name") != "" {
		t.Fatalf("close must clear fields")
	}
	if form.Shown != model.PayPal || form.Value("type") != "PAYPAL" {
		t.Fatalf("close must reset to the default variant")
	}
	if _, err := c.Submit(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("handler still reachable after close: %v", err)
	}
}

func TestDispose_ClearsWithoutHiding(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})
	form.SetValue("name", "secret")

	c.Dispose()
	if form.Value("name") != "" {
		t.Fatalf("dispose must clear entered data")
	}
	if !form.Visible {
		t.Fatalf("dispose leaves the widget alone")
	}
	if c.HandlerBound() {
		t.Fatalf("dispose must drop the handler")
	}
}

func TestRoundTrip_CreditCardKeepsKeysAndTypes(t *testing.T) {
	c, form := newController(t)
	var got []model.Payload
	_ = c.Open(Options{OnSubmit: capture(&got)})
	_ = c.SelectVariant("CREDIT_CARD")
	for field, value := range map[string]string{
		"name": "Travel", "user_id": "7", "first_name": "Ada", "last_name": "Lovelace",
		"card_number": "4111111111111111", "expiry_month": "04", "expiry_year": "2031",
		"security_code": "321", "billing_address": "2 Side St", "zip_code": "54321",
	} {
		form.SetValue(field, value)
	}
	submit(t, c)
	first := got[0]

	// feed the payload back as a record and through an edit session
	var record model.Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: &record})
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	if err := decoder.Decode(first.Map()); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	record.ID = 11
	c.Close()
	if err := c.Open(Options{OnSubmit: capture(&got), Prefill: &record}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	submit(t, c)
	second := got[1].Without("id")

	fk, sk := first.Keys(), second.Keys()
	if len(fk) != len(sk) {
		t.Fatalf("key sets differ: %v vs %v", fk, sk)
	}
	for i, k := range fk {
		if sk[i] != k {
			t.Fatalf("key order differs: %v vs %v", fk, sk)
		}
		a, _ := first.Get(k)
		b, _ := second.Get(k)
		if a != b {
			t.Fatalf("value of %s changed: %#v -> %#v", k, a, b)
		}
		if f, ok := schema.Field(model.CreditCard, k); ok && f.Kind == model.Integer {
			if _, isNum := b.(float64); !isNum {
				t.Fatalf("integer field %s is %T after round trip", k, b)
			}
		}
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{"": 0, "  ": 0, "12": 12, " 3 ": 3, "04": 4, "1e3": 1000, "-2.5": -2.5}
	for in, want := range cases {
		if got := ParseNumber(in); got != want {
			t.Fatalf("ParseNumber(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"abc", "12px", "1,5"} {
		if got := ParseNumber(in); !math.IsNaN(got) {
			t.Fatalf("ParseNumber(%q) = %v, want NaN", in, got)
		}
	}
}
