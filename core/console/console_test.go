// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/toeirei/paymaster/client"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/notify"
	"github.com/toeirei/paymaster/core/task"
	"github.com/toeirei/paymaster/internal/testutil"
)

type fixture struct {
	console *Console
	api     *testutil.FakeAPI
	form    *modal.MemoryForm
	notes   *notify.Channel
	calls   []string
}

func newFixture(t *testing.T, seed ...model.Record) *fixture {
	t.Helper()
	api, base := testutil.NewServer(t, seed...)
	cfg := client.NewDefaultConfig()
	cfg.BaseURL = base
	hc, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	form := modal.NewMemoryForm()
	dialog, err := modal.New(form)
	if err != nil {
		t.Fatalf("modal.New: %v", err)
	}
	f := &fixture{
		api:   api,
		form:  form,
		notes: notify.New(notify.WithScheduler(func(time.Duration, func()) {})),
	}
	f.console, err = New(hc, dialog, f.notes, WithRecorder(func(action string, id int, err error) {
		f.calls = append(f.calls, action)
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func (f *fixture) run(t *testing.T, tk task.Task) {
	t.Helper()
	task.Run(context.Background(), tk)
}

func (f *fixture) only(t *testing.T, kind notify.Kind, msg string) {
	t.Helper()
	entries := f.notes.Entries()
	if len(entries) != 1 {
		t.Fatalf("notifications = %+v, want exactly one", entries)
	}
	if entries[0].Kind != kind || entries[0].Message != msg {
		t.Fatalf("notification = %+v, want %s %q", entries[0], kind, msg)
	}
	f.notes.Clear()
}

func (f *fixture) submit(t *testing.T) {
	t.Helper()
	tk, err := f.console.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	f.run(t, tk)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	dialog, _ := modal.New(modal.NewMemoryForm())
	notes := notify.New()
	if _, err := New(nil, dialog, notes); !errors.Is(err, ErrNoAPI) {
		t.Fatalf("err = %v, want ErrNoAPI", err)
	}
	hc, _ := client.New(client.NewDefaultConfig())
	if _, err := New(hc, nil, notes); !errors.Is(err, modal.ErrNoDialog) {
		t.Fatalf("err = %v, want ErrNoDialog", err)
	}
	if _, err := New(hc, dialog, nil); !errors.Is(err, ErrNoNotifier) {
		t.Fatalf("err = %v, want ErrNoNotifier", err)
	}
}

func TestSearch_ReplacesList(t *testing.T) {
	f := newFixture(t,
		model.Record{ID: 1, Type: model.PayPal, Name: "a", UserID: 1},
		model.Record{ID: 2, Type: model.PayPal, Name: "b", UserID: 1},
	)
	f.console.Results().Upsert(model.Record{ID: 99, Name: "stale"}, false)

	f.run(t, f.console.Search(client.SearchQuery{}))
	if n := f.console.Results().Len(); n != 2 {
		t.Fatalf("Len = %d, want 2", n)
	}
	if _, ok := f.console.Results().Get(99); ok {
		t.Fatalf("stale row survived search")
	}
	f.only(t, notify.Success, "Found 2 payment methods")
}

func TestSearch_ErrorLeavesListAlone(t *testing.T) {
	f := newFixture(t, model.Record{ID: 1, Name: "a"})
	f.console.Results().Upsert(model.Record{ID: 7, Name: "kept"}, false)

	f.api.FailNext(testutil.OpSearch, "boom")
	f.run(t, f.console.Search(client.SearchQuery{}))
	f.only(t, notify.Error, "boom")
	if recs := f.console.Results().Records(); len(recs) != 1 || recs[0].ID != 7 {
		t.Fatalf("list changed on error: %+v", recs)
	}
}

func TestRetrieve(t *testing.T) {
	f := newFixture(t, model.Record{ID: 4, Name: "four"}, model.Record{ID: 5, Name: "five"})
	f.run(t, f.console.Search(client.SearchQuery{}))
	f.notes.Clear()

	f.run(t, f.console.Retrieve(5))
	recs := f.console.Results().Records()
	if len(recs) != 1 || recs[0].ID != 5 {
		t.Fatalf("records = %+v, want only 5", recs)
	}
	f.only(t, notify.Success, "Retrieved payment method with id: 5")

	f.run(t, f.console.Retrieve(42))
	f.only(t, notify.Error, "Payment with id: '42' was not found.")
	if f.console.Results().Len() != 1 {
		t.Fatalf("list changed on failed retrieve")
	}
}

func TestCreate_ClosesDialogWithoutListing(t *testing.T) {
	f := newFixture(t)
	if err := f.console.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	if f.form.Title != "Create New Payment Method" || f.form.SubmitLabel != "Create" {
		t.Fatalf("dialog = %q / %q", f.form.Title, f.form.SubmitLabel)
	}
	f.form.SetValue("name", "Wallet")
	f.form.SetValue("user_id", "3")
	f.form.SetValue("email", "w@example.com")

	f.submit(t)
	f.only(t, notify.Success, "Added payment method with id: 1")
	if f.console.Modal().IsOpen() || f.form.Visible {
		t.Fatalf("dialog still open after create")
	}
	if f.console.Results().Len() != 0 {
		t.Fatalf("created method was listed")
	}
	rec, ok := f.api.Record(1)
	if !ok || rec.Email != "w@example.com" || rec.UserID != 3 || rec.Type != model.PayPal {
		t.Fatalf("stored = %+v", rec)
	}
}

func TestCreate_ErrorKeepsDialogOpen(t *testing.T) {
	f := newFixture(t)
	if err := f.console.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	f.form.SetValue("name", "Wallet")
	f.api.FailNext(testutil.OpCreate, "email is required")

	f.submit(t)
	f.only(t, notify.Error, "email is required")
	if !f.console.Modal().IsOpen() || f.form.Value("name") != "Wallet" {
		t.Fatalf("dialog should stay open with its input")
	}
}

func TestEdit_ReplacesRowInPlace(t *testing.T) {
	f := newFixture(t,
		model.Record{ID: 1, Type: model.PayPal, Name: "first", UserID: 2, Email: "a@x"},
		model.Record{ID: 2, Type: model.PayPal, Name: "second", UserID: 2, Email: "b@x"},
	)
	f.run(t, f.console.Search(client.SearchQuery{}))
	f.notes.Clear()

	if err := f.console.Edit(1); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if f.form.Title != `Edit payment method "first"` || f.form.SubmitLabel != "Save" {
		t.Fatalf("dialog = %q / %q", f.form.Title, f.form.SubmitLabel)
	}
	if f.form.Value("email") != "a@x" || f.form.Value("user_id") != "2" {
		t.Fatalf("prefill missing: email=%q user_id=%q", f.form.Value("email"), f.form.Value("user_id"))
	}
	f.form.SetValue("name", "renamed")

	f.submit(t)
	f.only(t, notify.Success, "Edited payment method with id: 1")
	recs := f.console.Results().Records()
	if len(recs) != 2 || recs[0].ID != 1 || recs[0].Name != "renamed" {
		t.Fatalf("records = %+v", recs)
	}
	if f.console.Modal().IsOpen() {
		t.Fatalf("dialog still open after edit")
	}
	req := f.api.LastRequest()
	if req.Path != "/api/payments/1" || req.Body != `{"name":"renamed","type":"PAYPAL","user_id":2,"email":"a@x"}` {
		t.Fatalf("request = %+v", req)
	}
}

func TestEdit_UnknownID(t *testing.T) {
	f := newFixture(t)
	if err := f.console.Edit(3); !errors.Is(err, ErrUnknownRecord) {
		t.Fatalf("err = %v, want ErrUnknownRecord", err)
	}
}

func TestRowEditOpensDialog(t *testing.T) {
	f := newFixture(t, model.Record{ID: 1, Type: model.CreditCard, Name: "card", ExpiryMonth: 4})
	f.run(t, f.console.Search(client.SearchQuery{}))
	row, _ := f.console.Results().At(0)
	row.Edit()
	if !f.console.Modal().IsOpen() || f.form.Shown != model.CreditCard || f.form.Value("expiry_month") != "4" {
		t.Fatalf("row edit did not open the prefilled dialog: %+v", f.form)
	}
}

func TestLateSubmitDoesNotCloseNewSession(t *testing.T) {
	f := newFixture(t)
	if err := f.console.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	f.form.SetValue("name", "one")
	tk, err := f.console.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	effect := tk(context.Background())

	if err := f.console.OpenCreate(); err != nil {
		t.Fatalf("OpenCreate: %v", err)
	}
	effect.Apply()
	if !f.console.Modal().IsOpen() {
		t.Fatalf("late response closed the newer dialog")
	}
	f.only(t, notify.Success, "Added payment method with id: 1")
}

func TestDeleteAndSetDefault(t *testing.T) {
	f := newFixture(t,
		model.Record{ID: 1, Name: "a", UserID: 5, IsDefault: true},
		model.Record{ID: 2, Name: "b", UserID: 5},
		model.Record{ID: 3, Name: "c", UserID: 6, IsDefault: true},
	)
	f.run(t, f.console.Search(client.SearchQuery{}))
	f.notes.Clear()

	tk, err := f.console.SetDefault(2)
	if err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	f.run(t, tk)
	f.only(t, notify.Success, "Successfully set payment method with id 2 as default")
	for _, r := range f.console.Results().Records() {
		want := r.ID == 2 || r.ID == 3
		if r.IsDefault != want {
			t.Fatalf("record %d default = %v, want %v", r.ID, r.IsDefault, want)
		}
	}

	tk, err = f.console.Delete(1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	f.run(t, tk)
	f.only(t, notify.Success, "Successfully deleted payment method with id: 1")
	if _, ok := f.console.Results().Get(1); ok {
		t.Fatalf("deleted row still listed")
	}

	tk, _ = f.console.Delete(3)
	f.api.Break(testutil.OpDelete)
	f.run(t, tk)
	f.only(t, notify.Error, "An error occurred when trying to remove a payment method")
	if _, ok := f.console.Results().Get(3); !ok {
		t.Fatalf("row removed despite failure")
	}

	if _, err := f.console.Delete(42); !errors.Is(err, ErrUnknownRecord) {
		t.Fatalf("err = %v, want ErrUnknownRecord", err)
	}
}

func TestRecorderSeesEveryCall(t *testing.T) {
	f := newFixture(t, model.Record{ID: 1, Name: "a"})
	f.run(t, f.console.Search(client.SearchQuery{}))
	f.run(t, f.console.Retrieve(1))
	tk, _ := f.console.SetDefault(1)
	f.run(t, tk)
	tk, _ = f.console.Delete(1)
	f.run(t, tk)

	want := []string{ActionSearch, ActionRetrieve, ActionSetDefault, ActionDelete}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", f.calls, want)
		}
	}
}
