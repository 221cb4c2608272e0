// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	j, err := Open(context.Background(), "sqlite", ":memory:",
		WithUsername("ops"),
		WithClock(func() time.Time {
			n++
			return base.Add(time.Duration(n) * time.Minute)
		}),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpen_UnsupportedDatabase(t *testing.T) {
	if _, err := Open(context.Background(), "oracle", "x"); !errors.Is(err, ErrUnsupportedDatabase) {
		t.Fatalf("err = %v, want ErrUnsupportedDatabase", err)
	}
}

func TestRecordAndList(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{Action: "search", OK: true},
		{Action: "delete", Target: 4, OK: false, Details: "boom"},
		{Action: "set-default", Target: 2, OK: true},
	} {
		if _, err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Action != "set-default" || all[2].Action != "search" {
		t.Fatalf("order = %s..%s, want newest first", all[0].Action, all[2].Action)
	}
	if all[1].Target != 4 || all[1].OK || all[1].Details != "boom" || all[1].Username != "ops" {
		t.Fatalf("entry = %+v", all[1])
	}

	two, err := j.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(two) != 2 {
		t.Fatalf("limited len = %d", len(two))
	}
}

func TestRecorder(t *testing.T) {
	j := openTestJournal(t)
	rec := j.Recorder(context.Background())
	rec("create", 9, nil)
	rec("edit", 9, errors.New("name is required"))

	got, err := j.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Action != "edit" || got[0].OK || got[0].Details != "name is required" {
		t.Fatalf("failed call = %+v", got[0])
	}
	if got[1].Action != "create" || !got[1].OK || got[1].Target != 9 {
		t.Fatalf("ok call = %+v", got[1])
	}
}

func TestExportRoundTrip(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()
	if _, err := j.Record(ctx, Entry{Action: "retrieve", Target: 1, OK: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := j.Record(ctx, Entry{Action: "delete", Target: 1, OK: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var buf bytes.Buffer
	n, err := j.Export(ctx, &buf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Fatalf("exported %d, want 2", n)
	}
	data, err := ReadExport(&buf)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if data.SchemaVersion != 1 || len(data.Entries) != 2 || data.Entries[0].Action != "delete" {
		t.Fatalf("export = %+v", data)
	}
	want := time.Date(2026, 3, 1, 12, 2, 0, 0, time.UTC)
	if !data.Entries[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", data.Entries[0].Timestamp, want)
	}
}

func TestReadExport_Garbage(t *testing.T) {
	if _, err := ReadExport(bytes.NewBufferString("not zstd")); err == nil {
		t.Fatalf("expected error")
	}
}
