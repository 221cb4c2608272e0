// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package notify

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// manualTimers records scheduled callbacks so tests decide when they fire.
type manualTimers struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (m *manualTimers) schedule(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, d)
	m.fns = append(m.fns, fn)
}

func (m *manualTimers) fire(i int) { m.fns[i]() }

type recorder struct {
	shown  []string
	hidden []string
}

func (r *recorder) Show(e Entry) { r.shown = append(r.shown, e.ID) }
func (r *recorder) Hide(e Entry) { r.hidden = append(r.hidden, e.ID) }

func TestNotify_RejectsUnknownKind(t *testing.T) {
	c := New(WithScheduler(func(time.Duration, func()) {}))
	if _, err := c.Notify(Kind("warning"), "x"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("invalid kind must not render anything")
	}
}

func TestNotify_IdsIncreasePerKind(t *testing.T) {
	timers := &manualTimers{}
	c := New(WithScheduler(timers.schedule))

	a, _ := c.Notify(Success, "a")
	b, _ := c.Notify(Error, "b")
	d, _ := c.Notify(Success, "c")

	if a.ID != "success-notification-1" || d.ID != "success-notification-2" {
		t.Fatalf("unexpected success ids %q %q", a.ID, d.ID)
	}
	if b.ID != "error-notification-1" {
		t.Fatalf("unexpected error id %q", b.ID)
	}
}

func TestNotify_SameTickEntriesExpireIndependently(t *testing.T) {
	timers := &manualTimers{}
	r := &recorder{}
	c := New(WithScheduler(timers.schedule), WithRenderer(r), WithDelay(10*time.Second))

	first, _ := c.Notify(Success, "first")
	second, _ := c.Notify(Error, "second")

	if len(r.shown) != 2 || c.Len() != 2 {
		t.Fatalf("both entries should render, got %v", r.shown)
	}
	for _, d := range timers.delays {
		if d != 10*time.Second {
			t.Fatalf("unexpected delay %v", d)
		}
	}

	// expire in reverse order of creation
	timers.fire(1)
	got := c.Entries()
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("removing %s must leave %s, got %+v", second.ID, first.ID, got)
	}
	timers.fire(0)
	if c.Len() != 0 {
		t.Fatalf("expected empty channel, got %+v", c.Entries())
	}
	if len(r.hidden) != 2 || r.hidden[0] != second.ID || r.hidden[1] != first.ID {
		t.Fatalf("unexpected hide order %v", r.hidden)
	}
}

func TestDismiss_IsIdempotentAfterClear(t *testing.T) {
	timers := &manualTimers{}
	r := &recorder{}
	c := New(WithScheduler(timers.schedule), WithRenderer(r))

	c.Success("kept until cleared")
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("clear should drop entries")
	}
	hiddenAfterClear := len(r.hidden)

	// the pending timer fires after the container was cleared
	timers.fire(0)
	c.Dismiss("error-notification-99")
	if len(r.hidden) != hiddenAfterClear {
		t.Fatalf("late removal must be a no-op, hidden=%v", r.hidden)
	}
}

func TestNotify_UsesRealTimersByDefault(t *testing.T) {
	c := New(WithDelay(10 * time.Millisecond))
	c.Success("short lived")
	c.Error("also short lived")

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("entries did not expire: %+v", c.Entries())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWithDelay_IgnoresNonPositive(t *testing.T) {
	if d := New(WithDelay(0)).Delay(); d != DefaultDelay {
		t.Fatalf("expected default delay, got %v", d)
	}
}

func TestNotify_StampsCreationTime(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := New(WithScheduler(func(time.Duration, func()) {}), WithClock(func() time.Time { return at }))
	e, err := c.Notify(Success, "x")
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !e.CreatedAt.Equal(at) || e.Message != "x" || e.Kind != Success {
		t.Fatalf("unexpected entry %+v", e)
	}
}
