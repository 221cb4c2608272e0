// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package notify is the transient notification channel of the console.
// Every entry removes itself after a fixed delay on its own timer.
package notify

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultDelay is how long an entry stays visible.
const DefaultDelay = 5 * time.Second

// ErrInvalidKind is returned by Notify for kinds other than Success and Error.
var ErrInvalidKind = errors.New("incorrect notification kind")

// Kind of a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Entry is one rendered notification.
type Entry struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Renderer is told when an entry appears and when it goes away. Hide is
// called at most once per entry.
type Renderer interface {
	Show(Entry)
	Hide(Entry)
}

// Scheduler runs fn once after d. It matches time.AfterFunc.
type Scheduler func(d time.Duration, fn func())

// Channel keeps the currently visible entries. It is safe for concurrent use;
// removal callbacks fire on timer goroutines.
type Channel struct {
	mu       sync.Mutex
	delay    time.Duration
	counters map[Kind]int
	entries  []Entry
	renderer Renderer
	schedule Scheduler
	now      func() time.Time
}

type Option func(*Channel)

// WithDelay sets the auto-dismiss delay. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.delay = d
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(c *Channel) { c.renderer = r }
}

func WithScheduler(s Scheduler) Option {
	return func(c *Channel) { c.schedule = s }
}

func WithClock(now func() time.Time) Option {
	return func(c *Channel) { c.now = now }
}

// New creates a channel. Each test or program builds its own.
func New(opts ...Option) *Channel {
	c := &Channel{
		delay:    DefaultDelay,
		counters: make(map[Kind]int),
		schedule: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Delay returns the configured auto-dismiss delay.
func (c *Channel) Delay() time.Duration { return c.delay }

// Notify renders a new entry and schedules its removal.
func (c *Channel) Notify(kind Kind, message string) (Entry, error) {
	if kind != Success && kind != Error {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKind, string(kind))
	}

	c.mu.Lock()
	c.counters[kind]++
	entry := Entry{
		ID:        fmt.Sprintf("%s-notification-%d", kind, c.counters[kind]),
		Kind:      kind,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.entries = append(c.entries, entry)
	renderer := c.renderer
	c.mu.Unlock()

	if renderer != nil {
		renderer.Show(entry)
	}
	id := entry.ID
	c.schedule(c.delay, func() { c.Dismiss(id) })
	return entry, nil
}

// Success posts a success entry.
func (c *Channel) Success(message string) {
	_, _ = c.Notify(Success, message)
}

// Error posts an error entry.
func (c *Channel) Error(message string) {
	_, _ = c.Notify(Error, message)
}

// Dismiss removes the entry with id. Unknown ids are ignored.
func (c *Channel) Dismiss(id string) {
	c.mu.Lock()
	var (
		removed Entry
		found   bool
	)
	for i, e := range c.entries {
		if e.ID == id {
			removed, found = e, true
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	renderer := c.renderer
	c.mu.Unlock()

	if found && renderer != nil {
		renderer.Hide(removed)
	}
}

// Clear drops every visible entry. Pending timers still fire and find
// nothing to remove.
func (c *Channel) Clear() {
	c.mu.Lock()
	removed := c.entries
	c.entries = nil
	renderer := c.renderer
	c.mu.Unlock()

	if renderer != nil {
		for _, e := range removed {
			renderer.Hide(e)
		}
	}
}

// Entries returns the visible entries in creation order.
func (c *Channel) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of visible entries.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
