// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package task splits a user gesture into the part that waits on the network
// and the part that mutates UI state.
//
// A Task may block and runs off the UI loop. The Effect it returns must be
// applied on the UI loop, which keeps every mutation of the modal, the result
// list and the notifications on a single logical thread.
package task

import "context"

// Effect applies the outcome of a Task. A nil Effect is a no-op.
type Effect func()

// Task performs the blocking half of a gesture.
type Task func(ctx context.Context) Effect

// Apply runs e if it is set.
func (e Effect) Apply() {
	if e != nil {
		e()
	}
}

// Run executes t and applies its effect on the calling goroutine. Used by
// callers without an event loop, such as the CLI.
func Run(ctx context.Context, t Task) {
	if t == nil {
		return
	}
	t(ctx).Apply()
}

// Then returns an Effect that applies all given effects in order.
func Then(effects ...Effect) Effect {
	return func() {
		for _, e := range effects {
			e.Apply()
		}
	}
}
