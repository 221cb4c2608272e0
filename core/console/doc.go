// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package console turns operator gestures into API calls and dispatches the
// outcome to the notifications, the result list and the modal dialog.
//
// Every gesture is exposed as a task.Task. The blocking call happens when the
// task runs; the returned effect applies the outcome and must run on the UI
// loop. A failed call produces exactly one error notification and leaves the
// list and the dialog untouched.
package console
