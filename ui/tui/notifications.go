// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/paymaster/core/notify"
)

// notificationsMsg asks the program to redraw the notification panel.
type notificationsMsg struct{}

// programRenderer forwards notification changes to a running program. Hide
// fires on timer goroutines and Show inside Update, so sends never block the
// caller.
type programRenderer struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (r *programRenderer) attach(send func(tea.Msg)) {
	r.mu.Lock()
	r.send = send
	r.mu.Unlock()
}

func (r *programRenderer) post() {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		go send(notificationsMsg{})
	}
}

func (r *programRenderer) Show(notify.Entry) { r.post() }
func (r *programRenderer) Hide(notify.Entry) { r.post() }

var _ notify.Renderer = (*programRenderer)(nil)

func renderNotifications(entries []notify.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case notify.Error:
			lines = append(lines, errorStyle.Render("✗ "+e.Message))
		default:
			lines = append(lines, successStyle.Render("✓ "+e.Message))
		}
	}
	return notificationBoxStyle.Render(strings.Join(lines, "\n"))
}
