// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/paymaster/internal/i18n"
)

// listKeyMap holds the bindings active while the result table has focus.
type listKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	Retrieve   key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	SetDefault key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

func (km listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Search, km.Retrieve, km.New, km.Edit, km.Delete, km.SetDefault, km.Copy, km.Quit}
}

func (km listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down},
		{km.Search, km.Retrieve},
		{km.New, km.Edit, km.Delete, km.SetDefault, km.Copy},
		{km.Quit},
	}
}

// inputKeyMap holds the bindings of the search bar, the retrieve field and
// the dialog.
type inputKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Variant key.Binding
	Submit  key.Binding
	Close   key.Binding
}

func (km inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Next, km.Variant, km.Submit, km.Close}
}

func (km inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Next, km.Prev}, {km.Variant}, {km.Submit, km.Close}}
}

var (
	_ help.KeyMap = listKeyMap{}
	_ help.KeyMap = inputKeyMap{}
)

// quitKey is handled everywhere.
var quitKey = key.NewBinding(key.WithKeys("ctrl+c"))

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", i18n.T("help.search"))),
		Retrieve:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", i18n.T("help.retrieve"))),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", i18n.T("help.new"))),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", i18n.T("help.edit"))),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", i18n.T("help.delete"))),
		SetDefault: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", i18n.T("help.default"))),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", i18n.T("help.copy"))),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", i18n.T("help.quit"))),
	}
}

func newInputKeyMap() inputKeyMap {
	return inputKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", i18n.T("help.next"))),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", i18n.T("help.next"))),
		Variant: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", i18n.T("help.variant"))),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", i18n.T("help.submit"))),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", i18n.T("help.close"))),
	}
}
