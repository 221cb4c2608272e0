// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/paymaster/client"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/schema"
	"github.com/toeirei/paymaster/internal/i18n"
)

var errInvalidNumber = errors.New("not a whole number")

// searchBar holds the search filters. The type selector starts at ANY,
// which sends no type filter.
type searchBar struct {
	types  []model.Variant
	typeAt int
	name   textinput.Model
	userID textinput.Model
	// focus: 0 type, 1 name, 2 user id.
	focus int
}

func newSearchBar() searchBar {
	name := textinput.New()
	name.Prompt = ""
	name.Width = 20
	name.Cursor.Style = focusedStyle
	userID := textinput.New()
	userID.Prompt = ""
	userID.Width = 8
	userID.CharLimit = 12
	userID.Cursor.Style = focusedStyle
	return searchBar{
		types:  append([]model.Variant{""}, schema.Variants()...),
		name:   name,
		userID: userID,
	}
}

// Query builds the request filters. An unparsable user id is an error.
func (s searchBar) Query() (client.SearchQuery, error) {
	q := client.SearchQuery{
		Type: s.types[s.typeAt],
		Name: strings.TrimSpace(s.name.Value()),
	}
	if raw := strings.TrimSpace(s.userID.Value()); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return client.SearchQuery{}, err
		}
		q.UserID = &id
	}
	return q, nil
}

func (s *searchBar) cycleType(delta int) {
	n := len(s.types)
	s.typeAt = ((s.typeAt+delta)%n + n) % n
}

func (s *searchBar) move(delta int) tea.Cmd {
	s.focus = ((s.focus+delta)%3 + 3) % 3
	return s.focusInputs()
}

func (s *searchBar) focusInputs() tea.Cmd {
	s.name.Blur()
	s.userID.Blur()
	switch s.focus {
	case 1:
		return s.name.Focus()
	case 2:
		return s.userID.Focus()
	}
	return nil
}

func (s *searchBar) blur() {
	s.name.Blur()
	s.userID.Blur()
}

func (s *searchBar) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case 1:
		s.name, cmd = s.name.Update(msg)
	case 2:
		s.userID, cmd = s.userID.Update(msg)
	}
	return cmd
}

func (s searchBar) view(active bool) string {
	label := func(i int, text string) string {
		if active && s.focus == i {
			return focusedLabelStyle.Render(text + ": ")
		}
		return labelStyle.Render(text + ": ")
	}
	typeName := string(s.types[s.typeAt])
	if typeName == "" {
		typeName = i18n.T("search.type_any")
	}
	if active && s.focus == 0 {
		typeName = focusedStyle.Render("‹ " + typeName + " ›")
	}
	return label(0, i18n.T("search.type")) + typeName + "  " +
		label(1, i18n.T("search.name")) + s.name.View() + "  " +
		label(2, i18n.T("search.user_id")) + s.userID.View()
}

func newRetrieveInput() textinput.Model {
	t := textinput.New()
	t.Prompt = ""
	t.Width = 10
	t.CharLimit = 12
	t.Cursor.Style = focusedStyle
	return t
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errInvalidNumber
	}
	return id, nil
}
