// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/paymaster/core/console"
	"github.com/toeirei/paymaster/core/modal"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/core/notify"
	"github.com/toeirei/paymaster/core/results"
	"github.com/toeirei/paymaster/core/task"
	"github.com/toeirei/paymaster/internal/i18n"
	"github.com/toeirei/paymaster/internal/logging"
	"github.com/toeirei/paymaster/ui/tui/overlay"
)

// effectMsg carries the effect of a finished task back to the loop.
type effectMsg struct {
	effect task.Effect
}

type focusArea int

const (
	focusTable focusArea = iota
	focusSearch
	focusRetrieve
)

// Model is the root bubbletea model of the console.
type Model struct {
	ctx      context.Context
	console  *console.Console
	dialog   *dialogForm
	notes    *notify.Channel
	listKeys listKeyMap
	keys     inputKeyMap
	help     help.Model
	search   searchBar
	retrieve textinput.Model
	table    table.Model
	focus    focusArea
	width    int
	height   int
	// copy writes to the system clipboard.
	copy func(string) error
}

// Builder creates the console around the dialog surface of the model.
type Builder func(form modal.Form, opts ...console.Option) (*console.Console, error)

// NewModel builds the model. build receives the dialog widget and an
// observer option that keeps the table in step with the result list.
func NewModel(ctx context.Context, notes *notify.Channel, build Builder) (*Model, error) {
	m := &Model{
		ctx:      ctx,
		dialog:   newDialogForm(),
		notes:    notes,
		listKeys: newListKeyMap(),
		keys:     newInputKeyMap(),
		help:     help.New(),
		search:   newSearchBar(),
		retrieve: newRetrieveInput(),
		copy:     clipboard.WriteAll,
	}
	c, err := build(m.dialog, console.WithObserver(m.refreshRows))
	if err != nil {
		return nil, err
	}
	m.console = c

	m.table = table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.table.SetStyles(tableStyles())
	return m, nil
}

func columns(width int) []table.Column {
	detail := width - 8 - 14 - 20 - 9 - 9 - 12
	if detail < 16 {
		detail = 16
	}
	return []table.Column{
		{Title: i18n.T("column.id"), Width: 8},
		{Title: i18n.T("column.type"), Width: 14},
		{Title: i18n.T("column.name"), Width: 20},
		{Title: i18n.T("column.user_id"), Width: 9},
		{Title: i18n.T("column.default"), Width: 9},
		{Title: i18n.T("column.detail"), Width: detail},
	}
}

// refreshRows rebuilds the table from the result list.
func (m *Model) refreshRows() {
	records := m.console.Results().Records()
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		def := ""
		if r.IsDefault {
			def = "★"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(r.ID),
			string(r.Type),
			r.Name,
			strconv.Itoa(r.UserID),
			def,
			detail(r),
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// detail summarises the variant fields of r; card numbers are masked.
func detail(r model.Record) string {
	switch r.Type {
	case model.PayPal:
		return r.Email
	case model.CreditCard:
		number := r.CardNumber
		if len(number) > 4 {
			number = "•••• " + number[len(number)-4:]
		}
		return strings.TrimSpace(fmt.Sprintf("%s %s %s %02d/%d", r.FirstName, r.LastName, number, r.ExpiryMonth, r.ExpiryYear))
	}
	return ""
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width - 4))
		if h := msg.Height - 14; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	case effectMsg:
		msg.effect.Apply()
		return m, nil
	case notificationsMsg:
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			m.console.Dispose()
			return m, tea.Quit
		}
		if m.console.Modal().IsOpen() {
			return m, m.updateDialog(msg)
		}
		switch m.focus {
		case focusSearch:
			return m, m.updateSearch(msg)
		case focusRetrieve:
			return m, m.updateRetrieve(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.console.Close()
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.dialog.move(1)
	case key.Matches(msg, m.keys.Prev):
		return m.dialog.move(-1)
	case key.Matches(msg, m.keys.Variant) && m.dialog.focused() == typeField:
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		next := nextVariant(m.console.Modal().Variant(), delta)
		if err := m.console.Modal().SelectVariant(string(next)); err != nil {
			m.notes.Error(err.Error())
		}
		return nil
	case key.Matches(msg, m.keys.Submit):
		if !m.dialog.onSubmit() {
			return m.dialog.move(1)
		}
		t, err := m.console.Submit()
		if err != nil {
			m.notes.Error(err.Error())
			return nil
		}
		return m.run(t)
	}
	return m.dialog.update(msg)
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.search.blur()
		m.focus = focusTable
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.search.move(1)
	case key.Matches(msg, m.keys.Prev):
		return m.search.move(-1)
	case key.Matches(msg, m.keys.Variant) && m.search.focus == 0:
		if msg.String() == "left" {
			m.search.cycleType(-1)
		} else {
			m.search.cycleType(1)
		}
		return nil
	case key.Matches(msg, m.keys.Submit):
		q, err := m.search.Query()
		if err != nil {
			m.notes.Error(i18n.T("search.invalid_user_id"))
			return nil
		}
		m.search.blur()
		m.focus = focusTable
		return m.run(m.console.Search(q))
	}
	return m.search.update(msg)
}

func (m *Model) updateRetrieve(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.retrieve.Blur()
		m.focus = focusTable
		return nil
	case key.Matches(msg, m.keys.Submit):
		id, err := parseID(m.retrieve.Value())
		if err != nil {
			m.notes.Error(i18n.T("retrieve.invalid_id"))
			return nil
		}
		m.retrieve.Blur()
		m.focus = focusTable
		return m.run(m.console.Retrieve(id))
	}
	var cmd tea.Cmd
	m.retrieve, cmd = m.retrieve.Update(msg)
	return cmd
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.listKeys.Quit):
		m.console.Dispose()
		return m, tea.Quit
	case key.Matches(msg, m.listKeys.Search):
		m.focus = focusSearch
		return m, m.search.focusInputs()
	case key.Matches(msg, m.listKeys.Retrieve):
		m.focus = focusRetrieve
		return m, m.retrieve.Focus()
	case key.Matches(msg, m.listKeys.New):
		if err := m.console.OpenCreate(); err != nil {
			m.notes.Error(err.Error())
		}
		return m, nil
	}

	row, ok := m.selected()
	switch {
	case key.Matches(msg, m.listKeys.Edit):
		if ok {
			row.Edit()
		}
		return m, nil
	case key.Matches(msg, m.listKeys.Delete):
		if ok {
			return m, m.run(row.Delete)
		}
		return m, nil
	case key.Matches(msg, m.listKeys.SetDefault):
		if ok {
			return m, m.run(row.SetDefault)
		}
		return m, nil
	case key.Matches(msg, m.listKeys.Copy):
		if ok {
			m.copyID(row.Record.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the row under the table cursor.
func (m *Model) selected() (results.Row, bool) {
	return m.console.Results().At(m.table.Cursor())
}

func (m *Model) copyID(id int) {
	if err := m.copy(strconv.Itoa(id)); err != nil {
		logging.Warnf("tui: clipboard: %v", err)
		m.notes.Error(i18n.T("list.copy_failed", err.Error()))
		return
	}
	m.notes.Success(i18n.T("list.copied", id))
}

// run turns t into a command; the effect comes back as an effectMsg.
func (m *Model) run(t task.Task) tea.Cmd {
	if t == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return effectMsg{effect: t(ctx)}
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("app.title")) + helpStyle.Render(i18n.T("app.subtitle")))
	b.WriteString("\n\n")
	b.WriteString(m.search.view(m.focus == focusSearch && !m.console.Modal().IsOpen()))
	b.WriteString("\n")
	retrieveLabel := labelStyle
	if m.focus == focusRetrieve {
		retrieveLabel = focusedLabelStyle
	}
	b.WriteString(retrieveLabel.Render(i18n.T("retrieve.id")+": ") + m.retrieve.View())
	b.WriteString("\n\n")

	if m.console.Results().Len() == 0 {
		b.WriteString(helpStyle.Render(i18n.T("list.empty")))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	if panel := renderNotifications(m.notes.Entries()); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}

	var keys help.KeyMap = m.listKeys
	if m.focus != focusTable || m.console.Modal().IsOpen() {
		keys = m.keys
	}
	b.WriteString(m.help.View(keys))

	screen := docStyle.Render(b.String())
	if !m.console.Modal().IsOpen() {
		return screen
	}
	if m.width > 0 && m.height > 0 {
		screen = lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, screen)
	}
	return overlay.Place(overlay.Dim(screen), m.dialog.view())
}

var _ tea.Model = (*Model)(nil)
