// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package dialog provides the confirm and alert popups.
package dialog

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/ui/tui/models/components/popup"
	"github.com/qrify/qrify/ui/tui/models/helpers/form"
	forminput "github.com/qrify/qrify/ui/tui/models/helpers/form/input"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

const maxWidth int = 48

// buttons carry no values
type result struct{}

type KeyMap struct {
	Cancel key.Binding
}

func (km KeyMap) ShortHelp() []key.Binding  { return []key.Binding{km.Cancel} }
func (km KeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{km.Cancel}} }

type Model struct {
	Message string
	palette theme.Palette
	form    form.Form[result]
	keyMap  KeyMap
	size    util.Size
}

// Confirm asks a yes/no question. onConfirm runs after the popup closed
// and only when the user agreed.
func Confirm(message string, p theme.Palette, onConfirm tea.Cmd) *util.Model {
	m := newModel(message, p,
		form.WithInputInline[result]("yes", forminput.NewButton(i18n.T("dialog.yes"))),
		form.WithInputInline[result]("no", forminput.NewCancelButton(i18n.T("dialog.no"))),
		form.WithOnSubmit(func(result, error) tea.Cmd {
			return tea.Sequence(popup.Close(), onConfirm)
		}),
	)
	return util.ModelPointer(m)
}

// Alert shows message until it is acknowledged.
func Alert(message string, p theme.Palette) *util.Model {
	m := newModel(message, p,
		form.WithInput[result]("ok", forminput.NewButton(i18n.T("dialog.ok"))),
		form.WithOnSubmit(func(result, error) tea.Cmd {
			return popup.Close()
		}),
	)
	return util.ModelPointer(m)
}

func newModel(message string, p theme.Palette, opts ...form.NewOpt[result]) *Model {
	opts = append(opts, form.WithOnCancel[result](popup.Close))
	m := &Model{
		Message: message,
		palette: p,
		form:    form.New(opts...),
		keyMap: KeyMap{
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", i18n.T("help.cancel")),
			),
		},
	}
	m.form.SetPalette(p)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Model) Update(msg tea.Msg) (cmd tea.Cmd) {
	if m.size.Update(msg) {
		m.form, cmd = m.form.Update(tea.WindowSizeMsg{Width: m.width(), Height: 3})
		return cmd
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Cancel) {
			return m.form.Cancel()
		}
	case theme.ChangedMsg:
		m.palette = msg.Palette
		m.form.SetPalette(msg.Palette)
		return nil
	}
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m Model) width() int {
	if m.size.Width <= 0 {
		return maxWidth
	}
	return min(maxWidth, m.size.Width)
}

func (m Model) View() string {
	text := lipgloss.NewStyle().
		Foreground(m.palette.Text).
		Width(m.width()).
		Align(lipgloss.Center).
		Render(m.Message)
	buttons := lipgloss.PlaceHorizontal(m.width(), lipgloss.Center, m.form.View())
	return lipgloss.JoinVertical(lipgloss.Center, text, "", buttons)
}

func (m *Model) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	return m.form.Focus(util.MergeKeyMaps(baseKeyMap, m.keyMap))
}

func (m *Model) Blur() {
	m.form.Blur()
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)
