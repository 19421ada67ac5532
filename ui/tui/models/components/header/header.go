// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package header renders the logo, the navigation tabs and the theme
// indicator.
package header

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/internal/appstate"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/ui/tui/models/components/menu"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

const logo string = "" +
	"╔═╗╦═╗┬┌─┐┬ ┬\n" +
	"║═╬╠╦╝│├┤ └┬┘\n" +
	"╚═╝╩╚═┴└   ┴ "

type Model struct {
	size    util.Size
	state   *appstate.State
	tabs    *menu.Model
	compact bool
}

func New(state *appstate.State, tabs *menu.Model) *Model {
	m := &Model{state: state, tabs: tabs}
	tabs.Styles = func() menu.Styles {
		s := m.styles()
		return menu.Styles{Active: s.ActiveTab, Inactive: s.Tab}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tabs.Init()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	m.size.Update(msg)
	return m.tabs.Update(msg)
}

func (m Model) styles() theme.Styles {
	return theme.For(m.state.Theme()).Styles()
}

func (m Model) themeIndicator() string {
	name := i18n.T("theme.dark")
	if m.state.Theme() == appstate.ThemeLight {
		name = i18n.T("theme.light")
	}
	return i18n.T("theme.indicator", name)
}

func (m Model) View() string {
	s := m.styles()
	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false).
		BorderBottom(true).
		BorderForeground(theme.For(m.state.Theme()).Subtle).
		Width(m.size.Width)

	indicator := s.Subtle.Render(m.themeIndicator())
	tabs := m.tabs.View()

	var left string
	var right string
	if m.compact {
		left = s.Title.Render(i18n.T("app.title")) + "  " + tabs
		right = indicator
	} else {
		left = s.Title.Render(logo)
		right = lipgloss.JoinVertical(lipgloss.Right, tabs, "", indicator)
	}

	gap := max(1, m.size.Width-lipgloss.Width(left)-lipgloss.Width(right))
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)
	return frame.Render(lipgloss.NewStyle().MaxWidth(m.size.Width).Render(row))
}

func (m *Model) Focus(help.KeyMap) tea.Cmd { return nil }
func (m *Model) Blur()                     {}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)
