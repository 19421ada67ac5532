// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package menu renders the navigation tabs. Selection is driven by the
// owner of the menu through Select, the menu itself takes no input.
package menu

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/ui/tui/util"
	"github.com/qrify/qrify/util/slicest"
)

type Model struct {
	Items  []Item
	Active int
	Styles func() Styles
	size   util.Size
}

func New(items ...Item) *Model {
	return &Model{Items: items}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	m.size.Update(msg)
	return nil
}

func (m Model) View() string {
	var styles Styles
	if m.Styles != nil {
		styles = m.Styles()
	}
	return lipgloss.NewStyle().
		MaxWidth(max(0, m.size.Width)).
		Render(lipgloss.JoinHorizontal(
			lipgloss.Top,
			slicest.MapI(m.Items, func(i int, item Item) string {
				return item.View(i == m.Active, styles)
			})...,
		))
}

func (m *Model) Focus(help.KeyMap) tea.Cmd { return nil }
func (m *Model) Blur()                     {}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)

// Select marks the item with id as active and returns its command.
func (m *Model) Select(id string) tea.Cmd {
	i := m.index(id)
	if i < 0 {
		return nil
	}
	m.Active = i
	item := m.Items[i]
	if item.Cmd != nil {
		return item.Cmd
	}
	return func() tea.Msg { return ItemSelected{ID: item.ID} }
}

// SetActive only moves the highlight.
func (m *Model) SetActive(id string) {
	if i := m.index(id); i >= 0 {
		m.Active = i
	}
}

func (m *Model) ActiveID() string {
	if m.Active < 0 || m.Active >= len(m.Items) {
		return ""
	}
	return m.Items[m.Active].ID
}

func (m *Model) index(id string) int {
	for i, item := range m.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
