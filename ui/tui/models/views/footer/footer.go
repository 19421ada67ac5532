// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package footer shows the key help of the focused view and a status line
// with the device identifier.
package footer

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/internal/appstate"
	"github.com/qrify/qrify/ui/tui/models/components/keyhelp"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

type Model struct {
	baseKeyMap help.KeyMap
	state      *appstate.State
	version    string
	size       util.Size
	help       *keyhelp.Model
}

func New(baseKeyMap help.KeyMap, state *appstate.State, version string) *Model {
	return &Model{
		baseKeyMap: baseKeyMap,
		state:      state,
		version:    version,
		help:       keyhelp.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	// the base key map is shown after whatever the focused view announced
	if msg, ok := msg.(util.AnnounceKeyMapMsg); ok {
		return m.help.Update(util.AnnounceKeyMapMsg{
			KeyMap: util.MergeKeyMaps(msg.KeyMap, m.baseKeyMap),
		})
	}
	m.size.Update(msg)
	return m.help.Update(msg)
}

func (m Model) status() string {
	id, ready := m.state.DeviceID()
	if !ready {
		id = "-"
	} else if len(id) > 12 {
		id = id[:12] + "…"
	}
	return "device " + id + "  ·  " + m.version
}

func (m Model) View() string {
	p := theme.For(m.state.Theme())
	hPos := lipgloss.Left
	if m.help.Expanded {
		hPos = lipgloss.Center
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(m.size.Width, hPos, m.help.View()),
		lipgloss.PlaceHorizontal(m.size.Width, lipgloss.Right,
			lipgloss.NewStyle().Foreground(p.Subtle).Render(m.status())),
	)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Subtle).
		Render(body)
}

func (m *Model) Focus(help.KeyMap) tea.Cmd { return nil }
func (m *Model) Blur()                     {}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)

func (m *Model) ToggleExpanded() {
	m.help.ToggleExpanded()
}
