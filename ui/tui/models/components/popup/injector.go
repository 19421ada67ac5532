// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package popup layers modal models over a child model. While a popup is
// open, it receives all input and the child is greyed out behind it.
package popup

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

const (
	reservedHeight int = 2
	reservedWidth  int = 6
)

type popup struct {
	model   *util.Model
	onClose func(*util.Model) tea.Cmd
}

type Injector struct {
	child      *util.Model
	popups     []popup
	size       util.Size
	palette    func() theme.Palette
	focused    bool
	baseKeyMap help.KeyMap
}

// NewInjector wraps child. palette is asked on every render, nil means dark.
func NewInjector(child *util.Model, palette func() theme.Palette) *Injector {
	if palette == nil {
		palette = func() theme.Palette { return theme.Dark }
	}
	return &Injector{
		child:   child,
		palette: palette,
	}
}

func (m Injector) Init() tea.Cmd {
	return (*m.child).Init()
}

func (m *Injector) Update(msg tea.Msg) tea.Cmd {
	if m.size.Update(msg) {
		cmds := []tea.Cmd{(*m.child).Update(msg)}
		for _, p := range m.popups {
			cmds = append(cmds, (*p.model).Update(m.popupSize()))
		}
		return tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case openMsg:
		return m.open(popup{model: msg.Model, onClose: msg.OnClose})
	case closeMsg:
		return m.close()
	case tea.KeyMsg, tea.MouseMsg:
		return (*m.activeModel()).Update(msg)
	}

	// everything else keeps flowing to the child, so background loads finish
	cmds := []tea.Cmd{(*m.child).Update(msg)}
	if len(m.popups) > 0 {
		cmds = append(cmds, (*m.activeModel()).Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m Injector) View() string {
	childView := (*m.child).View()
	if len(m.popups) == 0 {
		return childView
	}

	p := m.palette()
	popupView := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Highlight).
		Margin(0, 1).
		Render((*m.activeModel()).View())
	childView = lipgloss.NewStyle().
		Foreground(p.Surface).
		Render(ansi.Strip(childView))

	return overlay(childView, popupView)
}

func (m *Injector) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	m.focused = true
	m.baseKeyMap = baseKeyMap
	return (*m.activeModel()).Focus(baseKeyMap)
}

func (m *Injector) Blur() {
	m.focused = false
	(*m.activeModel()).Blur()
}

// Open reports whether a popup is shown.
func (m *Injector) Open() bool {
	return len(m.popups) > 0
}

// *Injector implements util.Model
var _ util.Model = (*Injector)(nil)

func (m *Injector) popupSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  max(0, m.size.Width-reservedWidth),
		Height: max(0, m.size.Height-reservedHeight),
	}
}

func (m *Injector) open(p popup) tea.Cmd {
	(*m.activeModel()).Blur()
	m.popups = append(m.popups, p)
	return tea.Sequence(
		(*p.model).Init(),
		(*p.model).Update(m.popupSize()),
		m.focusActiveModel(),
	)
}

func (m *Injector) close() tea.Cmd {
	if len(m.popups) == 0 {
		return nil
	}
	top := m.popups[len(m.popups)-1]
	(*top.model).Blur()
	m.popups = m.popups[:len(m.popups)-1]

	var onCloseCmd tea.Cmd
	if top.onClose != nil {
		onCloseCmd = top.onClose(top.model)
	}
	return tea.Batch(m.focusActiveModel(), onCloseCmd)
}

func (m *Injector) activeModel() *util.Model {
	if len(m.popups) > 0 {
		return m.popups[len(m.popups)-1].model
	}
	return m.child
}

func (m *Injector) focusActiveModel() tea.Cmd {
	if !m.focused {
		return nil
	}
	return (*m.activeModel()).Focus(m.baseKeyMap)
}

// overlay centers fg on top of bg, cutting bg lines with ansi awareness.
func overlay(bg, fg string) string {
	bgWidth, bgHeight := lipgloss.Size(bg)
	fg = lipgloss.NewStyle().MaxWidth(bgWidth).MaxHeight(bgHeight).Render(fg)
	fgWidth, fgHeight := lipgloss.Size(fg)

	left := (bgWidth - fgWidth) / 2
	top := (bgHeight - fgHeight) / 2

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	for i, line := range fgLines {
		row := i + top
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLeft := ansi.Truncate(bgLines[row], left, "")
		if pad := left - ansi.StringWidth(bgLeft); pad > 0 {
			bgLeft += strings.Repeat(" ", pad)
		}
		bgRight := ansi.TruncateLeft(bgLines[row], left+fgWidth, "")
		bgLines[row] = bgLeft + line + bgRight
	}
	return strings.Join(bgLines, "\n")
}
