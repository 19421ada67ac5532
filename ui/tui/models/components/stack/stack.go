// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package stack

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/ui/tui/util"
	"github.com/qrify/qrify/util/slicest"
)

const (
	Vertical   Orientation = true
	Horizontal Orientation = false
)

type Orientation bool

// Model lays out its items next to or below each other and routes messages
// and focus to them.
type Model struct {
	Orientation Orientation
	Align       lipgloss.Position
	Gap         int
	MsgFilters  []MsgFilter

	items         []Item
	size          util.Size
	focussedIndex Focus
	baseKeyMap    help.KeyMap
}

type Item struct {
	Model      *util.Model
	SizeConfig SizeConfig
	MsgFilters []MsgFilter
	size       int
	oldSize    int
}

func (s Model) Init() tea.Cmd {
	return tea.Batch(slicest.Map(s.items, func(item Item) tea.Cmd {
		return (*item.Model).Init()
	})...)
}

func (s *Model) Update(msg tea.Msg) tea.Cmd {
	if s.size.Update(msg) {
		s.calculateItemSizes()
		return tea.Batch(s.updateResizedItems(true)...)
	}

	cmds := slicest.Map(s.items, func(item Item) tea.Cmd {
		itemMsg := applyMessageFilters(*item.Model, msg, item.MsgFilters)
		itemMsg = applyMessageFilters(*item.Model, itemMsg, s.MsgFilters)
		if itemMsg == nil {
			return nil
		}
		return (*item.Model).Update(itemMsg)
	})

	// content may have changed the wanted size of items
	s.calculateItemSizes()
	cmds = append(cmds, s.updateResizedItems(false)...)
	return tea.Batch(cmds...)
}

// Relayout resizes the items after their wanted size changed.
func (s *Model) Relayout() tea.Cmd {
	s.calculateItemSizes()
	return tea.Batch(s.updateResizedItems(false)...)
}

func (s Model) View() string {
	joiner := lipgloss.JoinHorizontal
	styler := func(size int, margin int) lipgloss.Style {
		return lipgloss.NewStyle().
			Width(size + margin).
			Height(s.size.Height).
			MaxWidth(size + margin).
			MaxHeight(s.size.Height).
			MarginLeft(margin)
	}
	if s.Orientation == Vertical {
		joiner = lipgloss.JoinVertical
		styler = func(size int, margin int) lipgloss.Style {
			return lipgloss.NewStyle().
				Width(s.size.Width).
				Height(size + margin).
				MaxWidth(s.size.Width).
				MaxHeight(size + margin).
				MarginTop(margin)
		}
	}

	return joiner(
		s.Align,
		slicest.MapI(s.items, func(i int, item Item) string {
			if item.size == 0 {
				return ""
			}
			// no gap before the first item
			margin := s.Gap * min(i, 1)
			return styler(item.size, margin).Render((*item.Model).View())
		})...,
	)
}

func (s *Model) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	s.baseKeyMap = baseKeyMap
	if len(s.items) == 0 {
		return util.AnnounceKeyMapCmd(baseKeyMap)
	}
	if s.focussedIndex == FocusAll() {
		return tea.Batch(slicest.Map(s.items, func(item Item) tea.Cmd {
			return (*item.Model).Focus(baseKeyMap)
		})...)
	}
	return (*s.items[s.focussedIndex].Model).Focus(baseKeyMap)
}

func (s *Model) Blur() {
	if len(s.items) == 0 {
		return
	}
	if s.focussedIndex == FocusAll() {
		for _, item := range s.items {
			(*item.Model).Blur()
		}
		return
	}
	(*s.items[s.focussedIndex].Model).Blur()
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)

type Focus int

func FocusAll() Focus        { return -1 }
func FocusIndex(i int) Focus { return Focus(i) }

func (s *Model) FocusedIndex() Focus { return s.focussedIndex }

// SetFocus moves the focus and announces the new key map.
func (s *Model) SetFocus(focus Focus) tea.Cmd {
	s.Blur()
	s.focussedIndex = util.Clamp(FocusAll(), focus, Focus(len(s.items)-1))
	return s.Focus(s.baseKeyMap)
}
