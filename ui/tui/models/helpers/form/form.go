// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package form composes inputs into a focusable form whose values are
// decoded into a typed result.
package form

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-viper/mapstructure/v2"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
	"github.com/qrify/qrify/util/slicest"
)

type FormInput interface {
	util.Focusable
	Reset()
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, Action)
	Set(any)
	// Get returns nil for inputs without a value, like buttons.
	Get() any
	View(width int) string
}

// Themed inputs restyle themselves from the palette before rendering.
type Themed interface {
	SetPalette(p theme.Palette)
}

type formItem struct {
	id    string
	input FormInput
}

type formRow struct {
	items []int
}

type Form[T any] struct {
	OnSubmit         func(result T, err error) tea.Cmd
	OnCancel         func() tea.Cmd
	ResetAfterSubmit bool

	items       []formItem
	rows        []formRow
	activeIndex int
	focused     bool
	baseKeyMap  help.KeyMap
	keyMap      KeyMap
	size        util.Size
}

func (f Form[T]) Init() tea.Cmd {
	return tea.Batch(slicest.Map(f.items, func(item formItem) tea.Cmd {
		return item.input.Init()
	})...)
}

func (f Form[T]) Update(msg tea.Msg) (Form[T], tea.Cmd) {
	if f.size.Update(msg) {
		return f, nil
	}
	if !f.focused || len(f.items) == 0 {
		return f, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, f.keyMap.Next):
			return f, f.changeActiveIndex(1)
		case key.Matches(kmsg, f.keyMap.Prev):
			return f, f.changeActiveIndex(-1)
		}
	}

	return f, f.updateActiveInput(msg)
}

func (f Form[T]) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		slicest.Map(f.rows, func(row formRow) string {
			width := f.size.Width / len(row.items)
			return lipgloss.JoinHorizontal(
				lipgloss.Center,
				slicest.Map(row.items, func(i int) string {
					return f.items[i].input.View(width)
				})...,
			)
		})...,
	)
}

func (f *Form[T]) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	f.focused, f.baseKeyMap = true, baseKeyMap
	if len(f.items) == 0 {
		return util.AnnounceKeyMapCmd(baseKeyMap)
	}
	return f.items[f.activeIndex].input.Focus(f.inputBaseKeyMap())
}

func (f *Form[T]) Blur() {
	f.focused, f.baseKeyMap = false, nil
	if len(f.items) > 0 {
		f.items[f.activeIndex].input.Blur()
	}
}

// *Form implements util.Focusable
var _ util.Focusable = (*Form[any])(nil)

func (f *Form[T]) Focused() bool { return f.focused }

// SetPalette restyles all themed inputs.
func (f *Form[T]) SetPalette(p theme.Palette) {
	for _, item := range f.items {
		if themed, ok := item.input.(Themed); ok {
			themed.SetPalette(p)
		}
	}
}

// Reset clears all inputs and moves the focus back to the first one.
func (f *Form[T]) Reset() tea.Cmd {
	for _, item := range f.items {
		item.input.Reset()
	}
	return f.changeActiveIndex(-f.activeIndex)
}

func (f *Form[T]) Submit() tea.Cmd {
	data, err := f.Get()
	var resetCmd tea.Cmd
	if f.ResetAfterSubmit && err == nil {
		resetCmd = f.Reset()
	}
	var submitCmd tea.Cmd
	if f.OnSubmit != nil {
		submitCmd = f.OnSubmit(data, err)
	}
	return tea.Batch(resetCmd, submitCmd)
}

func (f *Form[T]) Cancel() tea.Cmd {
	if f.OnCancel == nil {
		return nil
	}
	return f.OnCancel()
}

func (f *Form[T]) updateActiveInput(msg tea.Msg) tea.Cmd {
	updateCmd, action := f.items[f.activeIndex].input.Update(msg)

	var actionCmd tea.Cmd
	switch action {
	case ActionNext:
		actionCmd = f.changeActiveIndex(1)
	case ActionPrev:
		actionCmd = f.changeActiveIndex(-1)
	case ActionSubmit:
		actionCmd = f.Submit()
	case ActionCancel:
		actionCmd = f.Cancel()
	}

	return tea.Batch(updateCmd, actionCmd)
}

func (f *Form[T]) inputBaseKeyMap() help.KeyMap {
	if len(f.items) < 2 {
		return f.baseKeyMap
	}
	return util.MergeKeyMaps(f.baseKeyMap, f.keyMap)
}

// changeActiveIndex moves the focus by delta, wrapping around.
func (f *Form[T]) changeActiveIndex(delta int) tea.Cmd {
	n := len(f.items)
	if n == 0 {
		return nil
	}
	old := f.activeIndex
	f.activeIndex = ((old+delta)%n + n) % n
	if !f.focused {
		return nil
	}
	if old != f.activeIndex {
		f.items[old].input.Blur()
	}
	return f.items[f.activeIndex].input.Focus(f.inputBaseKeyMap())
}

// Get decodes the values of all inputs, keyed by their ids, into T.
func (f *Form[T]) Get() (T, error) {
	var data T
	values := make(map[string]any, len(f.items))
	for _, item := range f.items {
		if v := item.input.Get(); v != nil {
			values[item.id] = v
		}
	}
	err := mapstructure.Decode(values, &data)
	return data, err
}

func (f *Form[T]) Set(data T) error {
	values := make(map[string]any, len(f.items))
	if err := mapstructure.Decode(data, &values); err != nil {
		return err
	}
	for _, item := range f.items {
		if value, ok := values[item.id]; ok {
			item.input.Set(value)
		}
	}
	return nil
}
