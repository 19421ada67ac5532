// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package util

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/util/slicest"
)

// Focusable models receive the key map of their parents on focus and
// announce the merged key map for the footer.
type Focusable interface {
	Focus(baseKeyMap help.KeyMap) tea.Cmd
	Blur()
}

type AnnounceKeyMapMsg struct {
	KeyMap help.KeyMap
}

// AnnounceKeyMapCmd announces all non nil key maps merged into one.
func AnnounceKeyMapCmd(keyMaps ...help.KeyMap) tea.Cmd {
	return func() tea.Msg {
		return AnnounceKeyMapMsg{KeyMap: MergeKeyMaps(keyMaps...)}
	}
}

func MergeKeyMaps(keymaps ...help.KeyMap) help.KeyMap {
	return MergedKeyMaps{KeyMaps: slicest.Filter(keymaps, func(k help.KeyMap) bool { return k != nil })}
}

type MergedKeyMaps struct {
	KeyMaps []help.KeyMap
}

func (m MergedKeyMaps) ShortHelp() []key.Binding {
	return slices.Concat(slicest.Map(m.KeyMaps, help.KeyMap.ShortHelp)...)
}

func (m MergedKeyMaps) FullHelp() [][]key.Binding {
	return slices.Concat(slicest.Map(m.KeyMaps, help.KeyMap.FullHelp)...)
}

var _ help.KeyMap = (*MergedKeyMaps)(nil)
