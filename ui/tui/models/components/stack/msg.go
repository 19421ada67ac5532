// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package stack

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/util"
	"github.com/qrify/qrify/util/slicest"
)

// MsgFilter may rewrite or drop (return nil) a message before it reaches model.
type MsgFilter = func(model util.Model, msg tea.Msg) tea.Msg

func applyMessageFilters(model util.Model, msg tea.Msg, msgFilters []MsgFilter) tea.Msg {
	return slicest.ReduceD(msgFilters, msg, func(msgFilter MsgFilter, msg tea.Msg) tea.Msg {
		if msg == nil {
			return nil
		}
		return msgFilter(model, msg)
	})
}

// KeysOnlyWhenFocused drops key messages for items without focus.
func (s *Model) KeysOnlyWhenFocused() MsgFilter {
	return func(model util.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(tea.KeyMsg); !ok || s.focussedIndex == FocusAll() {
			return msg
		}
		if s.focussedIndex >= 0 && int(s.focussedIndex) < len(s.items) && *s.items[s.focussedIndex].Model == model {
			return msg
		}
		return nil
	}
}
