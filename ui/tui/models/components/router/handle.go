// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package router

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (r *Router) handlePush(msg PushMsg) tea.Cmd {
	(*r.activeModelGet()).Blur()
	r.modelStack = append(r.modelStack, msg.Model)
	return r.activeModelInit()
}

func (r *Router) handlePop(msg PopMsg) tea.Cmd {
	for range msg.Count {
		if len(r.modelStack) <= 1 {
			break
		}
		(*r.activeModelPop()).Blur()
	}
	return r.activeModelFocus()
}

func (r *Router) handleChange(msg ChangeMsg) tea.Cmd {
	if msg.Model == r.activeModelGet() {
		return nil
	}
	(*r.activeModelGet()).Blur()
	r.activeModelSet(msg.Model)
	return tea.Batch(
		r.activeModelInit(),
		func() tea.Msg { return ChangedMsg{Model: msg.Model} },
	)
}
