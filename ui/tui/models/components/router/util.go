// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/util"
)

func (r *Router) activeModelGet() *util.Model {
	return r.modelStack[len(r.modelStack)-1]
}

func (r *Router) activeModelSet(model *util.Model) {
	r.modelStack[len(r.modelStack)-1] = model
}

func (r *Router) activeModelPop() *util.Model {
	model := r.activeModelGet()
	r.modelStack = r.modelStack[:len(r.modelStack)-1]
	return model
}

func (r *Router) activeModelUpdate(msg tea.Msg) tea.Cmd {
	return (*r.activeModelGet()).Update(msg)
}

func (r *Router) activeModelFocus() tea.Cmd {
	if !r.focused {
		return nil
	}
	return (*r.activeModelGet()).Focus(r.baseKeyMap)
}

func (r *Router) activeModelInit() tea.Cmd {
	return tea.Sequence(
		(*r.activeModelGet()).Init(),
		r.activeModelUpdate(InitMsg{Control: Control{rid: r.id}}),
		r.activeModelUpdate(r.size.ToMsg()),
		r.activeModelFocus(),
	)
}
