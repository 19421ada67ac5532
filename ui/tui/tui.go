// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/models/views/root"
)

// Run blocks until the user quits.
func Run(deps root.Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if deps.Context != nil {
		opts = append(opts, tea.WithContext(deps.Context))
	}
	_, err := tea.NewProgram(root.New(deps), opts...).Run()
	return err
}
