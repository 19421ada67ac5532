// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package theme defines the light and dark palettes and the shared styles
// built from them.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/internal/appstate"
)

type Palette struct {
	Text      lipgloss.Color
	Subtle    lipgloss.Color
	Highlight lipgloss.Color
	Special   lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Surface   lipgloss.Color
	OnAccent  lipgloss.Color
}

var (
	Dark = Palette{
		Text:      lipgloss.Color("252"),
		Subtle:    lipgloss.Color("240"), // muted gray
		Highlight: lipgloss.Color("81"),  // teal
		Special:   lipgloss.Color("208"), // orange
		Error:     lipgloss.Color("196"),
		Success:   lipgloss.Color("40"),
		Surface:   lipgloss.Color("237"),
		OnAccent:  lipgloss.Color("231"),
	}
	Light = Palette{
		Text:      lipgloss.Color("235"),
		Subtle:    lipgloss.Color("245"),
		Highlight: lipgloss.Color("25"), // deep blue
		Special:   lipgloss.Color("166"),
		Error:     lipgloss.Color("160"),
		Success:   lipgloss.Color("28"),
		Surface:   lipgloss.Color("254"),
		OnAccent:  lipgloss.Color("231"),
	}
)

func For(t appstate.Theme) Palette {
	if t == appstate.ThemeLight {
		return Light
	}
	return Dark
}

// Styles are derived from a palette on every render, so toggling the theme
// takes effect immediately.
type Styles struct {
	Title      lipgloss.Style
	Text       lipgloss.Style
	Subtle     lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Special    lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	StatCard   lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Dialog     lipgloss.Style
	// QR keeps black on white whatever the theme so codes stay scannable.
	QR lipgloss.Style
}

func (p Palette) Styles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Subtle).
		Padding(0, 1)
	return Styles{
		Title:      lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
		Text:       lipgloss.NewStyle().Foreground(p.Text),
		Subtle:     lipgloss.NewStyle().Foreground(p.Subtle),
		Error:      lipgloss.NewStyle().Foreground(p.Error),
		Success:    lipgloss.NewStyle().Foreground(p.Success),
		Special:    lipgloss.NewStyle().Foreground(p.Special),
		Card:       card,
		ActiveCard: card.BorderForeground(p.Highlight),
		StatCard: card.
			BorderForeground(p.Highlight).
			Padding(0, 2).
			Align(lipgloss.Center),
		Tab: lipgloss.NewStyle().
			Foreground(p.Subtle).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.OnAccent).
			Background(p.Highlight).
			Bold(true).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.Highlight).
			Padding(1, 2),
		QR: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFFFF")),
	}
}

// ChangedMsg is broadcast after the theme was toggled.
type ChangedMsg struct {
	Theme   appstate.Theme
	Palette Palette
}
