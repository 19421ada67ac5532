// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package forminput

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/ui/tui/models/helpers/form"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

type Text struct {
	Label       string
	Placeholder string
	// SubmitOnEnter submits the form on enter instead of moving on.
	SubmitOnEnter bool
	KeyMap        TextKeyMap

	input        textinput.Model
	focused      bool
	labelStyle   lipgloss.Style
	focusedStyle lipgloss.Style
}

type TextKeyMap struct {
	Enter key.Binding
}

func (k TextKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Enter} }

func (k TextKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Enter}} }

func NewText(label, placeholder string) *Text {
	t := &Text{
		Label:       label,
		Placeholder: placeholder,
		KeyMap: TextKeyMap{
			Enter: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", i18n.T("help.next_field")),
			),
		},
		input: textinput.New(),
	}
	t.SetPalette(theme.Dark)
	return t
}

// NewSubmitText submits the form on enter.
func NewSubmitText(label, placeholder, submitHelp string) *Text {
	t := NewText(label, placeholder)
	t.SubmitOnEnter = true
	t.KeyMap.Enter.SetHelp("enter", submitHelp)
	return t
}

func (t *Text) SetPalette(p theme.Palette) {
	t.labelStyle = lipgloss.NewStyle().Foreground(p.Subtle)
	t.focusedStyle = lipgloss.NewStyle().Foreground(p.Highlight).Bold(true)
	t.input.PromptStyle = lipgloss.NewStyle().Foreground(p.Highlight)
	t.input.TextStyle = lipgloss.NewStyle().Foreground(p.Text)
	t.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(p.Subtle)
}

func (t *Text) Blur() {
	t.input.Blur()
	t.focused = false
}

func (t *Text) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	t.focused = true
	return tea.Batch(t.input.Focus(), util.AnnounceKeyMapCmd(baseKeyMap, t.KeyMap))
}

func (t *Text) Get() any {
	return t.input.Value()
}

func (t *Text) Init() tea.Cmd {
	return textinput.Blink
}

func (t *Text) Reset() {
	t.input.SetValue("")
}

func (t *Text) Set(value any) {
	if value, ok := value.(string); ok {
		t.input.SetValue(value)
	}
}

func (t *Text) Update(msg tea.Msg) (tea.Cmd, form.Action) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, t.KeyMap.Enter) {
		if t.SubmitOnEnter {
			return nil, form.ActionSubmit
		}
		return nil, form.ActionNext
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd, form.ActionNone
}

func (t *Text) View(width int) string {
	label := t.labelStyle.Width(width).Render(t.Label)
	if t.focused {
		label = t.focusedStyle.Render(t.Label)
	}

	t.input.Width = max(1, width-4)
	t.input.Placeholder = t.Placeholder

	return lipgloss.JoinVertical(lipgloss.Left, label, t.input.View())
}

var (
	_ form.FormInput = (*Text)(nil)
	_ form.Themed    = (*Text)(nil)
)
