// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package generate is the view to create a QR code and act on it.
package generate

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/actions"
	"github.com/qrify/qrify/internal/appstate"
	genflow "github.com/qrify/qrify/internal/flows/generate"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/internal/logging"
	"github.com/qrify/qrify/internal/qrcode"
	"github.com/qrify/qrify/ui/tui/models/helpers/form"
	forminput "github.com/qrify/qrify/ui/tui/models/helpers/form/input"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

// NoticeDuration is how long "Copied!" and similar notices stay visible.
const NoticeDuration = 2 * time.Second

// panels are placed side by side from this width on
const sideBySideWidth int = 96

type input struct {
	Data string `mapstructure:"data"`
}

type Model struct {
	ctx     context.Context
	flow    *genflow.Flow
	actions *actions.Actions
	state   *appstate.State

	form    form.Form[input]
	spinner spinner.Model
	keyMap  KeyMap
	size    util.Size

	record    *client.Record
	loading   bool
	inputErr  string
	notice    string
	noticeErr bool
	noticeSeq int
}

func New(ctx context.Context, flow *genflow.Flow, acts *actions.Actions, state *appstate.State) *Model {
	m := &Model{
		ctx:     ctx,
		flow:    flow,
		actions: acts,
		state:   state,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		keyMap:  newKeyMap(),
	}
	m.form = form.New(
		form.WithInput[input]("data", forminput.NewSubmitText(
			i18n.T("generate.label"),
			i18n.T("generate.placeholder"),
			i18n.T("generate.button"),
		)),
		form.WithInput[input]("submit", forminput.NewButton(i18n.T("generate.button"))),
		form.WithOnSubmit(func(in input, err error) tea.Cmd {
			if err != nil {
				logging.Warnf("generate: decoding form failed: %v", err)
				return nil
			}
			return func() tea.Msg { return submitMsg{text: in.Data} }
		}),
	)
	if rec, ok := flow.Current(); ok {
		m.record = &rec
	}
	m.applyPalette()
	m.updateKeys()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.size.Update(msg) {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(tea.WindowSizeMsg{Width: m.panelWidth() - 4, Height: 5})
		return cmd
	}

	switch msg := msg.(type) {
	case submitMsg:
		return m.submit(msg.text)
	case createdMsg:
		return m.created(msg)
	case actionDoneMsg:
		return m.actionDone(msg)
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return nil
	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case theme.ChangedMsg:
		m.applyPalette()
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Download):
			return m.download()
		case key.Matches(msg, m.keyMap.Copy):
			return m.copy()
		case key.Matches(msg, m.keyMap.Open):
			return m.open()
		}
		if m.loading {
			return nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m *Model) submit(text string) tea.Cmd {
	if m.loading {
		return nil
	}
	if err := genflow.Validate(text); err != nil {
		m.inputErr = i18n.T("generate.error_empty")
		return nil
	}
	m.inputErr = ""
	m.loading = true
	flow, ctx := m.flow, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		rec, err := flow.Submit(ctx, text)
		return createdMsg{record: rec, err: err}
	})
}

func (m *Model) created(msg createdMsg) tea.Cmd {
	m.loading = false
	if msg.err != nil {
		logging.Errorf("generate: creating qr code failed: %v", msg.err)
		if errors.Is(msg.err, genflow.ErrEmptyInput) {
			m.inputErr = i18n.T("generate.error_empty")
		} else {
			m.inputErr = client.Message(msg.err, i18n.T("generate.error_failed"))
		}
		return nil
	}
	rec := msg.record
	m.record = &rec
	m.notice = ""
	m.updateKeys()
	logging.Infof("generate: created qr code %s", rec.ID)
	return m.form.Reset()
}

func (m *Model) download() tea.Cmd {
	if m.record == nil {
		return nil
	}
	acts, text := m.actions, m.record.Data
	return func() tea.Msg {
		path, err := acts.Download(text, acts.TimestampFilename())
		if err != nil {
			return actionDoneMsg{err: errors.New(i18n.T("display.error_download", err))}
		}
		return actionDoneMsg{notice: i18n.T("display.saved", path)}
	}
}

func (m *Model) copy() tea.Cmd {
	if m.record == nil {
		return nil
	}
	acts, text := m.actions, m.record.Data
	return func() tea.Msg {
		if err := acts.CopyText(text); err != nil {
			return actionDoneMsg{err: errors.New(i18n.T("display.error_copy", err))}
		}
		return actionDoneMsg{notice: i18n.T("display.copied")}
	}
}

func (m *Model) open() tea.Cmd {
	if m.record == nil || !actions.IsURL(m.record.Data) {
		return nil
	}
	acts, text := m.actions, m.record.Data
	return func() tea.Msg {
		if err := acts.OpenLink(text); err != nil {
			return actionDoneMsg{err: errors.New(i18n.T("display.error_open", err))}
		}
		return actionDoneMsg{}
	}
}

func (m *Model) actionDone(msg actionDoneMsg) tea.Cmd {
	if msg.err != nil {
		logging.Warnf("generate: %v", msg.err)
		m.notice, m.noticeErr = msg.err.Error(), true
	} else if msg.notice != "" {
		m.notice, m.noticeErr = msg.notice, false
	} else {
		return nil
	}
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) updateKeys() {
	has := m.record != nil
	m.keyMap.Download.SetEnabled(has)
	m.keyMap.Copy.SetEnabled(has)
	m.keyMap.Open.SetEnabled(has && actions.IsURL(m.record.Data))
}

func (m *Model) applyPalette() {
	m.form.SetPalette(m.palette())
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.palette().Highlight)
}

func (m Model) palette() theme.Palette {
	return theme.For(m.state.Theme())
}

func (m Model) panelWidth() int {
	if m.size.Width >= sideBySideWidth {
		return m.size.Width / 2
	}
	return m.size.Width
}

func (m Model) inputPanel(s theme.Styles) string {
	lines := []string{s.Title.Render(i18n.T("generate.title")), "", m.form.View()}
	switch {
	case m.loading:
		lines = append(lines, m.spinner.View()+" "+s.Subtle.Render(i18n.T("generate.loading")))
	case m.inputErr != "":
		lines = append(lines, s.Error.Render(m.inputErr))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) displayPanel(s theme.Styles, height int) string {
	title := s.Title.Render(i18n.T("display.title"))
	if m.record == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", s.Subtle.Render(i18n.T("display.empty")))
	}

	width := max(1, m.panelWidth()-4)
	rec := m.record
	lines := []string{title, ""}
	if code, err := qrcode.Encode(rec.Data); err != nil {
		lines = append(lines, s.Error.Render(i18n.T("display.error_render")))
	} else {
		qr := code.Render(false)
		// leave room for the text lines below the code
		if lipgloss.Height(qr) > height-8 || lipgloss.Width(qr) > width {
			qr = code.RenderCompact(false)
		}
		lines = append(lines, s.QR.Render(qr))
	}
	lines = append(lines,
		"",
		s.Text.Width(width).MaxHeight(2).Render(rec.Data),
		s.Subtle.Render(i18n.T("display.scans", rec.ScanCount)+"  "+
			i18n.T("display.created", rec.CreatedAt.Local().Format(time.DateTime))),
	)
	if m.notice != "" {
		style := s.Success
		if m.noticeErr {
			style = s.Error
		}
		lines = append(lines, style.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) View() string {
	s := m.palette().Styles()
	pw := m.panelWidth()
	panel := lipgloss.NewStyle().Width(pw).Padding(0, 2)

	left := panel.Render(m.inputPanel(s))
	if m.size.Width >= sideBySideWidth {
		right := panel.Render(m.displayPanel(s, m.size.Height))
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	right := panel.Render(m.displayPanel(s, m.size.Height-lipgloss.Height(left)-1))
	return lipgloss.JoinVertical(lipgloss.Left, left, "", right)
}

func (m *Model) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	// the theme may have changed while hidden
	m.applyPalette()
	return m.form.Focus(util.MergeKeyMaps(baseKeyMap, &m.keyMap))
}

func (m *Model) Blur() {
	m.form.Blur()
}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)

// Record returns the record shown in the display panel.
func (m *Model) Record() (client.Record, bool) {
	if m.record == nil {
		return client.Record{}, false
	}
	return *m.record, true
}

// InputError is the inline message below the input, empty if none.
func (m *Model) InputError() string { return m.inputErr }

// Loading reports an outstanding create request.
func (m *Model) Loading() bool { return m.loading }

// Notice is the transient message below the display panel.
func (m *Model) Notice() string { return m.notice }
