// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package history is the view listing the QR codes of this device with
// their stats.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/actions"
	"github.com/qrify/qrify/internal/appstate"
	histflow "github.com/qrify/qrify/internal/flows/history"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/internal/logging"
	"github.com/qrify/qrify/internal/qrcode"
	"github.com/qrify/qrify/ui/tui/models/components/popup"
	"github.com/qrify/qrify/ui/tui/models/views/dialog"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

const (
	noticeDuration = 2 * time.Second
	// a card is two text lines inside a border
	cardHeight int = 4
	// the preview pane is shown from this width on
	previewWidth int = 90
)

type Model struct {
	ctx     context.Context
	flow    *histflow.Flow
	actions *actions.Actions
	state   *appstate.State
	// onCreate switches to the generate view
	onCreate tea.Cmd

	snap     histflow.Snapshot
	loaded   bool
	loading  bool
	selected int

	spinner   spinner.Model
	keyMap    KeyMap
	size      util.Size
	notice    string
	noticeErr bool
	noticeSeq int
}

func New(ctx context.Context, flow *histflow.Flow, acts *actions.Actions, state *appstate.State, onCreate tea.Cmd) *Model {
	m := &Model{
		ctx:      ctx,
		flow:     flow,
		actions:  acts,
		state:    state,
		onCreate: onCreate,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		keyMap:   newKeyMap(),
	}
	m.updateKeys()
	return m
}

// Init reloads the current page every time the view is shown.
func (m *Model) Init() tea.Cmd {
	return m.load(m.flow.Reload)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.size.Update(msg) {
		return nil
	}

	switch msg := msg.(type) {
	case loadedMsg:
		m.loading, m.loaded = false, true
		m.apply(msg.snap)
		return nil
	case deleteRequestedMsg:
		return m.delete(msg.id)
	case deletedMsg:
		m.loading = false
		m.apply(msg.snap)
		if msg.err != nil {
			logging.Errorf("history: %v", msg.err)
			return popup.Open(dialog.Alert(i18n.T("history.error_delete"), m.palette()))
		}
		return nil
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
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.selected = max(0, m.selected-1)
	case key.Matches(msg, m.keyMap.Down):
		m.selected = min(len(m.snap.Records)-1, m.selected+1)
	case key.Matches(msg, m.keyMap.Reload):
		return m.load(m.flow.Reload)
	case key.Matches(msg, m.keyMap.Next):
		return m.load(m.flow.NextPage)
	case key.Matches(msg, m.keyMap.Prev):
		return m.load(m.flow.PrevPage)
	case key.Matches(msg, m.keyMap.Create):
		return m.onCreate
	case key.Matches(msg, m.keyMap.Download):
		if rec, ok := m.Selected(); ok {
			return m.download(rec)
		}
	case key.Matches(msg, m.keyMap.Copy):
		if rec, ok := m.Selected(); ok {
			return m.copy(rec)
		}
	case key.Matches(msg, m.keyMap.Open):
		if rec, ok := m.Selected(); ok {
			return m.open(rec)
		}
	case key.Matches(msg, m.keyMap.Delete):
		if rec, ok := m.Selected(); ok {
			id := rec.ID
			return popup.Open(dialog.Confirm(
				i18n.T("history.confirm_delete"),
				m.palette(),
				func() tea.Msg { return deleteRequestedMsg{id: id} },
			))
		}
	}
	return nil
}

func (m *Model) load(fn func(context.Context) histflow.Snapshot) tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.updateKeys()
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return loadedMsg{snap: fn(ctx)}
	})
}

func (m *Model) delete(id client.ID) tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.updateKeys()
	flow, ctx := m.flow, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		snap, err := flow.Delete(ctx, id)
		return deletedMsg{snap: snap, err: err}
	})
}

func (m *Model) download(rec client.Record) tea.Cmd {
	acts := m.actions
	return func() tea.Msg {
		path, err := acts.Download(rec.Data, actions.RecordFilename(rec.ID.String()))
		if err != nil {
			return actionDoneMsg{err: errors.New(i18n.T("display.error_download", err))}
		}
		return actionDoneMsg{notice: i18n.T("display.saved", path)}
	}
}

func (m *Model) copy(rec client.Record) tea.Cmd {
	acts := m.actions
	return func() tea.Msg {
		if err := acts.CopyText(rec.Data); err != nil {
			return actionDoneMsg{err: errors.New(i18n.T("display.error_copy", err)), alert: true}
		}
		return actionDoneMsg{notice: i18n.T("history.copied"), alert: true}
	}
}

func (m *Model) open(rec client.Record) tea.Cmd {
	if !actions.IsURL(rec.Data) {
		return nil
	}
	acts := m.actions
	return func() tea.Msg {
		if err := acts.OpenLink(rec.Data); err != nil {
			return actionDoneMsg{err: errors.New(i18n.T("display.error_open", err))}
		}
		return actionDoneMsg{}
	}
}

func (m *Model) actionDone(msg actionDoneMsg) tea.Cmd {
	text := msg.notice
	if msg.err != nil {
		logging.Warnf("history: %v", msg.err)
		text = msg.err.Error()
	}
	if text == "" {
		return nil
	}
	if msg.alert {
		return popup.Open(dialog.Alert(text, m.palette()))
	}
	m.notice, m.noticeErr = text, msg.err != nil
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) apply(snap histflow.Snapshot) {
	m.snap = snap
	m.selected = util.Clamp(0, m.selected, max(0, len(snap.Records)-1))
	m.updateKeys()
}

func (m *Model) updateKeys() {
	rec, has := m.Selected()
	m.keyMap.Up.SetEnabled(len(m.snap.Records) > 1)
	m.keyMap.Down.SetEnabled(len(m.snap.Records) > 1)
	m.keyMap.Download.SetEnabled(has)
	m.keyMap.Copy.SetEnabled(has)
	// requests that rewrite the list wait for the outstanding one
	m.keyMap.Delete.SetEnabled(has && !m.loading)
	m.keyMap.Open.SetEnabled(has && actions.IsURL(rec.Data))
	m.keyMap.Next.SetEnabled(m.snap.HasNext && !m.loading)
	m.keyMap.Prev.SetEnabled(m.snap.HasPrev && !m.loading)
	m.keyMap.Reload.SetEnabled(!m.loading)
	m.keyMap.Create.SetEnabled(m.loaded && m.snap.Empty())
}

func (m Model) palette() theme.Palette {
	return theme.For(m.state.Theme())
}

func (m Model) statsView(s theme.Styles) string {
	if !m.snap.HasStats || m.snap.StatsErr != nil {
		return ""
	}
	card := func(label string, value int) string {
		return s.StatCard.Width(20).Render(lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render(fmt.Sprint(value)),
			s.Subtle.Render(label),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(i18n.T("history.stats_total"), m.snap.Stats.TotalQRCodes),
		" ",
		card(i18n.T("history.stats_scans"), m.snap.Stats.TotalScans),
	)
}

func (m Model) emptyView(s theme.Styles) string {
	cta := s.ActiveTab.Render(i18n.T("history.empty_cta"))
	return lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(i18n.T("history.empty_title")),
		s.Subtle.Render(i18n.T("history.empty_body")),
		"",
		cta,
		s.Subtle.Render("enter"),
	)
}

func (m Model) cardView(s theme.Styles, rec client.Record, active bool, width int) string {
	style := s.Card
	if active {
		style = s.ActiveCard
	}
	inner := max(1, width-4)
	meta := i18n.T("display.created", rec.CreatedAt.Local().Format(time.DateTime)) +
		"  " + i18n.T("display.scans", rec.ScanCount)
	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.Text.MaxWidth(inner).Render(firstLine(rec.Data)),
		s.Subtle.MaxWidth(inner).Render(meta),
	))
}

func (m Model) listView(s theme.Styles, width, height int) string {
	fit := max(1, height/cardHeight)
	start := max(0, m.selected-fit+1)
	end := min(len(m.snap.Records), start+fit)
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.cardView(s, m.snap.Records[i], i == m.selected, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) previewView(s theme.Styles) string {
	rec, ok := m.Selected()
	if !ok {
		return ""
	}
	code, err := qrcode.Encode(rec.Data)
	if err != nil {
		return s.Error.Render(i18n.T("display.error_render"))
	}
	return s.QR.Render(code.RenderCompact(false))
}

func (m Model) View() string {
	s := m.palette().Styles()
	width := max(1, m.size.Width-2)

	top := []string{s.Title.Render(i18n.T("history.title"))}
	if stats := m.statsView(s); stats != "" {
		top = append(top, stats)
	}
	if m.snap.HistoryErr != nil {
		top = append(top, s.Error.Render(i18n.T("history.error_load")))
	}
	if m.loading {
		top = append(top, m.spinner.View()+" "+s.Subtle.Render(i18n.T("history.loading")))
	}
	header := lipgloss.JoinVertical(lipgloss.Left, top...)

	var footer []string
	if m.loaded && !m.snap.Empty() {
		footer = append(footer, s.Subtle.Render(i18n.T("history.page", m.snap.Page)))
	}
	if m.notice != "" {
		style := s.Success
		if m.noticeErr {
			style = s.Error
		}
		footer = append(footer, style.Render(m.notice))
	}
	bottom := lipgloss.JoinVertical(lipgloss.Left, footer...)

	bodyHeight := max(cardHeight, m.size.Height-lipgloss.Height(header)-lipgloss.Height(bottom)-1)
	var body string
	switch {
	case m.loaded && m.snap.Empty():
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, m.emptyView(s))
	case len(m.snap.Records) > 0 && width >= previewWidth:
		preview := m.previewView(s)
		listWidth := width - lipgloss.Width(preview) - 2
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.listView(s, listWidth, bodyHeight),
			"  ",
			preview,
		)
	case len(m.snap.Records) > 0:
		body = m.listView(s, width, bodyHeight)
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, body, bottom),
	)
}

func (m *Model) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	return util.AnnounceKeyMapCmd(baseKeyMap, &m.keyMap)
}

func (m *Model) Blur() {}

// *Model implements util.Model
var _ util.Model = (*Model)(nil)

// Selected returns the highlighted record.
func (m *Model) Selected() (client.Record, bool) {
	if m.selected < 0 || m.selected >= len(m.snap.Records) {
		return client.Record{}, false
	}
	return m.snap.Records[m.selected], true
}

func (m *Model) Snapshot() histflow.Snapshot { return m.snap }

func (m *Model) Loading() bool { return m.loading }

func (m *Model) Notice() string { return m.notice }

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i] + "…"
		}
	}
	return s
}
