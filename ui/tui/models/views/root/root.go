// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package root assembles the shell: header with navigation, the routed
// views inside a popup injector, and the footer.
package root

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/internal/actions"
	"github.com/qrify/qrify/internal/appstate"
	genflow "github.com/qrify/qrify/internal/flows/generate"
	histflow "github.com/qrify/qrify/internal/flows/history"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/internal/logging"
	"github.com/qrify/qrify/ui/tui/models/components/header"
	"github.com/qrify/qrify/ui/tui/models/components/menu"
	"github.com/qrify/qrify/ui/tui/models/components/popup"
	"github.com/qrify/qrify/ui/tui/models/components/router"
	"github.com/qrify/qrify/ui/tui/models/components/stack"
	windowtitle "github.com/qrify/qrify/ui/tui/models/helpers/title"
	"github.com/qrify/qrify/ui/tui/models/views/footer"
	"github.com/qrify/qrify/ui/tui/models/views/generate"
	"github.com/qrify/qrify/ui/tui/models/views/history"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

const title string = "QRify"

const (
	RouteGenerate = "generate"
	RouteHistory  = "history"
)

// Deps are the services the views work with.
type Deps struct {
	Context  context.Context
	State    *appstate.State
	Generate *genflow.Flow
	History  *histflow.Flow
	Actions  *actions.Actions
	Version  string
}

type Model struct {
	ctx          context.Context
	state        *appstate.State
	stack        *stack.Model
	menu         *menu.Model
	injector     *popup.Injector
	footer       *util.Model
	views        map[string]*util.Model
	keyMap       KeyMap
	titleHandler *windowtitle.TitleHandler
}

func New(deps Deps) *Model {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:    ctx,
		state:  deps.State,
		keyMap: NewBaseKeyMap(),
	}

	generateView := util.ModelPointer(generate.New(ctx, deps.Generate, deps.Actions, deps.State))
	historyView := util.ModelPointer(history.New(ctx, deps.History, deps.Actions, deps.State,
		func() tea.Msg { return navigateMsg{route: RouteGenerate} },
	))
	m.views = map[string]*util.Model{
		RouteGenerate: generateView,
		RouteHistory:  historyView,
	}

	viewRouter, control := router.New(generateView)
	m.menu = menu.New(
		menu.WithItem(RouteGenerate, i18n.T("nav.generate"), control.Change(generateView)),
		menu.WithItem(RouteHistory, i18n.T("nav.history"), control.Change(historyView)),
	)
	m.injector = popup.NewInjector(util.ModelPointer(&viewRouter), func() theme.Palette {
		return theme.For(m.state.Theme())
	})
	m.footer = util.ModelPointer(footer.New(m.keyMap, deps.State, versionLabel(deps.Version)))

	m.stack = stack.New(
		stack.WithOrientation(stack.Vertical),
		stack.WithFocus(stack.FocusIndex(1)),
		stack.WithKeysOnlyWhenFocused(),
		stack.WithItem(util.ModelPointer(header.New(deps.State, m.menu)), header.SizeConfig),
		stack.WithItem(util.ModelPointer(m.injector), stack.VariableSize(1)),
		stack.WithItem(m.footer, footer.SizeConfig),
	)
	m.titleHandler = windowtitle.NewHandler(fmt.Sprintf("%s %s", title, versionLabel(deps.Version)), " | ")
	return m
}

func versionLabel(v string) string {
	if v == "" {
		return "unknown version"
	}
	return v
}

type navigateMsg struct {
	route string
}

func (m Model) Init() tea.Cmd {
	return tea.Sequence(
		m.titleHandler.Init(),
		m.stack.Init(),
		m.stack.Focus(nil),
		windowtitle.Set(i18n.T("nav.generate")),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Exit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Help):
			util.BorrowModelFunc(m.footer, func(f *footer.Model) {
				f.ToggleExpanded()
			})
			return m, m.stack.Relayout()
		case key.Matches(msg, m.keyMap.Theme):
			return m, m.toggleTheme()
		case key.Matches(msg, m.keyMap.Generate) && !m.injector.Open():
			return m, m.navigate(RouteGenerate)
		case key.Matches(msg, m.keyMap.History) && !m.injector.Open():
			return m, m.navigate(RouteHistory)
		}
		return m, m.stack.Update(msg)
	case navigateMsg:
		return m, m.navigate(msg.route)
	}
	if cmd, ok := m.titleHandler.Handle(msg); ok {
		return m, cmd
	}
	return m, m.stack.Update(msg)
}

func (m Model) View() string {
	return m.stack.View()
}

// *Model implements tea.Model
var _ tea.Model = (*Model)(nil)

// Active returns the route shown.
func (m *Model) Active() string {
	return m.menu.ActiveID()
}

// RouteModel returns the model of route, nil for unknown routes.
func (m *Model) RouteModel(route string) *util.Model {
	return m.views[route]
}

func (m *Model) navigate(route string) tea.Cmd {
	if m.menu.ActiveID() == route {
		return nil
	}
	cmd := m.menu.Select(route)
	if cmd == nil {
		return nil
	}
	logging.Debugf("tui: navigating to %s", route)
	return tea.Batch(cmd, windowtitle.Set(i18n.T("nav."+route)))
}

func (m *Model) toggleTheme() tea.Cmd {
	t := m.state.ToggleTheme(m.ctx)
	logging.Debugf("tui: theme switched to %s", t)
	changed := theme.ChangedMsg{Theme: t, Palette: theme.For(t)}
	return func() tea.Msg { return changed }
}
