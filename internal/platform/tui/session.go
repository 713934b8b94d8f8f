package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> demo or scoreboard ->
// menu. This is the top-level model used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	config    core.RuntimeConfig
	logger    *log.Logger
	opts      []engine.Option
	view      sessionView
	menu      MenuModel
	game      GameModel
	scores    ScoreboardModel
	quitting  bool
	lastError string // setup failure shown above the menu
}

// NewSessionModel creates a new session model. opts are passed on to the
// engine of every demo the session starts.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, opts ...engine.Option) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		opts:   opts,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// toMenu rebuilds the menu so fresh high scores show up.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// updateMenu forwards msg to the menu. The menu quits its own program
// when it is done; inside a session that becomes a view change instead.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	if cmd == nil {
		return m, nil
	}

	res := m.menu.Result()
	switch {
	case res.WantsScoreboard:
		m.view = viewScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()
	case res.DemoID != "":
		return m.startDemo(res.DemoID)
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// startDemo switches to a new game of demoID, or back to the menu with the
// error shown when the demo cannot be set up.
func (m SessionModel) startDemo(demoID string) (tea.Model, tea.Cmd) {
	demo, err := registry.Create(demoID)
	if err == nil {
		var game GameModel
		if game, err = NewGameModel(demo, m.store, m.config, m.logger, m.opts...); err == nil {
			m.lastError = ""
			m.game = game
			m.view = viewGame
			return m, m.game.Init()
		}
	}
	m.logger.Warn("cannot start demo", "demo", demoID, "err", err)
	m.lastError = err.Error()
	return m.toMenu()
}

// updateGame handles updates when a demo is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if err := m.game.Err(); err != nil {
		m.lastError = err.Error()
		return m.toMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	}
	if m.lastError != "" {
		return centerText(m.lastError, m.config.ScreenW) + "\n" + m.menu.View()
	}
	return m.menu.View()
}
