package tui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

// lastGameID numbers game models so a model only answers its own ticks.
var lastGameID atomic.Int64

var gameOverStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57"))

// GameModel is the Bubble Tea model running one demo. Every TickMsg runs one
// engine tick; the engine writes into an in-memory screen that View renders.
type GameModel struct {
	id     int64
	demo   registry.Demo
	game   *engine.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	config core.RuntimeConfig
	opts   []engine.Option
	keys   *KeyMapper
	state  core.GameState
	err    error

	standalone bool // quit instead of going back to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel sets demo up on a fresh engine sized to cfg. store and logger
// may be nil; opts are passed on to the engine.
func NewGameModel(demo registry.Demo, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, opts ...engine.Option) (GameModel, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := GameModel{
		id:     lastGameID.Add(1),
		demo:   demo,
		store:  store,
		logger: logger,
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(),
	}
	if err := m.setup(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *GameModel) setup() error {
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	opts := []engine.Option{
		engine.WithFPS(m.config.TickRate),
		engine.WithSize(m.config.ScreenW, m.config.ScreenH),
		engine.WithLogger(m.logger),
	}
	m.game = engine.NewGame(m.screen, append(opts, m.opts...)...)
	if err := m.demo.Setup(m.game, m.config); err != nil {
		return fmt.Errorf("tui: cannot set up %s: %w", m.demo.ID(), err)
	}
	m.state = m.demo.State()
	m.scoreSaved = false
	return nil
}

// restart replaces the demo with a fresh instance and a new seed.
func (m *GameModel) restart() {
	demo, err := registry.Create(m.demo.ID())
	if err != nil {
		m.logger.Warn("cannot restart demo", "demo", m.demo.ID(), "err", err)
		return
	}
	prev := m.demo
	m.demo = demo
	m.config.Seed = time.Now().UnixNano()
	if err := m.setup(); err != nil {
		m.logger.Warn("cannot restart demo", "demo", demo.ID(), "err", err)
		m.demo = prev
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.id)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey forwards a key press to the engine. Restart and back only apply
// once the demo is over.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state.GameOver {
		if msg.String() == "r" {
			m.restart()
			return m, nil
		}
		if m.keys.MapKeyToMenuAction(msg) == MenuActionBack {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if k := m.keys.MapKey(msg); k != core.KeyNone {
		m.game.Post(core.KeyEvent(k))
	}
	return m, nil
}

// handleResize resizes the screen; the engine repaints the scene on the
// next tick.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if err := m.game.Resize(msg.Width, msg.Height); err != nil {
		m.logger.Warn("resize failed", "err", err)
	}
	return m, nil
}

// handleTick runs one engine tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if _, err := m.game.Tick(); err != nil {
		m.err = err
		m.logger.Error("tick failed", "demo", m.demo.ID(), "err", err)
		return m, tea.Quit
	}
	m.state = m.demo.State()

	// Save score on game over (once)
	if m.state.GameOver && !m.scoreSaved {
		if m.store != nil && m.state.Score > 0 {
			if _, err := m.store.SaveScore(m.demo.ID(), m.state.Score); err != nil {
				m.logger.Warn("cannot save score", "demo", m.demo.ID(), "err", err)
			}
		}
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate, m.id)
}

// View renders the engine screen, with a banner once the demo is over.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	view := RenderScreen(m.screen)
	if m.state.GameOver {
		banner := gameOverStyle.Render(fmt.Sprintf(" GAME OVER  score %d  r: restart  esc: back  q: quit ", m.state.Score))
		view = overlayLine(view, m.screen.Height()/2, m.screen.Width(), banner)
	}
	return view
}

// State returns the demo state as of the last tick.
func (m GameModel) State() core.GameState { return m.state }

// Err returns the error that stopped the model, if any.
func (m GameModel) Err() error { return m.err }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays demo in a standalone Bubble Tea program and returns its final
// state.
func Run(demo registry.Demo, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, opts ...engine.Option) (core.GameState, error) {
	model, err := NewGameModel(demo, store, cfg, logger, opts...)
	if err != nil {
		return core.GameState{}, err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return core.GameState{}, nil
	}
	return m.State(), m.Err()
}
