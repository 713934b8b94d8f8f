package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

const menuBanner = "  T E R M G A M E  "

// MenuItem is one demo in the picker together with what the store knows
// about it. Zero values mean nothing was recorded.
type MenuItem struct {
	DemoID    string
	Title     string
	HighScore int
	Plays     int
	BenchFPS  float64
}

// summary renders the recorded stats of the item, or "" when there are none.
func (it MenuItem) summary() string {
	var parts []string
	if it.HighScore > 0 {
		parts = append(parts, fmt.Sprintf("best %d", it.HighScore))
	}
	switch {
	case it.Plays == 1:
		parts = append(parts, "1 play")
	case it.Plays > 1:
		parts = append(parts, fmt.Sprintf("%d plays", it.Plays))
	}
	if it.BenchFPS > 0 {
		parts = append(parts, fmt.Sprintf("%.0f fps", it.BenchFPS))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

var (
	menuBannerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	menuItemStyle    = lipgloss.NewStyle().PaddingLeft(2)
	menuActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	menuFooterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the demo picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	keys   *KeyMapper
	config core.RuntimeConfig

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered demo. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  menuItems(store),
		keys:   NewKeyMapper(),
		config: cfg,
	}
}

// menuItems builds the picker entries. Lookup failures only hide stats.
func menuItems(store *storage.Store) []MenuItem {
	demos := registry.List()
	var stats map[string]*storage.DemoStats
	if store != nil {
		stats, _ = store.GetAllDemosStats()
	}

	items := make([]MenuItem, len(demos))
	for i, d := range demos {
		items[i] = MenuItem{DemoID: d.ID, Title: d.Title}
		if st, ok := stats[d.ID]; ok {
			items[i].HighScore = st.HighScore
			items[i].Plays = st.GamesCount
		}
		if store == nil {
			continue
		}
		if run, err := store.BestBenchRun(d.ID); err == nil && run != nil {
			items[i].BenchFPS = run.AverageFPS
		}
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		centerText(menuBannerStyle.Render(menuBanner), width),
		"",
		centerText("Select a demo", width),
		"",
	}

	// the list is centered as a block so titles stay left-aligned
	rows := make([]string, len(m.items))
	for i, item := range m.items {
		row := item.Title
		if s := item.summary(); s != "" {
			row += "  " + menuSummaryStyle.Render(s)
		}
		if i == m.cursor {
			rows[i] = menuActiveStyle.Render("> " + row)
		} else {
			rows[i] = menuItemStyle.Render(row)
		}
	}
	block := lipgloss.JoinVertical(lipgloss.Left, rows...)
	pad := max((width-lipgloss.Width(block))/2, 0)
	lines = append(lines, lipgloss.NewStyle().PaddingLeft(pad).Render(block), "")

	footer := "↑/↓ navigate • enter play • tab scores • q quit"
	lines = append(lines, centerText(menuFooterStyle.Render(footer), width), "")
	return strings.Join(lines, "\n")
}

// Selected returns the chosen demo, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Result summarizes how the menu ended.
func (m MenuModel) Result() MenuResult {
	res := MenuResult{Config: m.config}
	switch {
	case m.openScoreboard:
		res.WantsScoreboard = true
	case m.selected != nil:
		res.DemoID = m.selected.DemoID
	default:
		res.Quit = true
	}
	return res
}

// centerText left-pads text so it sits in the middle of width columns.
// Styled text is measured by its printed width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	DemoID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker on the alternate screen until a choice is made.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
