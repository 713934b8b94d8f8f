package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

const (
	maxScores    = 100
	maxBenchRuns = 20
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewHighScores boardView = iota
	viewBenchRuns
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardEmptyStyle = boardDimStyle.Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextDemo key.Binding
	PrevDemo key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDemo, k.PrevDemo, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextDemo, k.PrevDemo},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextDemo: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next demo")),
		PrevDemo: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev demo")),
		Toggle:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/bench")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the high scores and bench runs of one demo at a
// time.
type ScoreboardModel struct {
	demos      []registry.DemoInfo
	demoCursor int
	store      *storage.Store

	view   boardView
	scores []storage.ScoreEntry
	runs   []storage.BenchRun
	bench  *storage.BenchRun // best run of the selected demo

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered demo.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		demos:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newBoardTable(max(height-9, 1))
	if len(m.demos) > 0 {
		m.loadScores(m.demos[0].ID)
	} else {
		m.refreshTable()
	}
	return m
}

func newBoardTable(height int) table.Model {
	t := table.New(table.WithFocused(true), table.WithHeight(height))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadScores reads the scores and bench runs of demoID.
func (m *ScoreboardModel) loadScores(demoID string) {
	m.scores, m.runs, m.bench = nil, nil, nil
	if m.store != nil {
		if scores, err := m.store.TopScores(demoID, maxScores); err == nil {
			m.scores = scores
		}
		if runs, err := m.store.RecentBenchRuns(demoID, maxBenchRuns); err == nil {
			m.runs = runs
		}
		if run, err := m.store.BestBenchRun(demoID); err == nil {
			m.bench = run
		}
	}
	m.refreshTable()
}

// refreshTable rebuilds columns and rows for the current view. Rows are
// dropped first so no row is rendered against the other view's columns.
func (m *ScoreboardModel) refreshTable() {
	var (
		cols []table.Column
		rows []table.Row
	)
	switch m.view {
	case viewBenchRuns:
		cols = []table.Column{
			{Title: "Avg FPS", Width: 9},
			{Title: "Ticks", Width: 7},
			{Title: "Sprites", Width: 8},
			{Title: "Elapsed", Width: 9},
			{Title: "Date", Width: 13},
		}
		for _, r := range m.runs {
			rows = append(rows, table.Row{
				strconv.FormatFloat(r.AverageFPS, 'f', 0, 64),
				strconv.Itoa(r.Ticks),
				strconv.Itoa(r.Sprites),
				r.Elapsed.Round(time.Millisecond).String(),
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	default:
		cols = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "Date", Width: 16},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				"#" + strconv.Itoa(i+1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) selectDemo(delta int) {
	if len(m.demos) == 0 {
		return
	}
	m.demoCursor = (m.demoCursor + delta + len(m.demos)) % len(m.demos)
	m.loadScores(m.demos[m.demoCursor].ID)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextDemo):
			m.selectDemo(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevDemo):
			m.selectDemo(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.refreshTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-9, 1))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewBenchRuns {
		heading = "BENCH RUNS"
	}
	if len(m.demos) > 0 {
		heading += " - " + m.demos[m.demoCursor].Title
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(heading, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.benchLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boardFrameStyle.Render(m.body()), m.width))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the demo names, collapsing to "< current >" when they do not
// fit.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.demos))
	for i, d := range m.demos {
		if i == m.demoCursor {
			parts[i] = boardActiveTab.Render(d.Title)
		} else {
			parts[i] = boardTabStyle.Render(d.Title)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.demos) > 0 {
		line = fmt.Sprintf("< %s >", m.demos[m.demoCursor].Title)
	}
	return line
}

func (m ScoreboardModel) body() string {
	switch {
	case m.view == viewHighScores && len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay a demo to set a high score!")
	case m.view == viewBenchRuns && len(m.runs) == 0:
		return boardEmptyStyle.Render("No bench runs yet.\nRun 'termgame bench <demo>' to record one.")
	}
	return m.table.View()
}

// benchLine summarizes the best bench run of the selected demo.
func (m ScoreboardModel) benchLine() string {
	if m.bench == nil {
		return boardDimStyle.Render("not benched yet")
	}
	return boardDimStyle.Render(fmt.Sprintf("best bench: %.0f fps over %d ticks, %d sprites",
		m.bench.AverageFPS, m.bench.Ticks, m.bench.Sprites))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
