// Package tui hosts demos inside Bubble Tea programs: a game model that ticks
// an engine.Game and renders its screen with lipgloss, a demo menu, a
// scoreboard, and an SSH server that serves all of it through Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgame/internal/engine"
)

// TickMsg is sent to trigger an engine tick. ID is the game model that
// scheduled it, so a model left behind never steals a newer model's ticks.
type TickMsg struct {
	Time time.Time
	ID   int64
}

// tickCmd returns a Bubble Tea command that sends a tick message after one
// frame at the given rate.
func tickCmd(tickRate int, id int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = engine.DefaultFPS
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
