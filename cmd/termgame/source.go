package main

import (
	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
)

// quitSource forwards input to the game and stops it on a quit key or once
// the demo reports game over.
type quitSource struct {
	src      engine.Source
	game     *engine.Game
	gameOver func() bool
}

func (q *quitSource) Poll() []core.Event {
	var events []core.Event
	if q.src != nil {
		events = q.src.Poll()
	}
	for _, e := range events {
		if isQuitKey(e) {
			q.game.Stop()
			return nil
		}
	}
	if q.gameOver != nil && q.gameOver() {
		q.game.Stop()
	}
	return events
}

func isQuitKey(e core.Event) bool {
	return e.IsKey(core.KeyCtrlC) || e.IsKey('q') || e.IsKey(core.KeyEscape)
}
