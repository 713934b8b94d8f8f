package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgame/internal/core"
)

// KeyMapper translates Bubble Tea key messages to engine keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var teaKeys = map[tea.KeyType]core.Key{
	tea.KeyUp:        core.KeyUp,
	tea.KeyDown:      core.KeyDown,
	tea.KeyLeft:      core.KeyLeft,
	tea.KeyRight:     core.KeyRight,
	tea.KeyHome:      core.KeyHome,
	tea.KeyEnd:       core.KeyEnd,
	tea.KeyPgUp:      core.KeyPageUp,
	tea.KeyPgDown:    core.KeyPageDown,
	tea.KeyDelete:    core.KeyDelete,
	tea.KeyBackspace: core.KeyBackspace,
	tea.KeyEnter:     core.KeyEnter,
	tea.KeyTab:       core.KeyTab,
	tea.KeyEsc:       core.KeyEscape,
	tea.KeyCtrlC:     core.KeyCtrlC,
	tea.KeySpace:     core.KeySpace,
}

// MapKey translates a key message to an engine key. Keys the engine has no
// name for map to KeyNone. Multi-rune messages (pastes) yield their first
// rune only.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Key {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) == 0 || msg.Alt {
			return core.KeyNone
		}
		return core.Key(msg.Runes[0])
	}
	return teaKeys[msg.Type]
}

// IsQuit reports whether the key ends the program.
func (km *KeyMapper) IsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
