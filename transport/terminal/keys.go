package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/racegame/game/engine"
)

// keyBinding is the action for one key press
type keyBinding struct {
	action engine.Action
	hold   bool
}

// mapKey translates a key press. A terminal only reports presses, and a held
// key arrives as repeated presses, so Up is always sent as held.
func mapKey(ev *tcell.EventKey) (keyBinding, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return keyBinding{action: engine.ActionStart}, true
	case tcell.KeyLeft:
		return keyBinding{action: engine.ActionLeft}, true
	case tcell.KeyRight:
		return keyBinding{action: engine.ActionRight}, true
	case tcell.KeyUp:
		return keyBinding{action: engine.ActionUp, hold: true}, true
	case tcell.KeyDown:
		return keyBinding{action: engine.ActionDown}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyBinding{action: engine.ActionTerminate}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return keyBinding{action: engine.ActionStart}, true
		case 'h':
			return keyBinding{action: engine.ActionLeft}, true
		case 'l':
			return keyBinding{action: engine.ActionRight}, true
		case 'k':
			return keyBinding{action: engine.ActionUp, hold: true}, true
		case 'j':
			return keyBinding{action: engine.ActionDown}, true
		case 'p', 'P':
			return keyBinding{action: engine.ActionPause}, true
		case 'a':
			return keyBinding{action: engine.ActionAction}, true
		case 'q', 'Q':
			return keyBinding{action: engine.ActionTerminate}, true
		}
	}
	return keyBinding{}, false
}
