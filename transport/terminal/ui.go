package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/racegame/game/engine"
)

const (
	frameInterval = 33 * time.Millisecond

	// Screen layout: the field sits inside a one cell border, each field
	// cell two columns wide
	fieldLeft  = 1
	fieldTop   = 1
	cellWidth  = 2
	panelLeft  = fieldLeft + engine.FieldWidth*cellWidth + 3
	panelWidth = 24
)

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCar    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleEmpty  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// UI draws a game on a tcell screen and feeds it key presses
type UI struct {
	screen tcell.Screen
	game   *engine.Game
	sounds Sounds

	lastState engine.GameState
	lastScore int
}

// NewUI creates a UI for game. The screen must already be initialized.
// sounds may be nil.
func NewUI(screen tcell.Screen, game *engine.Game, sounds Sounds) *UI {
	if sounds == nil {
		sounds = Silent{}
	}
	return &UI{
		screen:    screen,
		game:      game,
		sounds:    sounds,
		lastState: game.CurrentState(),
	}
}

// Run drives the game until it reaches EXIT or ctx is cancelled. On
// cancellation the game is terminated before Run returns.
func (u *UI) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			u.game.Close()
			return ctx.Err()
		case ev := <-events:
			u.handleEvent(ev)
		case <-ticker.C:
		}

		u.observe()
		u.draw()
		if u.lastState == engine.StateExit {
			return nil
		}
	}
}

func (u *UI) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if binding, ok := mapKey(ev); ok {
			u.game.ProcessAction(binding.action, binding.hold)
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
}

// observe plays sounds for what changed since the last frame
func (u *UI) observe() {
	state := u.game.CurrentState()
	score := u.game.SnapshotParameters().Score

	if state == engine.StateGameOver && u.lastState != engine.StateGameOver {
		u.sounds.Crash()
	} else if score > u.lastScore {
		u.sounds.Point()
	}

	u.lastState = state
	u.lastScore = score
}

func (u *UI) draw() {
	u.screen.Clear()
	u.drawBorder()
	u.drawField()
	u.drawPanel()
	u.screen.Show()
}

func (u *UI) drawBorder() {
	right := fieldLeft + engine.FieldWidth*cellWidth
	bottom := fieldTop + engine.FieldHeight
	for x := fieldLeft - 1; x <= right; x++ {
		u.screen.SetContent(x, fieldTop-1, '─', nil, styleBorder)
		u.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := fieldTop - 1; y <= bottom; y++ {
		u.screen.SetContent(fieldLeft-1, y, '│', nil, styleBorder)
		u.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	u.screen.SetContent(fieldLeft-1, fieldTop-1, '┌', nil, styleBorder)
	u.screen.SetContent(right, fieldTop-1, '┐', nil, styleBorder)
	u.screen.SetContent(fieldLeft-1, bottom, '└', nil, styleBorder)
	u.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (u *UI) drawField() {
	field := u.game.RenderField()
	for y, row := range field {
		for x, cell := range row {
			sx := fieldLeft + x*cellWidth
			sy := fieldTop + y
			if cell != 0 {
				u.screen.SetContent(sx, sy, '[', nil, styleCar)
				u.screen.SetContent(sx+1, sy, ']', nil, styleCar)
			} else {
				u.screen.SetContent(sx, sy, ' ', nil, styleEmpty)
				u.screen.SetContent(sx+1, sy, '.', nil, styleEmpty)
			}
		}
	}
}

func (u *UI) drawPanel() {
	params := u.game.SnapshotParameters()

	y := fieldTop
	rows := []struct {
		label string
		value int
	}{
		{"SCORE", params.Score},
		{"HIGH", params.HighestScore},
		{"LEVEL", params.Level},
		{"SPEED", params.Speed},
	}
	for _, row := range rows {
		u.text(panelLeft, y, styleLabel, row.label)
		u.text(panelLeft+7, y, styleValue, fmt.Sprint(row.value))
		y += 2
	}

	y++
	u.text(panelLeft, y, styleBanner, banner(u.lastState))

	help := []string{
		"enter  start",
		"← →    lane",
		"↑      burst",
		"p      pause",
		"q      quit",
	}
	y = fieldTop + engine.FieldHeight - len(help)
	for _, line := range help {
		u.text(panelLeft, y, styleHelp, line)
		y++
	}
}

func banner(state engine.GameState) string {
	switch state {
	case engine.StateStart:
		return "PRESS START"
	case engine.StatePause:
		return "PAUSED"
	case engine.StateGameOver:
		return "GAME OVER"
	case engine.StateExit:
		return "BYE"
	}
	return ""
}

func (u *UI) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		if x >= panelLeft+panelWidth {
			return
		}
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
