package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/racegame/game/config"
	"github.com/wricardo/mcp-training/racegame/game/engine"
	"github.com/wricardo/mcp-training/racegame/transport/terminal"
)

// newLocalGame builds a game from a profile in opts.configDir, scored
// against opts.scoreFile
func newLocalGame(opts options) (*engine.Game, error) {
	configManager, err := config.NewManager(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	gameConfig := configManager.GetDefault()
	if opts.profile != "" {
		if gameConfig, err = configManager.LoadConfig(opts.profile); err != nil {
			return nil, err
		}
	}

	return engine.NewGame(gameConfig, scoreStore(opts.scoreFile), nil)
}

// runTerminal plays one game on the terminal until the player quits
func runTerminal(ctx context.Context, opts options) error {
	game, err := newLocalGame(opts)
	if err != nil {
		return err
	}
	defer game.Close()

	// Log lines would tear through the drawn screen
	if !opts.debug {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	var sounds terminal.Sounds = terminal.Silent{}
	if speaker, err := terminal.NewSpeaker(); err != nil {
		log.Printf("Warning: audio unavailable: %v", err)
	} else {
		defer speaker.Close()
		sounds = speaker
	}

	err = terminal.NewUI(screen, game, sounds).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
