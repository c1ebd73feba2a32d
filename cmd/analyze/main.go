// Command analyze prints quick, human-readable timing heuristics about the
// profiles in a config directory: how often the road steps at every speed,
// how long an enemy stays on the field and how far a held accelerate goes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/racegame/game/config"
	"github.com/wricardo/mcp-training/racegame/game/engine"
)

// Warn when a profile steps faster than a person can react
const reactionFloor = 100 * time.Millisecond

// SpeedForLevel returns the speed reached at level
func SpeedForLevel(level int) int {
	speed := engine.InitialSpeed
	for l := engine.InitialLevel + 1; l <= level; l++ {
		if l%2 == 0 && l > 2 {
			speed++
		}
	}
	return speed
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Summarize the timing of race profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing timing profiles",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return analyzeDir(os.Stdout, cmd.String("config-dir"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func analyzeDir(w io.Writer, dir string) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	profiles, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range profiles {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
		profile, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "Error loading profile: %v\n", err)
			continue
		}
		analyzeProfile(w, profile)
	}
	return nil
}

func analyzeProfile(w io.Writer, profile *engine.Config) {
	fmt.Fprintf(w, "Name: %s\n", profile.Name)
	fmt.Fprintf(w, "Tick: %dms every %s, step threshold %d, spawn every %d steps\n",
		profile.BaseTickMs, profile.SleepInterval(), profile.FrameThreshold, profile.SpawnPeriod)

	maxSpeed := SpeedForLevel(engine.MaxLevel)
	var fastest time.Duration
	for speed := engine.InitialSpeed; speed <= maxSpeed; speed++ {
		step := engine.StepInterval(profile, speed)
		fmt.Fprintf(w, "  speed %d: step every %s, enemy on field for %s\n",
			speed, step, step*engine.EnemyTravelSteps)
		fastest = step
	}

	if profile.BurstIncrement > 0 {
		holds := (profile.FrameThreshold + profile.BurstIncrement - 1) / profile.BurstIncrement
		fmt.Fprintf(w, "Burst: %d held accelerate actions force a step\n", holds)
	} else {
		fmt.Fprintf(w, "Burst: disabled\n")
	}

	if fastest < reactionFloor {
		fmt.Fprintf(w, "⚠️  WARNING: top speed steps every %s, below %s\n", fastest, reactionFloor)
	} else {
		fmt.Fprintf(w, "✅ Top speed stays above %s per step\n", reactionFloor)
	}
}
