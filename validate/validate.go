// Command validate checks the timing profile JSON files in a config
// directory. It checks:
//   - JSON structure, with unknown fields rejected
//   - Presence of a name
//   - The engine's own profile rules
//   - That a held accelerate can actually shorten a step
//   - That spawning leaves room between batches
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/racegame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single profile file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	// Missing fields take the classic values, as the server does
	config := engine.DefaultConfig()
	config.Name = ""
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if strings.TrimSpace(config.Name) == "" {
		result.fail("Missing required field: name")
		return result
	}

	if err := engine.ValidateConfig(config); err != nil {
		result.fail("%v", err)
		return result
	}
	result.info("Timing: step every %s at speed 1", engine.StepInterval(config, engine.InitialSpeed))

	// A car is CarHeight rows tall, so batches closer than that overlap
	if config.SpawnPeriod < engine.CarHeight {
		result.fail("spawn_period %d is shorter than a car (%d rows); batches would overlap", config.SpawnPeriod, engine.CarHeight)
	} else {
		result.info("Spawn: a batch every %d steps", config.SpawnPeriod)
	}

	if config.BurstIncrement > 0 && config.BurstIncrement < config.BaseTickMs {
		result.fail("burst_increment %d is smaller than base_tick_ms %d; accelerating would be slower than waiting",
			config.BurstIncrement, config.BaseTickMs)
	} else if config.BurstIncrement == 0 {
		result.info("Burst: disabled")
	} else {
		result.info("Burst: +%d per held accelerate", config.BurstIncrement)
	}

	return result
}

func validateDir(configDir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no profiles found in %s", configDir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "Validate race timing profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "../configs",
				Usage:   "Directory containing timing profiles",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			valid, err := validateDir(cmd.String("config-dir"))
			if err != nil {
				return err
			}
			if !valid {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
