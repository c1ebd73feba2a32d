package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds the timing profile of the simulation loop
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// BaseTickMs is added to the virtual frame counter on every loop iteration
	BaseTickMs int `json:"base_tick_ms"`
	// FrameThreshold is the counter value that triggers a simulation step
	FrameThreshold int `json:"frame_threshold"`
	// BurstIncrement is injected into the counter by a held accelerate action
	BurstIncrement int `json:"burst_increment"`
	// SleepIntervalMs is the real-time pause between loop iterations
	SleepIntervalMs int `json:"sleep_interval_ms"`
	// SpawnPeriod is the number of simulation steps between spawn attempts
	SpawnPeriod int `json:"spawn_period"`
}

// DefaultConfig returns the classic timing profile
func DefaultConfig() *Config {
	return &Config{
		Name:            "classic",
		Description:     "Classic brick-game race timing",
		BaseTickMs:      50,
		FrameThreshold:  1500,
		BurstIncrement:  500,
		SleepIntervalMs: 10,
		SpawnPeriod:     10,
	}
}

// SleepInterval returns the loop pause as a duration
func (c *Config) SleepInterval() time.Duration {
	return time.Duration(c.SleepIntervalMs) * time.Millisecond
}

// ValidateConfig checks a timing profile for usable values
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config validation: config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.BaseTickMs < 1 {
		return fmt.Errorf("config validation: base_tick_ms must be positive, got %d", config.BaseTickMs)
	}
	if config.FrameThreshold < config.BaseTickMs {
		return fmt.Errorf("config validation: frame_threshold must be at least base_tick_ms (%d), got %d",
			config.BaseTickMs, config.FrameThreshold)
	}
	if config.BurstIncrement < 0 {
		return fmt.Errorf("config validation: burst_increment cannot be negative, got %d", config.BurstIncrement)
	}
	if config.SleepIntervalMs < 1 {
		return fmt.Errorf("config validation: sleep_interval_ms must be positive, got %d", config.SleepIntervalMs)
	}
	if config.SpawnPeriod < 1 {
		return fmt.Errorf("config validation: spawn_period must be positive, got %d", config.SpawnPeriod)
	}
	return nil
}

// LoadConfig loads and validates a timing profile from a JSON file.
// Missing fields take their classic values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
