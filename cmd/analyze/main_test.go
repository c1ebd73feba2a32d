package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/racegame/game/engine"
)

func TestSpeedForLevel(t *testing.T) {
	tests := []struct {
		level    int
		expected int
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{6, 3},
		{9, 4},
		{10, 5},
	}

	for _, test := range tests {
		if result := SpeedForLevel(test.level); result != test.expected {
			t.Errorf("SpeedForLevel(%d) = %d, expected %d", test.level, result, test.expected)
		}
	}
}

func TestAnalyzeProfile(t *testing.T) {
	var out bytes.Buffer
	analyzeProfile(&out, engine.DefaultConfig())
	result := out.String()

	expected := []string{
		"Name: classic",
		"speed 1: step every 300ms, enemy on field for 7.5s",
		"speed 5: step every 170ms",
		"Burst: 3 held accelerate actions force a step",
		"✅ Top speed stays above 100ms",
	}
	for _, field := range expected {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in output:\n%s", field, result)
		}
	}
}

func TestAnalyzeProfile_FastWarning(t *testing.T) {
	profile := engine.DefaultConfig()
	profile.FrameThreshold = 100
	profile.BurstIncrement = 0

	var out bytes.Buffer
	analyzeProfile(&out, profile)

	if !strings.Contains(out.String(), "WARNING") {
		t.Errorf("Expected a warning for a fast profile:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Burst: disabled") {
		t.Errorf("Expected burst disabled:\n%s", out.String())
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "steady.json"), []byte(`{"name":"Steady","frame_threshold":2000}`), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"spawn_period":0}`), 0644)

	var out bytes.Buffer
	if err := analyzeDir(&out, dir); err != nil {
		t.Fatal(err)
	}

	result := out.String()
	if !strings.Contains(result, "=== Analyzing steady.json ===") || !strings.Contains(result, "Name: Steady") {
		t.Errorf("Expected steady profile analysis:\n%s", result)
	}

	if err := analyzeDir(&out, filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
