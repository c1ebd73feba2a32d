package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected Action
	}{
		{"start", ActionStart},
		{"PAUSE", ActionPause},
		{" Terminate ", ActionTerminate},
		{"left", ActionLeft},
		{"right", ActionRight},
		{"up", ActionUp},
		{"down", ActionDown},
		{"action", ActionAction},
	}

	for _, test := range tests {
		got, err := ParseAction(test.input)
		if err != nil {
			t.Errorf("ParseAction(%q): unexpected error %v", test.input, err)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseAction(%q): expected %s, got %s", test.input, test.expected, got)
		}
	}

	if _, err := ParseAction("jump"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Expected ErrUnknownAction, got %v", err)
	}
}

func TestActionNames(t *testing.T) {
	names := ActionNames()
	if len(names) != 8 || names[0] != "start" || names[7] != "action" {
		t.Errorf("Unexpected action names: %v", names)
	}
	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil || action.String() != name {
			t.Errorf("Name %q does not round trip", name)
		}
	}
}

func TestGameStateJSON(t *testing.T) {
	data, err := json.Marshal(map[string]GameState{"state": StateGameOver})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"state":"GAMEOVER"}` {
		t.Errorf("Unexpected encoding: %s", data)
	}
}

func TestGameStateUnmarshal(t *testing.T) {
	var payload struct {
		State GameState `json:"state"`
	}
	if err := json.Unmarshal([]byte(`{"state":"PAUSE"}`), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.State != StatePause {
		t.Errorf("Expected PAUSE, got %s", payload.State)
	}
	if err := json.Unmarshal([]byte(`{"state":"FLYING"}`), &payload); err == nil {
		t.Error("Expected error for unknown state")
	}
}
