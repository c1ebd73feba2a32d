package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/racegame/api"
	"github.com/wricardo/mcp-training/racegame/game/engine"
	"github.com/wricardo/mcp-training/racegame/game/highscore"
	"github.com/wricardo/mcp-training/racegame/game/service"
	"github.com/wricardo/mcp-training/racegame/transport/mcp"
)

func testOptions(t *testing.T) options {
	t.Helper()
	dir := t.TempDir()
	return options{
		host:        "localhost",
		port:        8080,
		configDir:   "configs",
		sessionsDir: filepath.Join(dir, "sessions"),
		scoreFile:   filepath.Join(dir, "race_score"),
		sessionTTL:  time.Hour,
	}
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Brick Race Server" {
		t.Errorf("Unexpected app name %s", AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	var got options
	app := newApp()
	app.Action = func(ctx context.Context, cmd *cli.Command) error {
		got = optionsFrom(cmd)
		return nil
	}
	t.Setenv("CONFIG_DIR", "profiles")

	if err := app.Run(context.Background(), []string{"racegame", "--port", "9090"}); err != nil {
		t.Fatal(err)
	}

	if got.port != 9090 || got.host != "localhost" {
		t.Errorf("Unexpected address %s", got.addr())
	}
	if got.configDir != "profiles" {
		t.Errorf("Expected CONFIG_DIR to set config dir, got %s", got.configDir)
	}
	if got.scoreFile != "race_score" || got.sessionsDir != "sessions" {
		t.Errorf("Unexpected storage defaults: %+v", got)
	}
	if got.sessionTTL != 24*time.Hour {
		t.Errorf("Unexpected session ttl %s", got.sessionTTL)
	}
}

func TestInitializeServices(t *testing.T) {
	svc, err := initializeServices(testOptions(t))
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer svc.sessions.Close()

	configs, err := svc.game.ListConfigs(context.Background())
	if err != nil || len(configs) < 3 {
		t.Errorf("Expected repository profiles, got %d (%v)", len(configs), err)
	}
	if svc.configs.DefaultID() != "classic" {
		t.Errorf("Expected classic default, got %s", svc.configs.DefaultID())
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	opts := testOptions(t)
	opts.configDir = "/non/existent/path"

	if _, err := initializeServices(opts); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_RestoresSessions(t *testing.T) {
	opts := testOptions(t)
	ctx := context.Background()

	first, err := initializeServices(opts)
	if err != nil {
		t.Fatal(err)
	}
	info, err := first.game.CreateSession(ctx, "relaxed")
	if err != nil {
		t.Fatal(err)
	}
	first.sessions.Close()

	second, err := initializeServices(opts)
	if err != nil {
		t.Fatal(err)
	}
	defer second.sessions.Close()

	restored, err := second.game.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("Expected session %s to be restored: %v", info.ID, err)
	}
	if restored.GameState.State != engine.StateStart {
		t.Errorf("Expected restored session in START, got %s", restored.GameState.State)
	}
}

func TestNewLocalGame(t *testing.T) {
	opts := testOptions(t)
	opts.profile = "turbo"

	game, err := newLocalGame(opts)
	if err != nil {
		t.Fatal(err)
	}
	defer game.Close()
	if game.Config().FrameThreshold != 750 {
		t.Errorf("Expected turbo profile, got %+v", game.Config())
	}

	opts.profile = "nitro"
	if _, err := newLocalGame(opts); err == nil {
		t.Error("Expected error for unknown profile")
	}
}

func TestScoreStore(t *testing.T) {
	if _, ok := scoreStore("").(highscore.NopStore); !ok {
		t.Error("Expected an empty score file to disable persistence")
	}

	path := filepath.Join(t.TempDir(), "race_score")
	store := scoreStore(path)
	if err := store.SaveHighScore(12); err != nil {
		t.Fatal(err)
	}
	if score, err := highscore.NewFileStore(path).LoadHighScore(); err != nil || score != 12 {
		t.Errorf("Expected 12 on disk, got %d (%v)", score, err)
	}
}

func TestNewLocalGame_WithoutScoreFile(t *testing.T) {
	opts := testOptions(t)
	opts.scoreFile = ""

	game, err := newLocalGame(opts)
	if err != nil {
		t.Fatal(err)
	}
	defer game.Close()
	if game.SnapshotParameters().HighestScore != 0 {
		t.Errorf("Expected no high score, got %d", game.SnapshotParameters().HighestScore)
	}
}

func TestMCPEndpoint(t *testing.T) {
	svc, err := initializeServices(testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	defer svc.sessions.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := newHub(ctx, svc.game)

	// The MCP client needs the API URL, which only exists once the server runs
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()
	router := newRouter(api.NewServer(svc.game, hub), mcp.NewClient(ts.URL))
	mux.Handle("/", router)

	if resp, err := http.Get(ts.URL + "/mcp"); err != nil {
		t.Fatal(err)
	} else {
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for GET /mcp, got %d", resp.StatusCode)
		}
	}

	call := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"create_session","arguments":{"config_id":"classic"}}}`
	resp, err := http.Post(ts.URL+"/mcp", "application/json", bytes.NewBufferString(call))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var rpc struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		t.Fatal(err)
	}
	if len(rpc.Result.Content) == 0 || !strings.Contains(rpc.Result.Content[0].Text, "Created session") {
		t.Errorf("Unexpected MCP response: %+v", rpc)
	}
	if svc.sessions.Count() != 1 {
		t.Errorf("Expected one session, got %d", svc.sessions.Count())
	}
}

func TestStreamSessions(t *testing.T) {
	svc, err := initializeServices(testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	defer svc.sessions.Close()

	ctx, cancel := context.WithCancel(context.Background())
	hub := newHub(ctx, svc.game)

	done := make(chan struct{})
	go func() {
		streamSessions(ctx, hub, svc.game)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("streamSessions did not stop on cancel")
	}
}

func TestApiReachable(t *testing.T) {
	ts := httptest.NewServer(api.NewServer(service.NewGameService(nil, nil), nil))
	defer ts.Close()

	if !apiReachable(ts.URL) {
		t.Error("Expected health check to succeed")
	}
	if apiReachable("http://127.0.0.1:1") {
		t.Error("Expected unreachable API")
	}
}
