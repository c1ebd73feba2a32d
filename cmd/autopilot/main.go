// Command autopilot plays race sessions through the REST API, switching
// lanes away from oncoming enemies, and reports the score of every round.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/racegame/game/engine"
	"github.com/wricardo/mcp-training/racegame/game/service"
)

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// withSession points the client at an existing session
func (c *Client) withSession(id string) *Client {
	c.sessionID = id
	return c
}

func (c *Client) CreateSession(ctx context.Context, configID string) (*service.SessionInfo, error) {
	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetState(ctx context.Context) (*service.StateView, error) {
	var state service.StateView
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+c.sessionID+"/state", nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

func (c *Client) Act(ctx context.Context, action string) (*service.ActionResult, error) {
	var result service.ActionResult
	body := map[string]interface{}{"action": action}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+"/actions", body, &result); err != nil {
		return nil, fmt.Errorf("action %s: %w", action, err)
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s - %s", resp.Status, bytes.TrimSpace(data))
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// Autopilot drives one session
type Autopilot struct {
	client   *Client
	strategy *LaneStrategy
	interval time.Duration
	verbose  bool
}

// RoundResult is the outcome of one round
type RoundResult struct {
	Score     int
	HighScore int
	Level     int
	Duration  time.Duration
}

// PlayRound starts a round and steers until it ends or ctx is done
func (a *Autopilot) PlayRound(ctx context.Context) (*RoundResult, error) {
	a.strategy.Reset()
	result, err := a.client.Act(ctx, "start")
	if err != nil {
		return nil, err
	}
	if result.GameState.State != engine.StateMoving {
		return nil, fmt.Errorf("round did not start, state %s", result.GameState.State)
	}
	started := time.Now()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		state, err := a.client.GetState(ctx)
		if err != nil {
			return nil, err
		}

		switch state.State {
		case engine.StateGameOver, engine.StateExit, engine.StateStart:
			return &RoundResult{
				Score:     state.Score,
				HighScore: state.HighestScore,
				Level:     state.Level,
				Duration:  time.Since(started),
			}, nil
		case engine.StatePause:
			continue
		}

		action := a.strategy.NextAction(state.Field)
		if action == "" {
			continue
		}
		moved, err := a.client.Act(ctx, action)
		if err != nil {
			return nil, err
		}
		if moved.GameState.State == engine.StateMoving {
			a.strategy.Moved(action)
		}
		if a.verbose {
			log.Printf("%s -> lane %d (score %d)", action, a.strategy.Lane(), moved.GameState.Score)
		}
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	serverURL := cmd.String("url")
	log.Printf("Connecting to game server at %s", serverURL)
	client := NewClient(serverURL)

	if id := cmd.String("continue"); id != "" {
		client.withSession(id)
		if _, err := client.GetState(ctx); err != nil {
			return fmt.Errorf("failed to resume session %s: %w", id, err)
		}
		log.Printf("Resuming session: %s", id)
	} else {
		session, err := client.CreateSession(ctx, cmd.String("config"))
		if err != nil {
			return err
		}
		log.Printf("Session created: %s (%s)", session.ID, session.ConfigName)
	}

	pilot := &Autopilot{
		client:   client,
		strategy: NewLaneStrategy(),
		interval: cmd.Duration("interval"),
		verbose:  cmd.Bool("v"),
	}

	rounds := cmd.Int("rounds")
	best := 0
	for round := 1; round <= rounds; round++ {
		result, err := pilot.PlayRound(ctx)
		if err != nil {
			return err
		}
		best = max(best, result.Score)
		log.Printf("Round %d/%d: score=%d level=%d high=%d time=%s",
			round, rounds, result.Score, result.Level, result.HighScore, result.Duration.Round(time.Millisecond))
	}

	log.Printf("Best score: %d (session %s)", best, client.sessionID)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "autopilot",
		Usage: "Play race sessions through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("RACE_API_URL")},
			&cli.StringFlag{Name: "config", Usage: "Timing profile for a new session"},
			&cli.StringFlag{Name: "continue", Usage: "Play an existing session by ID"},
			&cli.IntFlag{Name: "rounds", Value: 3, Usage: "Rounds to play"},
			&cli.DurationFlag{Name: "interval", Value: 50 * time.Millisecond, Usage: "Polling interval"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
