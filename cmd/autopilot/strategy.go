package main

import "github.com/wricardo/mcp-training/racegame/game/engine"

const (
	// Player rows on the field
	playerTop    = engine.FieldHeight - engine.CarHeight
	playerBottom = engine.FieldHeight - 1

	// Rows of clear road wanted above the player before staying put
	safeGap = 6
)

// LaneStrategy picks lane switches from the rendered field. It tracks the
// player's lane itself, since every car has the same silhouette.
type LaneStrategy struct {
	lane int
}

// NewLaneStrategy starts in the lane the player spawns in
func NewLaneStrategy() *LaneStrategy {
	return &LaneStrategy{lane: 1}
}

// Reset puts the player back at its spawn lane
func (s *LaneStrategy) Reset() {
	s.lane = 1
}

// Lane returns the tracked lane
func (s *LaneStrategy) Lane() int {
	return s.lane
}

// Moved records an accepted lane switch
func (s *LaneStrategy) Moved(action string) {
	switch action {
	case "left":
		if s.lane > 0 {
			s.lane--
		}
	case "right":
		if s.lane < engine.LaneCount-1 {
			s.lane++
		}
	}
}

// NextAction returns "left", "right" or "" to stay
func (s *LaneStrategy) NextAction(field [][]int) string {
	current := laneGap(field, s.lane)
	if current >= safeGap {
		return ""
	}

	best, bestGap := "", current
	for _, candidate := range []struct {
		action string
		lane   int
	}{
		{"left", s.lane - 1},
		{"right", s.lane + 1},
	} {
		if candidate.lane < 0 || candidate.lane >= engine.LaneCount {
			continue
		}
		if laneBlockedAtPlayer(field, candidate.lane) {
			continue
		}
		if gap := laneGap(field, candidate.lane); gap > bestGap {
			best, bestGap = candidate.action, gap
		}
	}
	return best
}

// laneOccupied reports whether any cell of lane is set in row y
func laneOccupied(field [][]int, lane, y int) bool {
	if y < 0 || y >= len(field) {
		return false
	}
	left := lane * engine.LaneWidth
	for x := left; x < left+engine.LaneWidth && x < len(field[y]); x++ {
		if field[y][x] != 0 {
			return true
		}
	}
	return false
}

// laneGap counts the clear rows in lane directly above the player
func laneGap(field [][]int, lane int) int {
	gap := 0
	for y := playerTop - 1; y >= 0; y-- {
		if laneOccupied(field, lane, y) {
			break
		}
		gap++
	}
	return gap
}

// laneBlockedAtPlayer reports whether moving into lane would hit an enemy
func laneBlockedAtPlayer(field [][]int, lane int) bool {
	for y := playerTop; y <= playerBottom; y++ {
		if laneOccupied(field, lane, y) {
			return true
		}
	}
	return false
}
