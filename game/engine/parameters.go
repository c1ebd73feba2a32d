package engine

import "sync/atomic"

// Parameters holds the live progression values of a game.
//
// Ownership: the ScoreEngine (running on the loop goroutine) writes score,
// highest score, level and speed; the state machine writes paused and calls
// Reset only after the loop has been joined. The loop reads speed every
// iteration. Every field is atomic so no reader blocks a writer.
type Parameters struct {
	score        atomic.Int64
	highestScore atomic.Int64
	level        atomic.Int64
	speed        atomic.Int64
	paused       atomic.Bool
}

// ParametersSnapshot is a point-in-time copy of Parameters
type ParametersSnapshot struct {
	Score        int  `json:"score"`
	HighestScore int  `json:"high_score"`
	Level        int  `json:"level"`
	Speed        int  `json:"speed"`
	Paused       bool `json:"pause"`
}

// NewParameters returns parameters at their initial values
func NewParameters(highestScore int) *Parameters {
	p := &Parameters{}
	p.highestScore.Store(int64(max(highestScore, 0)))
	p.Reset()
	return p
}

// Reset restores score, level and speed for a new round. The highest score is kept.
func (p *Parameters) Reset() {
	p.score.Store(0)
	p.level.Store(InitialLevel)
	p.speed.Store(InitialSpeed)
	p.paused.Store(false)
}

func (p *Parameters) Score() int        { return int(p.score.Load()) }
func (p *Parameters) HighestScore() int { return int(p.highestScore.Load()) }
func (p *Parameters) Level() int        { return int(p.level.Load()) }
func (p *Parameters) Speed() int        { return int(p.speed.Load()) }
func (p *Parameters) Paused() bool      { return p.paused.Load() }

func (p *Parameters) setPaused(paused bool) {
	p.paused.Store(paused)
}

// Snapshot copies the current values
func (p *Parameters) Snapshot() ParametersSnapshot {
	return ParametersSnapshot{
		Score:        p.Score(),
		HighestScore: p.HighestScore(),
		Level:        p.Level(),
		Speed:        p.Speed(),
		Paused:       p.Paused(),
	}
}
