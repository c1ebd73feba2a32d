package engine

import (
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// simulationLoop advances enemies on a speed-dependent cadence in its own
// goroutine. It runs from the Start transition until a collision, a
// Terminate or a GAMEOVER cleanup cancels it.
type simulationLoop struct {
	config  *Config
	state   *stateCell
	params  *Parameters
	enemies *EnemySet
	player  *atomic.Pointer[PlayerCar]
	spawner *Spawner
	score   *ScoreEngine
	rng     RandomSource

	// Virtual frame counter, also written by SpeedUp from the foreground
	counter atomic.Int64

	// Only touched by the loop goroutine
	amplifier     int64
	previousSpeed int

	// Control
	cancelled atomic.Bool
	running   atomic.Bool
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup

	// Steps entered so far. Only read by tests.
	steps atomic.Uint64
}

func newSimulationLoop(g *Game) *simulationLoop {
	return &simulationLoop{
		config:        g.config,
		state:         &g.state,
		params:        g.params,
		enemies:       g.enemies,
		player:        &g.player,
		spawner:       g.spawner,
		score:         g.score,
		rng:           g.rng,
		previousSpeed: g.params.Speed(),
		amplifier:     amplifyDelta(g.config.BaseTickMs, g.params.Speed()),
		stopChan:      make(chan struct{}),
	}
}

// amplifyDelta returns floor((baseTick/2) * ln(speed))
func amplifyDelta(baseTickMs, speed int) int64 {
	if speed <= 1 {
		return 0
	}
	return int64(math.Floor(float64(baseTickMs) / 2 * math.Log(float64(speed))))
}

// StepInterval estimates the real time between two simulation steps at
// speed. Bursts and the time spent inside a step are ignored.
func StepInterval(config *Config, speed int) time.Duration {
	perIteration := int64(config.BaseTickMs) + amplifyDelta(config.BaseTickMs, speed)
	iterations := (int64(config.FrameThreshold) + perIteration - 1) / perIteration
	return time.Duration(iterations) * config.SleepInterval()
}

// start launches the loop goroutine once
func (l *simulationLoop) start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		go l.run()
	}
}

// cancel requests the loop to exit at the top of its next iteration.
// Safe to call from any goroutine, any number of times.
func (l *simulationLoop) cancel() {
	l.cancelled.Store(true)
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// join blocks until the loop goroutine has exited
func (l *simulationLoop) join() {
	l.wg.Wait()
}

// stop cancels and joins
func (l *simulationLoop) stop() {
	l.cancel()
	l.join()
}

// speedUp injects a burst into the frame counter, bringing the next step closer
func (l *simulationLoop) speedUp() {
	l.counter.Add(int64(l.config.BurstIncrement))
}

func (l *simulationLoop) run() {
	defer l.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: simulation loop stopped after panic: %v", r)
			l.cancelled.Store(true)
		}
	}()

	timer := time.NewTimer(l.config.SleepInterval())
	defer timer.Stop()

	for !l.cancelled.Load() {
		if speed := l.params.Speed(); speed != l.previousSpeed {
			l.amplifier = amplifyDelta(l.config.BaseTickMs, speed)
			l.previousSpeed = speed
		}

		frames := l.counter.Add(int64(l.config.BaseTickMs) + l.amplifier)
		if frames >= int64(l.config.FrameThreshold) && l.state.Load() == StateMoving {
			l.step()
		}

		timer.Reset(l.config.SleepInterval())
		select {
		case <-timer.C:
		case <-l.stopChan:
			return
		}
	}
}

// step performs one spawn, advance, collision and cleanup pass
func (l *simulationLoop) step() {
	defer l.counter.Store(0)
	l.steps.Add(1)

	l.enemies.Add(l.spawner.Spawn(l.rng)...)
	l.enemies.Advance(1)

	if player := l.player.Load(); player != nil && l.enemies.AnyCollides(player.Car) {
		l.enemies.Advance(-1)
		// A Pause or Terminate that landed during the step keeps its state
		if l.state.CompareAndSwap(StateMoving, StateGameOver) {
			l.cancel()
		}
		return
	}

	removed := removeOffGrid(l.enemies)
	for i := 0; i < removed; i++ {
		l.score.OnEnemyRemoved()
	}
}
