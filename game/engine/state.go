package engine

import "sync/atomic"

// stateCell is the single source of truth for the game lifecycle, written by
// both the state machine and the simulation loop
type stateCell struct {
	v atomic.Int32
}

func (c *stateCell) Load() GameState {
	return GameState(c.v.Load())
}

func (c *stateCell) Store(s GameState) {
	c.v.Store(int32(s))
}

// CompareAndSwap moves from old to next only if no other writer got there first
func (c *stateCell) CompareAndSwap(old, next GameState) bool {
	return c.v.CompareAndSwap(int32(old), int32(next))
}
