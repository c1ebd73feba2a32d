package engine

import "sync"

// EnemySet is the enemy arena shared by the state machine and the simulation
// loop. Every method is safe for concurrent use; iteration goes through
// Snapshot, which copies, so readers never observe a half-applied mutation.
type EnemySet struct {
	mu      sync.RWMutex
	enemies []EnemyCar
	nextID  uint64
}

// NewEnemySet creates an empty arena
func NewEnemySet() *EnemySet {
	return &EnemySet{}
}

// Add inserts enemies, assigning each a fresh ID, and returns the stored values
func (s *EnemySet) Add(enemies ...EnemyCar) []EnemyCar {
	if len(enemies) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]EnemyCar, 0, len(enemies))
	for _, e := range enemies {
		s.nextID++
		e.ID = s.nextID
		s.enemies = append(s.enemies, e)
		added = append(added, e)
	}
	return added
}

// Snapshot returns a copy of the current enemies in insertion order
func (s *EnemySet) Snapshot() []EnemyCar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]EnemyCar(nil), s.enemies...)
}

// Get returns the enemy with the given ID
func (s *EnemySet) Get(id uint64) (EnemyCar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.enemies {
		if e.ID == id {
			return e, true
		}
	}
	return EnemyCar{}, false
}

// Advance moves every enemy vertically by offset rows
func (s *EnemySet) Advance(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.enemies {
		s.enemies[i] = s.enemies[i].Moved(offset)
	}
}

// RemoveWhere deletes every enemy matching pred and returns how many were removed
func (s *EnemySet) RemoveWhere(pred func(EnemyCar) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.enemies[:0]
	removed := 0
	for _, e := range s.enemies {
		if pred(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Drop references past the new length
	for i := len(kept); i < len(s.enemies); i++ {
		s.enemies[i] = EnemyCar{}
	}
	s.enemies = kept
	return removed
}

// AnyCollides reports whether any enemy box overlaps car
func (s *EnemySet) AnyCollides(car Car) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.enemies {
		if e.CollidesWith(car) {
			return true
		}
	}
	return false
}

// Clear removes all enemies. IDs keep increasing across clears.
func (s *EnemySet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enemies = nil
}

// Len returns the number of enemies
func (s *EnemySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.enemies)
}
