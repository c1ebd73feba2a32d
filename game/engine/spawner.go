package engine

// Spawner produces enemy batches on a fixed cadence of simulation steps.
// The cadence counter belongs to one game, so concurrent games never share it.
type Spawner struct {
	period int
	tick   int
}

// NewSpawner creates a spawner that emits a batch every period calls
func NewSpawner(period int) *Spawner {
	if period < 1 {
		period = 1
	}
	return &Spawner{period: period}
}

// Spawn advances the cadence counter and returns a batch of 1-2 enemies on
// every period-th call, nil otherwise. Lanes within a batch are distinct.
func (s *Spawner) Spawn(rng RandomSource) []EnemyCar {
	if s.tick < s.period-1 {
		s.tick++
		return nil
	}
	s.tick = 0

	count := rng.IntN(2) + 1
	lanes := make([]int, LaneCount)
	for i := range lanes {
		lanes[i] = i
	}
	rng.Shuffle(len(lanes), func(i, j int) {
		lanes[i], lanes[j] = lanes[j], lanes[i]
	})

	batch := make([]EnemyCar, 0, count)
	for _, lane := range lanes[:count] {
		batch = append(batch, NewEnemy(lane))
	}
	return batch
}

// InitialSpawn forces a batch immediately, used when a round starts
func (s *Spawner) InitialSpawn(rng RandomSource) []EnemyCar {
	s.tick = s.period - 1
	return s.Spawn(rng)
}

// Reset rewinds the cadence counter
func (s *Spawner) Reset() {
	s.tick = 0
}

// isOffGrid reports whether an enemy has fully left the bottom of the field
func isOffGrid(e EnemyCar) bool {
	return e.Top() > FieldHeight-1
}

// removeOffGrid deletes enemies below the field and returns how many left
func removeOffGrid(enemies *EnemySet) int {
	return enemies.RemoveWhere(isOffGrid)
}
