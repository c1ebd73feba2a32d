package engine

// ScoreEngine applies the scoring and progression rules to Parameters
type ScoreEngine struct {
	params *Parameters
	store  HighScoreStore
}

// NewScoreEngine creates a score engine. store may be nil.
func NewScoreEngine(params *Parameters, store HighScoreStore) *ScoreEngine {
	return &ScoreEngine{params: params, store: store}
}

// OnEnemyRemoved credits one point for an enemy that left the field.
// A new high score is persisted best-effort; every fifth point raises the
// level up to MaxLevel, and reaching an even level above 2 raises the speed.
func (s *ScoreEngine) OnEnemyRemoved() {
	score := s.params.score.Add(1)

	if score > s.params.highestScore.Load() {
		s.params.highestScore.Store(score)
		s.saveHighScore(int(score))
	}

	if score%PointsPerLevel != 0 {
		return
	}
	level := s.params.level.Load()
	if level >= MaxLevel {
		return
	}
	level = s.params.level.Add(1)
	if level%2 == 0 && level > 2 {
		s.params.speed.Add(1)
	}
}

// saveHighScore ignores failures: the in-memory value stays authoritative
func (s *ScoreEngine) saveHighScore(score int) {
	if s.store == nil {
		return
	}
	_ = s.store.SaveHighScore(score)
}
