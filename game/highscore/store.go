package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/racegame/game/engine"
)

// DefaultFileName is the score file used when none is configured
const DefaultFileName = "race_score"

var (
	ErrNotFound     = errors.New("high score not found")
	ErrCorrupt      = errors.New("high score file is corrupt")
	ErrInvalidScore = errors.New("invalid high score")
)

var (
	_ engine.HighScoreStore = (*FileStore)(nil)
	_ engine.HighScoreStore = (*MemoryStore)(nil)
	_ engine.HighScoreStore = NopStore{}
)

// FileStore persists the high score as a decimal integer in a text file
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path. The file is created on the
// first save.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{path: path}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// LoadHighScore reads the stored score
func (s *FileStore) LoadHighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to read high score file: %w", err)
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("%w: negative value %d", ErrCorrupt, score)
	}
	return score, nil
}

// SaveHighScore replaces the stored score. The write goes through a temp
// file in the same directory so readers never see a partial value.
func (s *FileStore) SaveHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create high score directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace high score file: %w", err)
	}
	return nil
}

// MemoryStore keeps the high score in memory
type MemoryStore struct {
	mu    sync.Mutex
	score int
	set   bool
	saves int
	fail  bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates an in-memory store holding score
func NewMemoryStoreWith(score int) *MemoryStore {
	return &MemoryStore{score: score, set: true}
}

func (s *MemoryStore) LoadHighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, ErrCorrupt
	}
	if !s.set {
		return 0, ErrNotFound
	}
	return s.score, nil
}

func (s *MemoryStore) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.fail {
		return errors.New("memory store failing")
	}
	if score < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	s.score = score
	s.set = true
	return nil
}

// Fail switches the store into (or out of) a mode where every call errors
func (s *MemoryStore) Fail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// Saves returns the number of save attempts
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// NopStore discards every save
type NopStore struct{}

func (NopStore) LoadHighScore() (int, error) { return 0, ErrNotFound }
func (NopStore) SaveHighScore(int) error     { return nil }
