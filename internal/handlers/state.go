package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// CollectionState is the server-side player collection: the payload clients
// push, a monotonically incrementing version, and a server-stamped
// lastUpdated. Player rows are kept as raw JSON so the server never imposes
// shape on what clients store.
type CollectionState struct {
	mu   sync.RWMutex
	path string // empty means memory only

	players     []json.RawMessage
	lastUpdated time.Time
	version     int64
}

type persistedState struct {
	Players     []json.RawMessage `json:"players"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Version     int64             `json:"version"`
}

// NewCollectionState creates the state, loading any prior payload from disk
// when a path is given. A corrupt file is treated as absent.
func NewCollectionState(path string) *CollectionState {
	s := &CollectionState{path: path, players: []json.RawMessage{}}
	if path == "" {
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var p persistedState
	if err := json.Unmarshal(data, &p); err != nil {
		return s
	}
	if p.Players != nil {
		s.players = p.Players
	}
	s.lastUpdated = p.LastUpdated
	s.version = p.Version
	return s
}

// Snapshot returns a copy of the current collection.
func (s *CollectionState) Snapshot() ([]json.RawMessage, time.Time, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]json.RawMessage, len(s.players))
	copy(players, s.players)
	return players, s.lastUpdated, s.version
}

// Replace overwrites the collection, increments the version and stamps
// lastUpdated server-side.
func (s *CollectionState) Replace(players []json.RawMessage) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if players == nil {
		players = []json.RawMessage{}
	}
	s.players = players
	s.version++
	s.lastUpdated = time.Now().UTC()

	if err := s.persist(); err != nil {
		return 0, time.Time{}, err
	}
	return s.version, s.lastUpdated, nil
}

func (s *CollectionState) persist() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(persistedState{
		Players:     s.players,
		LastUpdated: s.lastUpdated,
		Version:     s.version,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection state: %w", err)
	}

	// Write to temp file then rename for atomic writes
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing collection state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming collection state file: %w", err)
	}
	return nil
}
