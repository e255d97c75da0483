package store

import (
	"context"
	"encoding/json"
	"sync"

	"club-backend/internal/models"
)

// MemoryStore holds the document in memory. Used in tests and dev mode.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *models.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// clone deep-copies a document so callers never share mutable state with
// the store.
func clone(doc *models.Document) *models.Document {
	data, err := json.Marshal(doc)
	if err != nil {
		return models.DefaultDocument()
	}
	var copied models.Document
	if err := json.Unmarshal(data, &copied); err != nil {
		return models.DefaultDocument()
	}
	copied.EnsureDefaults()
	return &copied
}

func (m *MemoryStore) Load(_ context.Context) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.doc == nil {
		return models.DefaultDocument(), nil
	}
	return clone(m.doc), nil
}

func (m *MemoryStore) Save(_ context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc = clone(doc)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, fn func(*models.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var doc *models.Document
	if m.doc == nil {
		doc = models.DefaultDocument()
	} else {
		doc = clone(m.doc)
	}
	if err := fn(doc); err != nil {
		return err
	}
	m.doc = doc
	return nil
}
