package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"club-backend/internal/models"
)

// CanonicalKey is the storage key the document currently lives under.
const CanonicalKey = "club-data"

// legacyKeys are storage keys used by older app versions, in migration
// priority order. They are read once and then deleted.
var legacyKeys = []string{"teamData", "soccerTeamData", "footballClubData"}

// FileStore persists the club document as a JSON file on disk.
// The document is stored as {dir}/{key}.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// migrateLegacyKeys copies the first legacy payload found to the canonical
// key when the canonical key is empty, and deletes every legacy file it
// encounters regardless of migration outcome. Idempotent cleanup: a second
// call finds nothing to do.
func (f *FileStore) migrateLegacyKeys() {
	_, canonicalErr := os.Stat(f.path(CanonicalKey))
	canonicalExists := canonicalErr == nil

	for _, key := range legacyKeys {
		p := f.path(key)
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if !canonicalExists && len(data) > 0 {
			if err := os.WriteFile(f.path(CanonicalKey), data, 0644); err == nil {
				canonicalExists = true
			}
		}
		os.Remove(p)
	}
}

// readDocument parses the canonical payload. Corruption or absence fails
// soft: the caller gets a structurally complete empty document.
func (f *FileStore) readDocument() *models.Document {
	data, err := os.ReadFile(f.path(CanonicalKey))
	if err != nil {
		return models.DefaultDocument()
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.DefaultDocument()
	}
	doc.EnsureDefaults()
	return &doc
}

func (f *FileStore) writeDocument(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	// Write to temp file then rename for atomic writes
	p := f.path(CanonicalKey)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming document file: %w", err)
	}
	return nil
}

func (f *FileStore) Load(_ context.Context) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.migrateLegacyKeys()
	return f.readDocument(), nil
}

func (f *FileStore) Save(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.writeDocument(doc)
}

func (f *FileStore) Update(_ context.Context, fn func(*models.Document) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.migrateLegacyKeys()
	doc := f.readDocument()
	if err := fn(doc); err != nil {
		return err
	}
	return f.writeDocument(doc)
}
