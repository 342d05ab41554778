package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"lead-connector/internal/infra/logger"
)

// FileRepository persists one record kind as a flat, human-readable JSON array.
// Every mutation re-reads the file and rewrites it in full; records are never
// deleted. The mutex only serializes writers inside this process, and the
// rewrite is not atomic on disk. Concurrent processes or a crash mid-write can
// lose or corrupt data. Acceptable at this write rate; known limitation.
type FileRepository[T any] struct {
	path  string
	keyOf func(T) string
	log   *logger.Logger
	mu    sync.Mutex
}

func NewFileRepository[T any](path string, keyOf func(T) string, log *logger.Logger) *FileRepository[T] {
	return &FileRepository[T]{path: path, keyOf: keyOf, log: log}
}

func (r *FileRepository[T]) FindAll() ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(), nil
}

// Upsert replaces the record with the same key, or appends when no record
// matches. Last write wins on conflicting fields.
func (r *FileRepository[T]) Upsert(entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entities := r.loadLocked()
	key := r.keyOf(entity)

	replaced := false
	for i := range entities {
		if r.keyOf(entities[i]) == key {
			entities[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		entities = append(entities, entity)
	}

	return r.writeLocked(entities)
}

// loadLocked reads the backing file. A missing or corrupt file is recovered
// locally as an empty set; it is never fatal.
func (r *FileRepository[T]) loadLocked() []T {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Warn(fmt.Sprintf("Failed to read %s, treating as empty: %v", r.path, err))
		}
		return nil
	}

	var entities []T
	if err := json.Unmarshal(data, &entities); err != nil {
		r.log.Warn(fmt.Sprintf("Corrupt record file %s, treating as empty: %v", r.path, err))
		return nil
	}
	return entities
}

func (r *FileRepository[T]) writeLocked(entities []T) error {
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		r.log.Error(fmt.Sprintf("Failed to marshal records for %s: %v", r.path, err))
		return err
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		r.log.Error(fmt.Sprintf("Failed to write %s: %v", r.path, err))
		return err
	}
	return nil
}
