// Package catalog tracks which club/season datasets have been published.
// The ingestion gate reads it before any scraping begins; the assembler's
// publish step writes it.
package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/matchday/matchday-data/internal/dataset"
)

// Catalog is the registry of published season datasets.
type Catalog interface {
	// Contains reports whether a dataset key has been published.
	Contains(ctx context.Context, key string) (bool, error)
	// ListKeys returns all published dataset keys.
	ListKeys(ctx context.Context) ([]string, error)
	// Publish stores a season dataset under its key, replacing any prior
	// publication wholesale.
	Publish(ctx context.Context, ds *dataset.SeasonDataset) error
}

// Memory is an in-process Catalog. Used by tests and dry runs.
type Memory struct {
	mu       sync.RWMutex
	datasets map[string]*dataset.SeasonDataset
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{datasets: make(map[string]*dataset.SeasonDataset)}
}

func (m *Memory) Contains(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.datasets[key]
	return ok, nil
}

func (m *Memory) ListKeys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.datasets))
	for key := range m.datasets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Publish(_ context.Context, ds *dataset.SeasonDataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[ds.Key] = ds
	return nil
}

// Get returns a published dataset. Only the in-memory catalog offers
// read-back; the Postgres catalog is queried through the API layer.
func (m *Memory) Get(key string) (*dataset.SeasonDataset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, ok := m.datasets[key]
	return ds, ok
}
