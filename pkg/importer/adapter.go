// Package importer ingests ADEI source documents. One adapter per source
// format turns a raw document into the normalized entity graph; the import
// run then writes the interchange JSON (plus a manifest) that the store
// loader consumes. Ingestion and loading only meet through that document.
package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hazyhaar/adei/pkg/index"
)

// Adapter ingests one source format into the entity graph.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "adei-workbook").
	ID() string
	// Description returns a human-readable description.
	Description() string
	// Ingest reads source (a local path or http(s) URL), normalizes it and
	// returns countries sorted ascending by ADEI rank.
	Ingest(ctx context.Context, source string) ([]index.Country, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
