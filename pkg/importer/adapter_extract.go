package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/hazyhaar/adei/pkg/index"
)

func init() {
	Register(&extractAdapter{})
}

// extractAdapter ingests the structured JSON produced by the external
// document-extraction collaborator (PDF report path). The document already
// carries the entity-graph shape; each country is validated against the same
// invariants as workbook rows and invalid ones are skipped, not fatal —
// extraction quality varies per country section.
type extractAdapter struct{}

func (a *extractAdapter) ID() string { return "adei-extract" }
func (a *extractAdapter) Description() string {
	return "Pre-extracted country documents (JSON entity graph from the PDF extraction pipeline)"
}

func (a *extractAdapter) Ingest(ctx context.Context, source string) ([]index.Country, error) {
	dlDir, err := os.MkdirTemp("", "adei-extract-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dlDir)

	path, err := fetch(ctx, source, dlDir)
	if err != nil {
		return nil, fmt.Errorf("fetch extract document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extract document: %w", err)
	}

	var raw []index.Country
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse extract document: %w", err)
	}

	countries := make([]index.Country, 0, len(raw))
	for _, c := range raw {
		if err := c.Validate(); err != nil {
			slog.Warn("skipping invalid extracted country", "adapter", a.ID(), "error", err)
			continue
		}
		countries = append(countries, c)
	}

	sort.SliceStable(countries, func(i, j int) bool {
		return countries[i].OverallADEIRank < countries[j].OverallADEIRank
	})
	return countries, nil
}
