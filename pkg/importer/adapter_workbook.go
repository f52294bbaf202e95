package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hazyhaar/adei/pkg/index"
	"github.com/xuri/excelize/v2"
)

func init() {
	Register(&workbookAdapter{sheet: "Sheet1"})
}

// workbookAdapter ingests the annual ADEI Excel workbook: one row per
// country, pillar totals under single-digit headers, sub-indicators under
// dotted headers like "1.1.2".
type workbookAdapter struct {
	sheet string
}

func (a *workbookAdapter) ID() string { return "adei-workbook" }
func (a *workbookAdapter) Description() string {
	return "ADEI Excel workbook (one row per country, pillar columns 1..9)"
}

func (a *workbookAdapter) Ingest(ctx context.Context, source string) ([]index.Country, error) {
	dlDir, err := os.MkdirTemp("", "adei-workbook-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dlDir)

	path, err := fetch(ctx, source, dlDir)
	if err != nil {
		return nil, fmt.Errorf("fetch workbook: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(a.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", a.sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", a.sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = index.NormalizeHeader(h)
	}

	records := make([]index.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(index.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		records = append(records, rec)
	}

	slog.Info("workbook rows read", "adapter", a.ID(), "rows", len(records))
	return index.Build(records, slog.Default()), nil
}
