package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hazyhaar/adei/pkg/index"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

func init() {
	Register(&csvAdapter{})
}

// NewCSVAdapter returns a CSV adapter reading sources in the named encoding
// ("" or "utf-8" for no transcoding). Encodings resolve through the WHATWG
// index, so "windows-1252", "latin1" and friends all work.
func NewCSVAdapter(encoding string) Adapter {
	return &csvAdapter{encoding: encoding}
}

// csvAdapter ingests a CSV export of the ADEI sheet. A non-empty encoding
// transcodes the source before parsing (legacy exports arrive in
// windows-1252).
type csvAdapter struct {
	encoding string
}

func (a *csvAdapter) ID() string { return "adei-csv" }
func (a *csvAdapter) Description() string {
	return "CSV export of the ADEI sheet (same columns as the workbook)"
}

func (a *csvAdapter) Ingest(ctx context.Context, source string) ([]index.Country, error) {
	dlDir, err := os.MkdirTemp("", "adei-csv-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dlDir)

	path, err := fetch(ctx, source, dlDir)
	if err != nil {
		return nil, fmt.Errorf("fetch csv: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := a.encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = index.NormalizeHeader(h)
	}

	var records []index.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rec := make(index.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		records = append(records, rec)
	}

	slog.Info("csv rows read", "adapter", a.ID(), "rows", len(records))
	return index.Build(records, slog.Default()), nil
}

func isUTF8(enc string) bool {
	switch strings.ToLower(enc) {
	case "utf-8", "utf8":
		return true
	}
	return false
}
