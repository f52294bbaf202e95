package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "adei.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestWorkbookAdapter_Ingest(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Country", "ADEI", 1, "1.1.1", 2},
		{"Alpha", 88.5, 70.25, 61.3, 50},
		{"Beta", 44, 35, 20, 10},
	})

	a := &workbookAdapter{sheet: "Sheet1"}
	countries, err := a.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(countries) != 2 {
		t.Fatalf("countries = %d, want 2", len(countries))
	}

	alpha := countries[0]
	if alpha.CountryName != "Alpha" {
		t.Errorf("first country = %q", alpha.CountryName)
	}
	// ADEI rounds to an integer score; pillar totals keep two decimals.
	if alpha.OverallADEIScore != 89 {
		t.Errorf("score = %v, want 89", alpha.OverallADEIScore)
	}
	if alpha.OverallADEIRank != 1 || countries[1].OverallADEIRank != 2 {
		t.Errorf("ranks = %d, %d", alpha.OverallADEIRank, countries[1].OverallADEIRank)
	}
	if alpha.DetailedPillars[0].TotalPillarScore != 70.25 {
		t.Errorf("pillar 1 = %v, want 70.25", alpha.DetailedPillars[0].TotalPillarScore)
	}
	if alpha.DetailedPillars[0].SubPillars[0].Score != 61.3 {
		t.Errorf("1.1.1 = %v, want 61.3", alpha.DetailedPillars[0].SubPillars[0].Score)
	}
	if alpha.DetailedPillars[1].TotalPillarScore != 50 {
		t.Errorf("pillar 2 = %v, want 50", alpha.DetailedPillars[1].TotalPillarScore)
	}
}

func TestWorkbookAdapter_NumericHeaders(t *testing.T) {
	// Excel renders the pillar header row as floats when cells are numeric.
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Country", "ADEI", "1.0"},
		{"Alpha", 60, 42},
	})

	a := &workbookAdapter{sheet: "Sheet1"}
	countries, err := a.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if countries[0].DetailedPillars[0].TotalPillarScore != 42 {
		t.Errorf("pillar 1 = %v, want 42", countries[0].DetailedPillars[0].TotalPillarScore)
	}
}

func TestWorkbookAdapter_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Country", "ADEI"},
		{"Alpha", 60},
	})

	a := &workbookAdapter{sheet: "Data"}
	if _, err := a.Ingest(context.Background(), path); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestWorkbookAdapter_NoDataRows(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Country", "ADEI"},
	})

	a := &workbookAdapter{sheet: "Sheet1"}
	if _, err := a.Ingest(context.Background(), path); err == nil {
		t.Error("expected error for header-only sheet")
	}
}
