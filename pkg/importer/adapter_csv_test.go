package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const csvFixture = `Country,ADEI,Rank,1,1.1.1,2,3,4,5,6,7,8,9
Alpha,90,1,80,70,60,50,40,30,20,10,5
Beta,75,2,60,50,40,30,20,10,5,2,1
Gamma,75,3,40,30,20,10,5,2,1,0.5,0.2
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adei.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCSVAdapter_Ingest(t *testing.T) {
	a := &csvAdapter{}
	countries, err := a.Ingest(context.Background(), writeCSV(t, csvFixture))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(countries) != 3 {
		t.Fatalf("countries = %d, want 3", len(countries))
	}

	alpha := countries[0]
	if alpha.CountryName != "Alpha" || alpha.OverallADEIRank != 1 {
		t.Errorf("first = %s rank %d", alpha.CountryName, alpha.OverallADEIRank)
	}
	// Dense tie: Beta and Gamma both score 75.
	if countries[1].OverallADEIRank != 2 || countries[2].OverallADEIRank != 2 {
		t.Errorf("tie ranks = %d, %d, want 2, 2",
			countries[1].OverallADEIRank, countries[2].OverallADEIRank)
	}
	if alpha.DetailedPillars[0].TotalPillarScore != 80 {
		t.Errorf("pillar 1 total = %v, want 80", alpha.DetailedPillars[0].TotalPillarScore)
	}
	if alpha.DetailedPillars[0].SubPillars[0].Score != 70 {
		t.Errorf("1.1.1 = %v, want 70", alpha.DetailedPillars[0].SubPillars[0].Score)
	}
	// Columns absent from the CSV coerce to zero.
	if alpha.DetailedPillars[1].SubPillars[0].Score != 0 {
		t.Errorf("missing sub = %v, want 0", alpha.DetailedPillars[1].SubPillars[0].Score)
	}
}

func TestCSVAdapter_FloatHeaders(t *testing.T) {
	// Spreadsheet exports often render pillar columns as "1.0", "2.0".
	content := "Country,ADEI,1.0,2.0\nAlpha,50,33,44\n"
	a := &csvAdapter{}
	countries, err := a.Ingest(context.Background(), writeCSV(t, content))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	c := countries[0]
	if c.DetailedPillars[0].TotalPillarScore != 33 {
		t.Errorf("pillar 1 = %v, want 33", c.DetailedPillars[0].TotalPillarScore)
	}
	if c.DetailedPillars[1].TotalPillarScore != 44 {
		t.Errorf("pillar 2 = %v, want 44", c.DetailedPillars[1].TotalPillarScore)
	}
}

func TestCSVAdapter_Transcoding(t *testing.T) {
	// "Côte d'Ivoire" with ô encoded as windows-1252 0xF4.
	raw := append([]byte("Country,ADEI\nC"), 0xF4)
	raw = append(raw, []byte("te d'Ivoire,45\n")...)
	path := filepath.Join(t.TempDir(), "latin.csv")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	a := &csvAdapter{encoding: "windows-1252"}
	countries, err := a.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if countries[0].CountryName != "Côte d'Ivoire" {
		t.Errorf("name = %q, want Côte d'Ivoire", countries[0].CountryName)
	}
}

func TestCSVAdapter_SkipsNamelessRows(t *testing.T) {
	content := "Country,ADEI\nAlpha,90\n,50\n"
	a := &csvAdapter{}
	countries, err := a.Ingest(context.Background(), writeCSV(t, content))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(countries) != 1 {
		t.Errorf("countries = %d, want 1 (nameless row skipped)", len(countries))
	}
}

func TestCSVAdapter_MissingFile(t *testing.T) {
	a := &csvAdapter{}
	if _, err := a.Ingest(context.Background(), filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
