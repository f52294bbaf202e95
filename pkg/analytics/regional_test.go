package analytics

import (
	"testing"

	"github.com/hazyhaar/adei/pkg/index"
	"github.com/hazyhaar/adei/pkg/regions"
)

func testClassifier(t *testing.T) *regions.Classifier {
	t.Helper()
	tbl := `
regions:
  - name: Alpha Region
    countries: [Aland, Alba, Alta]
  - name: Beta Region
    countries: [Bora]
  - name: Empty Region
    countries: [Nowhere]
`
	c, err := regions.Parse([]byte(tbl))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func regionalRecords() []index.Record {
	return []index.Record{
		fixtureRecord("Aland", 90, [9]float64{60, 0, 0, 0, 0, 0, 0, 0, 0}),
		fixtureRecord("Alba", 80, [9]float64{40, 0, 0, 0, 0, 0, 0, 0, 0}),
		fixtureRecord("Alta", 70, [9]float64{20, 0, 0, 0, 0, 0, 0, 0, 0}),
		fixtureRecord("Bora", 60, [9]float64{10, 0, 0, 0, 0, 0, 0, 0, 0}),
		fixtureRecord("Xanadu", 50, [9]float64{5, 0, 0, 0, 0, 0, 0, 0, 0}),
	}
}

func TestPeerComparison(t *testing.T) {
	a := newFixture(t, regionalRecords(), testClassifier(t))

	pc, err := a.PeerComparison("Aland")
	if err != nil {
		t.Fatalf("PeerComparison: %v", err)
	}
	if pc.Region != "Alpha Region" {
		t.Errorf("region = %q", pc.Region)
	}
	if pc.PeerCount != 2 {
		t.Errorf("peer count = %d, want 2", pc.PeerCount)
	}
	if len(pc.Rows) != 9 {
		t.Fatalf("rows = %d, want 9", len(pc.Rows))
	}
	// Pillar one: Aland 60 vs mean(Alba 40, Alta 20) = 30.
	if pc.Rows[0].Score != 60 || pc.Rows[0].PeerMean != 30 {
		t.Errorf("pillar 1 = %v vs %v, want 60 vs 30", pc.Rows[0].Score, pc.Rows[0].PeerMean)
	}
}

func TestPeerComparison_NoPeersFallsBackToSelf(t *testing.T) {
	a := newFixture(t, regionalRecords(), testClassifier(t))

	pc, err := a.PeerComparison("Bora")
	if err != nil {
		t.Fatalf("PeerComparison: %v", err)
	}
	if pc.PeerCount != 0 {
		t.Errorf("peer count = %d, want 0", pc.PeerCount)
	}
	// Sole member of its region: compared against itself.
	if pc.Rows[0].Score != 10 || pc.Rows[0].PeerMean != 10 {
		t.Errorf("self comparison = %v vs %v, want 10 vs 10",
			pc.Rows[0].Score, pc.Rows[0].PeerMean)
	}
}

func TestPeerComparison_Unknown(t *testing.T) {
	a := newFixture(t, regionalRecords(), testClassifier(t))
	pc, err := a.PeerComparison("Atlantis")
	if err != nil {
		t.Fatalf("PeerComparison: %v", err)
	}
	if len(pc.Rows) != 0 {
		t.Errorf("rows = %d, want 0 for unknown country", len(pc.Rows))
	}
}

func TestRegionalAggregation(t *testing.T) {
	a := newFixture(t, regionalRecords(), testClassifier(t))

	b, err := a.RegionalAggregation()
	if err != nil {
		t.Fatalf("RegionalAggregation: %v", err)
	}

	byRegion := make(map[string]RegionStats)
	for _, rs := range b.Regions {
		byRegion[rs.Region] = rs
	}

	alpha, ok := byRegion["Alpha Region"]
	if !ok {
		t.Fatal("Alpha Region missing")
	}
	if alpha.CountryCount != 3 {
		t.Errorf("Alpha count = %d, want 3", alpha.CountryCount)
	}
	if alpha.AvgADEI != 80 {
		t.Errorf("Alpha avg = %v, want 80 (mean of 90, 80, 70)", alpha.AvgADEI)
	}

	// Unclassified countries land in Other.
	other, ok := byRegion[regions.Other]
	if !ok {
		t.Fatal("Other region missing despite unclassified country")
	}
	if other.CountryCount != 1 || other.AvgADEI != 50 {
		t.Errorf("Other = %+v", other)
	}

	// Declared regions with no loaded members are absent, not zero-filled.
	if _, present := byRegion["Empty Region"]; present {
		t.Error("Empty Region reported despite zero members")
	}

	// Pillar means per region.
	for _, pa := range b.Pillars {
		if pa.Region == "Alpha Region" && pa.Pillar == "Institutions" {
			if pa.Avg != 40 {
				t.Errorf("Alpha Institutions avg = %v, want 40", pa.Avg)
			}
			return
		}
	}
	t.Error("no (Alpha Region, Institutions) pillar average")
}

func TestMapData(t *testing.T) {
	records := []index.Record{
		fixtureRecord("Saudi Arabia", 80, [9]float64{}),
		fixtureRecord("Cote d'Ivoire", 50, [9]float64{}),
		fixtureRecord("Atlantis", 40, [9]float64{}),
	}
	a := newFixture(t, records, nil)

	rows, err := a.MapData()
	if err != nil {
		t.Fatalf("MapData: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (unresolvable country dropped)", len(rows))
	}
	codes := map[string]string{}
	for _, r := range rows {
		codes[r.Country] = r.ISOAlpha3
	}
	if codes["Saudi Arabia"] != "SAU" || codes["Cote d'Ivoire"] != "CIV" {
		t.Errorf("codes = %v", codes)
	}
}
