package analytics

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hazyhaar/adei/pkg/catalog"
	"github.com/hazyhaar/adei/pkg/index"
	"github.com/hazyhaar/adei/pkg/regions"
	"github.com/hazyhaar/adei/pkg/store"
)

// fixtureRecord builds one raw record with the given ADEI and nine pillar
// totals. Sub-indicator scores follow a fixed formula, (pillar#)*10 + index,
// so extremes are predictable: the lowest values sit in pillar one, the
// highest in pillar nine.
func fixtureRecord(name string, adei float64, totals [9]float64) index.Record {
	rec := index.Record{
		catalog.CountryCol: name,
		catalog.ADEICol:    strconv.FormatFloat(adei, 'f', -1, 64),
	}
	for i, p := range catalog.Pillars() {
		rec[p.TotalCol] = strconv.FormatFloat(totals[i], 'f', -1, 64)
		for j, s := range p.Subs {
			rec[s.Code] = strconv.Itoa((i+1)*10 + j)
		}
	}
	return rec
}

// fleet returns n records with strictly descending ADEI scores and pillar
// patterns chosen for the correlation tests: pillar 2 tracks pillar 1
// exactly, pillar 3 mirrors it.
func fleet(n int) []index.Record {
	records := make([]index.Record, n)
	for i := 0; i < n; i++ {
		var totals [9]float64
		totals[0] = float64(80 - i)
		totals[1] = float64(80 - i)
		totals[2] = float64(20 + i)
		for k := 3; k < 9; k++ {
			totals[k] = float64(30 + (i*(k+2))%17)
		}
		records[i] = fixtureRecord(fmt.Sprintf("Country %02d", i), float64(100-2*i), totals)
	}
	return records
}

func newFixture(t *testing.T, records []index.Record, c *regions.Classifier) *Analytics {
	t.Helper()
	countries := index.Build(records, slog.New(slog.DiscardHandler))

	path := filepath.Join(t.TempDir(), "adei.db")
	if err := store.Rebuild(path, countries); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, c)
}

func TestLeaderboard(t *testing.T) {
	a := newFixture(t, fleet(22), nil)

	lb, err := a.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(lb.Top10) != 10 || len(lb.Bottom10) != 10 {
		t.Fatalf("top = %d, bottom = %d, want 10 each", len(lb.Top10), len(lb.Bottom10))
	}
	if lb.Top10[0].ADEIRank != 1 {
		t.Errorf("top rank = %d, want 1", lb.Top10[0].ADEIRank)
	}

	// With 22 countries the two lists never overlap.
	seen := make(map[string]bool)
	for _, cr := range lb.Top10 {
		seen[cr.Name] = true
	}
	for _, cr := range lb.Bottom10 {
		if seen[cr.Name] {
			t.Errorf("country %s in both top and bottom ten", cr.Name)
		}
	}

	// Bottom ten strictly ascending by rank.
	for i := 1; i < len(lb.Bottom10); i++ {
		if lb.Bottom10[i].ADEIRank <= lb.Bottom10[i-1].ADEIRank {
			t.Errorf("bottom ten not ascending at %d: %d then %d",
				i, lb.Bottom10[i-1].ADEIRank, lb.Bottom10[i].ADEIRank)
		}
	}
}

func TestLeaderboard_SmallStore(t *testing.T) {
	a := newFixture(t, fleet(4), nil)
	lb, err := a.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(lb.Top10) != 4 || len(lb.Bottom10) != 4 {
		t.Errorf("small store: top = %d, bottom = %d, want 4 each",
			len(lb.Top10), len(lb.Bottom10))
	}
}

func TestAveragePillarScores(t *testing.T) {
	records := []index.Record{
		fixtureRecord("A", 90, [9]float64{40, 10, 10, 10, 10, 10, 10, 10, 10}),
		fixtureRecord("B", 80, [9]float64{60, 20, 10, 10, 10, 10, 10, 10, 10}),
	}
	a := newFixture(t, records, nil)

	avgs, err := a.AveragePillarScores()
	if err != nil {
		t.Fatalf("AveragePillarScores: %v", err)
	}
	if len(avgs) != 9 {
		t.Fatalf("averages = %d, want 9", len(avgs))
	}
	if avgs[0].Pillar != "Institutions" {
		t.Errorf("first pillar label = %q, want cleaned %q", avgs[0].Pillar, "Institutions")
	}
	if avgs[0].Average != 50 {
		t.Errorf("Institutions average = %v, want 50", avgs[0].Average)
	}
	if avgs[1].Average != 15 {
		t.Errorf("Infrastructure average = %v, want 15", avgs[1].Average)
	}
}

func TestCountryProfile_RoundTrip(t *testing.T) {
	a := newFixture(t, fleet(5), nil)

	p, err := a.CountryProfile("Country 00")
	if err != nil {
		t.Fatalf("CountryProfile: %v", err)
	}
	if p.Main == nil {
		t.Fatal("Main is nil for a stored country")
	}
	if p.Main.ADEIScore != 100 || p.Main.ADEIRank != 1 {
		t.Errorf("main = %d/%d, want 100/1", p.Main.ADEIScore, p.Main.ADEIRank)
	}
	if len(p.Pillars) != 9 {
		t.Fatalf("pillars = %d, want 9", len(p.Pillars))
	}
	if len(p.SubIndicators) != 53 {
		t.Errorf("sub-indicators = %d, want 53", len(p.SubIndicators))
	}

	// Totals survive the normalize -> load -> query round trip.
	if diff := p.Pillars[0].Score - 80; diff > 0.01 || diff < -0.01 {
		t.Errorf("pillar 1 score = %v, want 80 within 0.01", p.Pillars[0].Score)
	}
	for _, ps := range p.Pillars {
		if ps.Pillar == "" || containsOrdinal(ps.Pillar) {
			t.Errorf("pillar label %q not cleaned", ps.Pillar)
		}
	}
	// Sub-indicators come back grouped by pillar in insertion order.
	if p.SubIndicators[0].Indicator != "Political Environment" {
		t.Errorf("first indicator = %q", p.SubIndicators[0].Indicator)
	}
	if last := p.SubIndicators[52]; last.Indicator != "Goal 17: Partnerships for the Goals" {
		t.Errorf("last indicator = %q", last.Indicator)
	}
}

func TestCountryProfile_Unknown(t *testing.T) {
	a := newFixture(t, fleet(3), nil)

	p, err := a.CountryProfile("Atlantis")
	if err != nil {
		t.Fatalf("CountryProfile(Atlantis): %v", err)
	}
	if p.Main != nil || len(p.Pillars) != 0 || len(p.SubIndicators) != 0 {
		t.Errorf("unknown country: got main=%v pillars=%d subs=%d, want all empty",
			p.Main, len(p.Pillars), len(p.SubIndicators))
	}
}

func TestCompare(t *testing.T) {
	a := newFixture(t, fleet(6), nil)

	cmp, err := a.Compare([]string{"Country 04", "Country 01"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(cmp.Main) != 2 {
		t.Fatalf("main = %d, want 2", len(cmp.Main))
	}
	if cmp.Main[0].Name != "Country 01" {
		t.Errorf("main not ordered by rank: first = %s", cmp.Main[0].Name)
	}
	if len(cmp.Pillars) != 18 {
		t.Errorf("pillar rows = %d, want 18", len(cmp.Pillars))
	}
	for _, cp := range cmp.Pillars {
		if containsOrdinal(cp.Pillar) {
			t.Errorf("pillar label %q not cleaned", cp.Pillar)
		}
	}
}

func TestCompare_Empty(t *testing.T) {
	a := newFixture(t, fleet(3), nil)
	cmp, err := a.Compare(nil)
	if err != nil {
		t.Fatalf("Compare(nil): %v", err)
	}
	if len(cmp.Main) != 0 || len(cmp.Pillars) != 0 {
		t.Error("empty selection should yield empty comparison")
	}
}

func TestCountryList(t *testing.T) {
	a := newFixture(t, fleet(3), nil)
	names, err := a.CountryList()
	if err != nil {
		t.Fatalf("CountryList: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("names = %d, want 3", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Errorf("names not ascending: %q before %q", names[i-1], names[i])
		}
	}
}

// Reloading the same input must reproduce identical query results.
func TestReload_Idempotent(t *testing.T) {
	records := fleet(8)
	a1 := newFixture(t, records, nil)
	a2 := newFixture(t, records, nil)

	lb1, err := a1.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	lb2, err := a2.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if fmt.Sprintf("%+v", lb1) != fmt.Sprintf("%+v", lb2) {
		t.Error("leaderboard differs between identical reloads")
	}

	p1, _ := a1.CountryProfile("Country 03")
	p2, _ := a2.CountryProfile("Country 03")
	if fmt.Sprintf("%+v", p1) != fmt.Sprintf("%+v", p2) {
		t.Error("profile differs between identical reloads")
	}
}

func containsOrdinal(label string) bool {
	return strings.Contains(label, "Pillar:")
}
