package index

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hazyhaar/adei/pkg/catalog"
)

// Record is one raw row keyed by normalized column header. Cell values stay
// as strings; numeric coercion happens through SafeFloat at build time.
type Record map[string]string

// SafeFloat converts a raw cell to a float. Missing, non-numeric and NaN
// inputs resolve to 0 — an incomplete source row means "no score", never an
// ingestion failure.
func SafeFloat(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizeHeader canonicalizes a workbook column header. Spreadsheet tools
// surface the pillar columns as floats ("2.0" for pillar 2, "1.10" for
// sub-indicator 1.1); numeric headers are reformatted from the parsed value
// so trailing zeros never leak into column keys, everything else is kept
// verbatim.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	f, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return h
	}
	if f == math.Trunc(f) {
		return strconv.Itoa(int(f))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// DenseRanks ranks values descending with dense-minimum semantics:
// rank = 1 + count of strictly greater values, ties share the lowest rank.
func DenseRanks(values []float64) []int {
	ranks := make([]int, len(values))
	for i, v := range values {
		r := 1
		for _, other := range values {
			if other > v {
				r++
			}
		}
		ranks[i] = r
	}
	return ranks
}

// Build normalizes a batch of raw records into the entity graph, one Country
// per record, sorted ascending by ADEI rank. Records without a country name
// are skipped with a diagnostic; each record is independent.
//
// ADEI and per-pillar ranks are computed across the whole batch, so partial
// batches rank only against themselves.
func Build(records []Record, logger *slog.Logger) []Country {
	if logger == nil {
		logger = slog.Default()
	}
	records = latestYearPerCountry(records)

	var valid []Record
	for i, rec := range records {
		if strings.TrimSpace(rec[catalog.CountryCol]) == "" {
			logger.Warn("skipping record without country name", "row", i)
			continue
		}
		valid = append(valid, rec)
	}

	adeiRanks := DenseRanks(columnValues(valid, catalog.ADEICol))
	pillarRanks := make(map[string][]int, 9)
	for _, p := range catalog.Pillars() {
		pillarRanks[p.TotalCol] = DenseRanks(columnValues(valid, p.TotalCol))
	}

	countries := make([]Country, 0, len(valid))
	for i, rec := range valid {
		c := Country{
			CountryName:      strings.TrimSpace(rec[catalog.CountryCol]),
			OverallADEIScore: int(math.Round(SafeFloat(rec[catalog.ADEICol]))),
			OverallADEIRank:  adeiRanks[i],
		}

		for _, p := range catalog.Pillars() {
			total := SafeFloat(rec[p.TotalCol])
			c.DimensionSummary = append(c.DimensionSummary, DimensionSummary{
				Dimension: p.Dimension,
				Pillar:    p.Short,
				Value:     int(math.Round(total)),
				Rank:      pillarRanks[p.TotalCol][i],
			})

			subs := make([]SubPillar, 0, len(p.Subs))
			for _, s := range p.Subs {
				subs = append(subs, SubPillar{
					Name:  s.Name,
					Score: round2(SafeFloat(rec[s.Code])),
				})
			}
			c.DetailedPillars = append(c.DetailedPillars, PillarData{
				PillarName:       p.Name,
				TotalPillarScore: round2(total),
				SubPillars:       subs,
			})
		}
		countries = append(countries, c)
	}

	sort.SliceStable(countries, func(i, j int) bool {
		return countries[i].OverallADEIRank < countries[j].OverallADEIRank
	})
	return countries
}

// latestYearPerCountry keeps only the most recent Year row per country when
// the source carries multi-year rows. Without a Year column it is a no-op.
func latestYearPerCountry(records []Record) []Record {
	hasYear := false
	for _, rec := range records {
		if _, ok := rec[catalog.YearCol]; ok {
			hasYear = true
			break
		}
	}
	if !hasYear {
		return records
	}

	best := make(map[string]Record)
	var order []string
	for _, rec := range records {
		name := strings.TrimSpace(rec[catalog.CountryCol])
		prev, seen := best[name]
		if !seen {
			best[name] = rec
			order = append(order, name)
			continue
		}
		if SafeFloat(rec[catalog.YearCol]) > SafeFloat(prev[catalog.YearCol]) {
			best[name] = rec
		}
	}

	out := make([]Record, 0, len(order))
	for _, name := range order {
		out = append(out, best[name])
	}
	return out
}

func columnValues(records []Record, col string) []float64 {
	vals := make([]float64, len(records))
	for i, rec := range records {
		vals[i] = SafeFloat(rec[col])
	}
	return vals
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
