package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/hazyhaar/adei/pkg/catalog"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is the pairwise Pearson correlation between the nine
// pillar score columns, rounded to two decimals. Diagonal entries are
// exactly 1 and the matrix is symmetric.
type CorrelationMatrix struct {
	Pillars []string    `json:"pillars"`
	Matrix  [][]float64 `json:"matrix"`
}

// Correlations computes the pillar correlation matrix across all countries.
func (a *Analytics) Correlations() (*CorrelationMatrix, error) {
	series, err := a.pillarSeries()
	if err != nil {
		return nil, err
	}

	m := &CorrelationMatrix{Pillars: cleanPillarColumns()}
	for i := range series {
		row := make([]float64, len(series))
		for j := range series {
			switch {
			case i == j:
				row[j] = 1
			case j < i:
				row[j] = m.Matrix[j][i] // symmetric, reuse the upper half
			default:
				// A zero-variance column (every cell coerced to 0, say)
				// makes the correlation undefined; report 0, JSON has no NaN.
				c := stat.Correlation(series[i], series[j], nil)
				if math.IsNaN(c) || math.IsInf(c, 0) {
					c = 0
				}
				row[j] = round2(c)
			}
		}
		m.Matrix = append(m.Matrix, row)
	}
	return m, nil
}

// PillarStats is one pillar's distribution summary across all countries,
// rounded to one decimal.
type PillarStats struct {
	Pillar string  `json:"pillar"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// AggregateStats summarizes every pillar's score distribution in canonical
// pillar order. Quantiles interpolate linearly between sample points.
func (a *Analytics) AggregateStats() ([]PillarStats, error) {
	series, err := a.pillarSeries()
	if err != nil {
		return nil, err
	}

	out := make([]PillarStats, 0, 9)
	for i, p := range catalog.Pillars() {
		xs := append([]float64(nil), series[i]...)
		sort.Float64s(xs)
		out = append(out, PillarStats{
			Pillar: catalog.DisplayName(p.Name),
			Mean:   round1(stat.Mean(xs, nil)),
			Median: round1(quantile(xs, 0.5)),
			Q1:     round1(quantile(xs, 0.25)),
			Q3:     round1(quantile(xs, 0.75)),
		})
	}
	return out, nil
}

// pillarSeries reads all pillar totals into nine per-pillar series, each
// aligned on the same country order.
func (a *Analytics) pillarSeries() ([][]float64, error) {
	scores, err := a.pillarScoresByCountry()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([][]float64, 9)
	for _, name := range names {
		row := scores[name]
		for i := 0; i < 9; i++ {
			series[i] = append(series[i], row[i])
		}
	}
	return series, nil
}

// pillarScoresByCountry reads each country's nine pillar totals in canonical
// column order.
func (a *Analytics) pillarScoresByCountry() (map[string][]float64, error) {
	rows, err := a.db.Query(`
		SELECT c.name, p.pillar_name, p.total_pillar_score
		FROM pillars p JOIN countries c ON p.country_id = c.id`)
	if err != nil {
		return nil, fmt.Errorf("pillar scores: %w", err)
	}
	defer rows.Close()

	col := make(map[string]int, 9)
	for i, p := range catalog.Pillars() {
		col[p.Name] = i
	}

	out := make(map[string][]float64)
	for rows.Next() {
		var country, pillar string
		var score float64
		if err := rows.Scan(&country, &pillar, &score); err != nil {
			return nil, fmt.Errorf("scan pillar score: %w", err)
		}
		i, ok := col[pillar]
		if !ok {
			continue
		}
		if out[country] == nil {
			out[country] = make([]float64, 9)
		}
		out[country][i] = score
	}
	return out, rows.Err()
}

func cleanPillarColumns() []string {
	out := make([]string, 0, 9)
	for _, p := range catalog.Pillars() {
		out = append(out, catalog.DisplayName(p.Name))
	}
	return out
}

// quantile is the linear-interpolation quantile (numpy/pandas default):
// h = p*(n-1), interpolate between the straddling sorted samples.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch n {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}
	h := p * float64(n-1)
	i := int(math.Floor(h))
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}
