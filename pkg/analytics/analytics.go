// Package analytics is the read-only query layer over the ADEI store:
// leaderboards, profiles, comparisons, rankings, correlations and regional
// aggregates. Every operation returns empty results for unknown keys so that
// presentation layers can render "no data" states, and every pillar label
// leaving this package is cleaned through catalog.DisplayName.
package analytics

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hazyhaar/adei/pkg/catalog"
	"github.com/hazyhaar/adei/pkg/regions"
	"github.com/hazyhaar/adei/pkg/store"
)

// Analytics serves queries against one opened store. It holds no state
// beyond the connection and the region classifier and is safe for concurrent
// readers as long as no reload is in flight.
type Analytics struct {
	db      *sql.DB
	regions *regions.Classifier
}

// New builds an Analytics layer over a store. A nil classifier falls back to
// the embedded region table.
func New(s *store.Store, c *regions.Classifier) *Analytics {
	if c == nil {
		c = regions.Default()
	}
	return &Analytics{db: s.DB(), regions: c}
}

// CountryRank is a country's headline score and rank.
type CountryRank struct {
	Name      string `json:"name"`
	ADEIScore int    `json:"adei_score"`
	ADEIRank  int    `json:"adei_rank"`
}

// Leaderboard holds the top and bottom ten countries by ADEI rank. Both
// slices are ordered ascending by rank.
type Leaderboard struct {
	Top10    []CountryRank `json:"top_10"`
	Bottom10 []CountryRank `json:"bottom_10"`
}

// Leaderboard returns the top-10 and bottom-10 countries.
func (a *Analytics) Leaderboard() (*Leaderboard, error) {
	all, err := a.mainStats("", nil)
	if err != nil {
		return nil, err
	}

	lb := &Leaderboard{}
	if len(all) <= 10 {
		lb.Top10 = all
		lb.Bottom10 = all
		return lb, nil
	}
	lb.Top10 = all[:10]
	bottom := append([]CountryRank(nil), all[len(all)-10:]...)
	sortByRank(bottom)
	lb.Bottom10 = bottom
	return lb, nil
}

// PillarAverage is one pillar's mean score across all countries.
type PillarAverage struct {
	Pillar  string  `json:"pillar"`
	Average float64 `json:"average_score"`
}

// AveragePillarScores returns each pillar's mean total score across all
// countries, in canonical pillar order.
func (a *Analytics) AveragePillarScores() ([]PillarAverage, error) {
	rows, err := a.db.Query(`
		SELECT pillar_name, AVG(total_pillar_score)
		FROM pillars GROUP BY pillar_name`)
	if err != nil {
		return nil, fmt.Errorf("average pillar scores: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]float64, 9)
	for rows.Next() {
		var name string
		var avg float64
		if err := rows.Scan(&name, &avg); err != nil {
			return nil, fmt.Errorf("scan pillar average: %w", err)
		}
		byName[name] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]PillarAverage, 0, 9)
	for _, p := range catalog.Pillars() {
		if avg, ok := byName[p.Name]; ok {
			out = append(out, PillarAverage{Pillar: catalog.DisplayName(p.Name), Average: avg})
		}
	}
	return out, nil
}

// CountryList returns all country names sorted ascending.
func (a *Analytics) CountryList() ([]string, error) {
	rows, err := a.db.Query(`SELECT name FROM countries ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("country list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan country name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// PillarScore is one cleaned pillar label with its total score.
type PillarScore struct {
	Pillar string  `json:"pillar"`
	Score  float64 `json:"score"`
}

// SubScore is a single sub-indicator score, grouped under its cleaned pillar.
type SubScore struct {
	Pillar    string  `json:"pillar"`
	Indicator string  `json:"indicator"`
	Score     float64 `json:"score"`
}

// Profile is everything known about one country. Main is nil when the
// country is not in the store; the slices are empty then too.
type Profile struct {
	Main          *CountryRank  `json:"main,omitempty"`
	Pillars       []PillarScore `json:"pillars"`
	SubIndicators []SubScore    `json:"sub_indicators"`
}

// CountryProfile returns a country's main stats, nine pillar scores and all
// sub-indicator scores ordered by pillar then insertion order.
func (a *Analytics) CountryProfile(name string) (*Profile, error) {
	p := &Profile{Pillars: []PillarScore{}, SubIndicators: []SubScore{}}

	var main CountryRank
	err := a.db.QueryRow(
		`SELECT name, adei_score, adei_rank FROM countries WHERE name = ?`, name,
	).Scan(&main.Name, &main.ADEIScore, &main.ADEIRank)
	if err == sql.ErrNoRows {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}
	p.Main = &main

	rows, err := a.db.Query(`
		SELECT p.pillar_name, p.total_pillar_score
		FROM pillars p JOIN countries c ON p.country_id = c.id
		WHERE c.name = ? ORDER BY p.id`, name)
	if err != nil {
		return nil, fmt.Errorf("profile pillars %s: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var ps PillarScore
		if err := rows.Scan(&ps.Pillar, &ps.Score); err != nil {
			return nil, fmt.Errorf("scan profile pillar: %w", err)
		}
		ps.Pillar = catalog.DisplayName(ps.Pillar)
		p.Pillars = append(p.Pillars, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := a.db.Query(`
		SELECT p.pillar_name, sp.name, sp.score
		FROM sub_pillars sp
		JOIN pillars p ON sp.pillar_id = p.id
		JOIN countries c ON p.country_id = c.id
		WHERE c.name = ? ORDER BY p.id, sp.id`, name)
	if err != nil {
		return nil, fmt.Errorf("profile sub-pillars %s: %w", name, err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var ss SubScore
		if err := subRows.Scan(&ss.Pillar, &ss.Indicator, &ss.Score); err != nil {
			return nil, fmt.Errorf("scan profile sub-pillar: %w", err)
		}
		ss.Pillar = catalog.DisplayName(ss.Pillar)
		p.SubIndicators = append(p.SubIndicators, ss)
	}
	return p, subRows.Err()
}

// CountryPillarScore is one (country, pillar) score cell of a comparison.
type CountryPillarScore struct {
	Country string  `json:"country"`
	Pillar  string  `json:"pillar"`
	Score   float64 `json:"score"`
}

// Comparison holds side-by-side stats for a set of countries.
type Comparison struct {
	Main    []CountryRank        `json:"main"`
	Pillars []CountryPillarScore `json:"pillars"`
}

// Compare returns main stats (ordered by rank ascending) and pillar scores
// restricted to the given countries. An empty name list yields an empty
// comparison, not an error.
func (a *Analytics) Compare(names []string) (*Comparison, error) {
	cmp := &Comparison{Main: []CountryRank{}, Pillars: []CountryPillarScore{}}
	if len(names) == 0 {
		return cmp, nil
	}

	main, err := a.mainStats(
		fmt.Sprintf("WHERE name IN (%s)", placeholders(len(names))), toAny(names))
	if err != nil {
		return nil, err
	}
	cmp.Main = main

	q := fmt.Sprintf(`
		SELECT c.name, p.pillar_name, p.total_pillar_score
		FROM pillars p JOIN countries c ON p.country_id = c.id
		WHERE c.name IN (%s) ORDER BY c.adei_rank, p.id`, placeholders(len(names)))
	rows, err := a.db.Query(q, toAny(names)...)
	if err != nil {
		return nil, fmt.Errorf("comparison pillars: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cp CountryPillarScore
		if err := rows.Scan(&cp.Country, &cp.Pillar, &cp.Score); err != nil {
			return nil, fmt.Errorf("scan comparison pillar: %w", err)
		}
		cp.Pillar = catalog.DisplayName(cp.Pillar)
		cmp.Pillars = append(cmp.Pillars, cp)
	}
	return cmp, rows.Err()
}

// mainStats reads (name, score, rank) rows with an optional WHERE clause,
// always ordered by rank ascending.
func (a *Analytics) mainStats(where string, args []any) ([]CountryRank, error) {
	q := "SELECT name, adei_score, adei_rank FROM countries " + where + " ORDER BY adei_rank ASC, name ASC"
	rows, err := a.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("main stats: %w", err)
	}
	defer rows.Close()

	out := []CountryRank{}
	for rows.Next() {
		var cr CountryRank
		if err := rows.Scan(&cr.Name, &cr.ADEIScore, &cr.ADEIRank); err != nil {
			return nil, fmt.Errorf("scan main stats: %w", err)
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toAny(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func sortByRank(rows []CountryRank) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ADEIRank < rows[j].ADEIRank })
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
func round2(f float64) float64 { return math.Round(f*100) / 100 }
