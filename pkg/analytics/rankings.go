package analytics

import (
	"fmt"
	"sort"

	"github.com/hazyhaar/adei/pkg/catalog"
)

// PillarRankingRow is one country's position in a single-pillar ranking.
// Rank here is positional (1-based output order), deliberately not the
// dense tie-sharing rank used for the stored ADEI and dimension ranks:
// display rankings number every row.
type PillarRankingRow struct {
	Rank      int        `json:"rank"`
	Country   string     `json:"country"`
	Score     float64    `json:"score"`
	SubScores []SubScore `json:"sub_scores"`
}

// PillarRanking ranks all countries descending by one pillar's total score,
// carrying that pillar's sub-indicator scores along. The pillar is addressed
// by its full stored label.
func (a *Analytics) PillarRanking(pillarName string) ([]PillarRankingRow, error) {
	rows, err := a.db.Query(`
		SELECT c.name, p.total_pillar_score
		FROM pillars p JOIN countries c ON p.country_id = c.id
		WHERE p.pillar_name = ?
		ORDER BY p.total_pillar_score DESC, c.name ASC`, pillarName)
	if err != nil {
		return nil, fmt.Errorf("pillar ranking %q: %w", pillarName, err)
	}
	defer rows.Close()

	out := []PillarRankingRow{}
	for rows.Next() {
		r := PillarRankingRow{Rank: len(out) + 1}
		if err := rows.Scan(&r.Country, &r.Score); err != nil {
			return nil, fmt.Errorf("scan pillar ranking: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	subs, err := a.pillarSubScores(pillarName)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].SubScores = subs[out[i].Country]
		if out[i].SubScores == nil {
			out[i].SubScores = []SubScore{}
		}
	}
	return out, nil
}

// pillarSubScores collects one pillar's sub-indicator scores per country.
func (a *Analytics) pillarSubScores(pillarName string) (map[string][]SubScore, error) {
	rows, err := a.db.Query(`
		SELECT c.name, sp.name, sp.score
		FROM sub_pillars sp
		JOIN pillars p ON sp.pillar_id = p.id
		JOIN countries c ON p.country_id = c.id
		WHERE p.pillar_name = ? ORDER BY c.id, sp.id`, pillarName)
	if err != nil {
		return nil, fmt.Errorf("pillar sub scores %q: %w", pillarName, err)
	}
	defer rows.Close()

	out := make(map[string][]SubScore)
	for rows.Next() {
		var country string
		var ss SubScore
		if err := rows.Scan(&country, &ss.Indicator, &ss.Score); err != nil {
			return nil, fmt.Errorf("scan pillar sub score: %w", err)
		}
		out[country] = append(out[country], ss)
	}
	return out, rows.Err()
}

// Extremes are a country's strongest and weakest sub-indicators. Strengths
// descend by score; weaknesses ascend.
type Extremes struct {
	Strengths  []SubScore `json:"strengths"`
	Weaknesses []SubScore `json:"weaknesses"`
}

// StrengthsWeaknesses returns a country's topN best and worst sub-indicators.
// topN <= 0 falls back to 5.
func (a *Analytics) StrengthsWeaknesses(country string, topN int) (*Extremes, error) {
	if topN <= 0 {
		topN = 5
	}

	rows, err := a.db.Query(`
		SELECT p.pillar_name, sp.name, sp.score
		FROM sub_pillars sp
		JOIN pillars p ON sp.pillar_id = p.id
		JOIN countries c ON p.country_id = c.id
		WHERE c.name = ? ORDER BY sp.score DESC, sp.id`, country)
	if err != nil {
		return nil, fmt.Errorf("extremes %s: %w", country, err)
	}
	defer rows.Close()

	var all []SubScore
	for rows.Next() {
		var ss SubScore
		if err := rows.Scan(&ss.Pillar, &ss.Indicator, &ss.Score); err != nil {
			return nil, fmt.Errorf("scan extreme: %w", err)
		}
		ss.Pillar = catalog.DisplayName(ss.Pillar)
		all = append(all, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ex := &Extremes{Strengths: []SubScore{}, Weaknesses: []SubScore{}}
	if len(all) == 0 {
		return ex, nil
	}
	if topN > len(all) {
		topN = len(all)
	}
	ex.Strengths = all[:topN]
	weak := append([]SubScore(nil), all[len(all)-topN:]...)
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	ex.Weaknesses = weak
	return ex, nil
}

// ExplorerRow is one country's wide rankings row: headline stats plus the
// nine pillar scores in canonical column order.
type ExplorerRow struct {
	Country      string    `json:"country"`
	ADEIScore    int       `json:"adei_score"`
	ADEIRank     int       `json:"adei_rank"`
	PillarScores []float64 `json:"pillar_scores"`
}

// RankingsTable is the full wide-format export: one row per country ordered
// by rank, columns in canonical pillar order (cleaned labels).
type RankingsTable struct {
	Pillars []string      `json:"pillars"`
	Rows    []ExplorerRow `json:"rows"`
}

// RankingsExplorer pivots the store into the "give me everything" view.
func (a *Analytics) RankingsExplorer() (*RankingsTable, error) {
	main, err := a.mainStats("", nil)
	if err != nil {
		return nil, err
	}

	scores, err := a.pillarScoresByCountry()
	if err != nil {
		return nil, err
	}

	t := &RankingsTable{Pillars: cleanPillarColumns(), Rows: []ExplorerRow{}}
	for _, cr := range main {
		t.Rows = append(t.Rows, ExplorerRow{
			Country:      cr.Name,
			ADEIScore:    cr.ADEIScore,
			ADEIRank:     cr.ADEIRank,
			PillarScores: scores[cr.Name],
		})
	}
	return t, nil
}
