package analytics

import (
	"fmt"

	"github.com/hazyhaar/adei/pkg/catalog"
	"github.com/hazyhaar/adei/pkg/regions"
	"gonum.org/v1/gonum/stat"
)

// PeerPillarRow is one pillar compared against the region peer mean.
type PeerPillarRow struct {
	Pillar   string  `json:"pillar"`
	Score    float64 `json:"score"`
	PeerMean float64 `json:"peer_mean"`
}

// PeerComparison is a country's pillar scores against its region's other
// members. When no peer has data, the country is compared against itself.
type PeerComparison struct {
	Country   string          `json:"country"`
	Region    string          `json:"region"`
	PeerCount int             `json:"peer_count"`
	Rows      []PeerPillarRow `json:"rows"`
}

// PeerComparison compares a country's nine pillars with its region peers.
// Unknown countries yield an empty row set.
func (a *Analytics) PeerComparison(country string) (*PeerComparison, error) {
	region := a.regions.Region(country)
	pc := &PeerComparison{Country: country, Region: region, Rows: []PeerPillarRow{}}

	scores, err := a.pillarScoresByCountry()
	if err != nil {
		return nil, err
	}
	own, ok := scores[country]
	if !ok {
		return pc, nil
	}

	// Peers: region members present in the store, excluding the country.
	var peers [][]float64
	for _, member := range a.regions.Members(region) {
		if member == country {
			continue
		}
		if row, ok := scores[member]; ok {
			peers = append(peers, row)
		}
	}
	pc.PeerCount = len(peers)
	if len(peers) == 0 {
		peers = [][]float64{own}
	}

	for i, p := range catalog.Pillars() {
		col := make([]float64, len(peers))
		for j, row := range peers {
			col[j] = row[i]
		}
		pc.Rows = append(pc.Rows, PeerPillarRow{
			Pillar:   catalog.DisplayName(p.Name),
			Score:    own[i],
			PeerMean: round2(stat.Mean(col, nil)),
		})
	}
	return pc, nil
}

// RegionStats is one region's headline aggregate.
type RegionStats struct {
	Region       string  `json:"region"`
	CountryCount int     `json:"country_count"`
	AvgADEI      float64 `json:"avg_adei"`
}

// RegionPillarAvg is a region's mean score for one pillar.
type RegionPillarAvg struct {
	Region string  `json:"region"`
	Pillar string  `json:"pillar"`
	Avg    float64 `json:"avg_score"`
}

// RegionalBreakdown aggregates the store by peer region.
type RegionalBreakdown struct {
	Regions []RegionStats     `json:"regions"`
	Pillars []RegionPillarAvg `json:"pillars"`
}

// RegionalAggregation returns mean ADEI score and member count per region,
// plus mean pillar scores per (region, pillar). Regions with no countries in
// the store are absent, not zero-filled.
func (a *Analytics) RegionalAggregation() (*RegionalBreakdown, error) {
	main, err := a.mainStats("", nil)
	if err != nil {
		return nil, err
	}
	scores, err := a.pillarScoresByCountry()
	if err != nil {
		return nil, err
	}

	adei := make(map[string][]float64)
	pillarCols := make(map[string][][]float64)
	for _, cr := range main {
		region := a.regions.Region(cr.Name)
		adei[region] = append(adei[region], float64(cr.ADEIScore))
		if row, ok := scores[cr.Name]; ok {
			pillarCols[region] = append(pillarCols[region], row)
		}
	}

	b := &RegionalBreakdown{Regions: []RegionStats{}, Pillars: []RegionPillarAvg{}}
	for _, region := range append(a.regions.Regions(), regions.Other) {
		vals, ok := adei[region]
		if !ok {
			continue
		}
		b.Regions = append(b.Regions, RegionStats{
			Region:       region,
			CountryCount: len(vals),
			AvgADEI:      round2(stat.Mean(vals, nil)),
		})
		for i, p := range catalog.Pillars() {
			col := make([]float64, len(pillarCols[region]))
			for j, row := range pillarCols[region] {
				col[j] = row[i]
			}
			if len(col) == 0 {
				continue
			}
			b.Pillars = append(b.Pillars, RegionPillarAvg{
				Region: region,
				Pillar: catalog.DisplayName(p.Name),
				Avg:    round2(stat.Mean(col, nil)),
			})
		}
	}
	return b, nil
}

// MapRow is one country's score with its resolved geo code.
type MapRow struct {
	Country   string `json:"country"`
	ADEIScore int    `json:"adei_score"`
	ISOAlpha3 string `json:"iso_alpha"`
}

// MapData returns (country, score, ISO alpha-3) rows for choropleth views.
// Countries without a resolvable geo code are dropped, not errored.
func (a *Analytics) MapData() ([]MapRow, error) {
	rows, err := a.db.Query(`SELECT name, adei_score FROM countries`)
	if err != nil {
		return nil, fmt.Errorf("map data: %w", err)
	}
	defer rows.Close()

	out := []MapRow{}
	for rows.Next() {
		var r MapRow
		if err := rows.Scan(&r.Country, &r.ADEIScore); err != nil {
			return nil, fmt.Errorf("scan map row: %w", err)
		}
		code, ok := regions.ISOAlpha3(r.Country)
		if !ok {
			continue
		}
		r.ISOAlpha3 = code
		out = append(out, r)
	}
	return out, rows.Err()
}
