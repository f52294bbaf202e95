// Package index holds the ADEI entity graph and the normalizer that builds it
// from raw tabular records. The JSON shape of Country is the interchange
// document between ingestion and the store loader: the two halves of the
// pipeline only meet through it.
package index

import (
	"fmt"

	"github.com/hazyhaar/adei/pkg/catalog"
)

// DimensionSummary is one row of a country's dimension/pillar summary table.
type DimensionSummary struct {
	Dimension string `json:"dimension"`
	Pillar    string `json:"pillar"`
	Value     int    `json:"value"`
	Rank      int    `json:"rank"`
}

// SubPillar is a single scored indicator inside a pillar.
type SubPillar struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// PillarData is the detailed record for one of the nine pillars. The total
// score is sourced from the workbook, not derived from the sub-pillars.
type PillarData struct {
	PillarName       string      `json:"pillar_name"`
	TotalPillarScore float64     `json:"total_pillar_score"`
	SubPillars       []SubPillar `json:"sub_pillars"`
}

// Country is the full entity graph for one country.
type Country struct {
	CountryName      string             `json:"country_name"`
	OverallADEIScore int                `json:"overall_adei_score"`
	OverallADEIRank  int                `json:"overall_adei_rank"`
	DimensionSummary []DimensionSummary `json:"dimension_summary"`
	DetailedPillars  []PillarData       `json:"detailed_pillars"`
}

// Validate checks the invariants every Country must satisfy before loading,
// whichever ingestion path produced it. Externally extracted documents go
// through the same check as workbook rows.
func (c *Country) Validate() error {
	if c.CountryName == "" {
		return fmt.Errorf("country name is empty")
	}
	if c.OverallADEIScore < 0 || c.OverallADEIScore > 100 {
		return fmt.Errorf("%s: adei score %d out of range 0..100", c.CountryName, c.OverallADEIScore)
	}
	if c.OverallADEIRank < 1 {
		return fmt.Errorf("%s: adei rank %d is not positive", c.CountryName, c.OverallADEIRank)
	}
	if n := len(c.DimensionSummary); n != 9 {
		return fmt.Errorf("%s: %d dimension summaries, want 9", c.CountryName, n)
	}
	if n := len(c.DetailedPillars); n != 9 {
		return fmt.Errorf("%s: %d pillars, want 9", c.CountryName, n)
	}
	for i, p := range c.DetailedPillars {
		if want := catalog.Pillars()[i].Name; p.PillarName != want {
			return fmt.Errorf("%s: pillar %d is %q, want %q (canonical order)",
				c.CountryName, i, p.PillarName, want)
		}
		if p.TotalPillarScore < 0 || p.TotalPillarScore > 100 {
			return fmt.Errorf("%s: pillar %q score %.2f out of range 0..100",
				c.CountryName, p.PillarName, p.TotalPillarScore)
		}
	}
	return nil
}
