// Package catalog declares the fixed structure of the ADEI: nine pillars,
// their dimension groupings and the workbook columns their scores come from.
// Declaration order is the canonical pillar order used everywhere else.
package catalog

import "regexp"

// SubIndicator is one indicator column feeding a pillar: the workbook column
// code (e.g. "1.1.2") and its display name.
type SubIndicator struct {
	Code string
	Name string
}

// Pillar describes one of the nine ADEI pillars.
type Pillar struct {
	Name      string // full label, e.g. "First Pillar: Institutions"
	Dimension string // broad grouping label
	Short     string // short display label
	TotalCol  string // workbook column holding the pillar total ("1".."9")
	Subs      []SubIndicator
}

// CountryCol, ADEICol and YearCol are the non-pillar workbook columns.
const (
	CountryCol = "Country"
	ADEICol    = "ADEI"
	YearCol    = "Year"
)

// Pillars returns the nine pillars in canonical order.
func Pillars() []Pillar {
	return pillars
}

// ByName returns the pillar with the given full label.
func ByName(name string) (Pillar, bool) {
	for _, p := range pillars {
		if p.Name == name {
			return p, true
		}
	}
	return Pillar{}, false
}

// ByTotalCol returns the pillar whose total lives in the given workbook column.
func ByTotalCol(col string) (Pillar, bool) {
	for _, p := range pillars {
		if p.TotalCol == col {
			return p, true
		}
	}
	return Pillar{}, false
}

var ordinalPrefix = regexp.MustCompile(`^\w+\sPillar:\s`)

// DisplayName strips the "<Ordinal> Pillar: " prefix from a stored pillar
// label. All human-facing surfaces go through this one function so that
// cleaned and uncleaned labels never get mixed in joins.
func DisplayName(pillarName string) string {
	return ordinalPrefix.ReplaceAllString(pillarName, "")
}

var pillars = []Pillar{
	{
		Name:      "First Pillar: Institutions",
		Dimension: "Digital Foundation",
		Short:     "Institutions",
		TotalCol:  "1",
		Subs: []SubIndicator{
			{"1.1.1", "Political Environment"},
			{"1.1.2", "Political Stability and Security"},
			{"1.1.3", "Government Effectiveness"},
			{"1.1", "Voice and Accountability"},
			{"1.2.1", "Regulatory Environment"},
			{"1.2.2", "Regulatory Quality"},
			{"1.2.3", "Rule of Law"},
			{"1.2", "Control of Corruption"},
			{"1.3.1", "Technology Governance"},
			{"1.3.2", "Secure Internet Servers"},
			{"1.3.3", "E-Security"},
			{"1.3.4", "Online Shopping"},
			{"1.3.5", "ICT Regulatory Environment"},
			{"1.3.6", "Regulation of Emerging Technologies"},
			{"1.3.7", "E-commerce Legislation"},
			{"1.3", "Protection of content privacy under the law"},
		},
	},
	{
		Name:      "Second Pillar: Infrastructure",
		Dimension: "Digital Foundation",
		Short:     "Infrastructure",
		TotalCol:  "2",
		Subs: []SubIndicator{
			{"2.1", "Access to ICT"},
			{"2.2", "Use of ICT"},
			{"2.3.1", "Technological Inclusion"},
			{"2.3.2", "E-Participation"},
			{"2.3.3", "Socioeconomic gap in the use of digital payments"},
			{"2.3.4", "Availability of local content online"},
			{"2.3.5", "Gender gap in internet use"},
			{"2.3", "Rural gap in the use of digital payments"},
			{"2.4", "Logistical Performance"},
		},
	},
	{
		Name:      "Third Pillar: Workforce",
		Dimension: "Digital Works",
		Short:     "Workforce",
		TotalCol:  "3",
		Subs: []SubIndicator{
			{"3.1", "Expenditure on education as a % of GDP"},
			{"3.2", "Knowledge-intensive employment %"},
			{"3.3", "ICT skills in the education system"},
		},
	},
	{
		Name:      "Fourth Pillar: E-Government",
		Dimension: "E-Government",
		Short:     "E-Government",
		TotalCol:  "4",
		Subs: []SubIndicator{
			{"4.1", "Government services online"},
			{"4.2", "Telecommunication Infrastructure"},
			{"4.3", "Human Capital Component"},
		},
	},
	{
		Name:      "Fifth Pillar: Innovation",
		Dimension: "Innovation",
		Short:     "Innovation",
		TotalCol:  "5",
		Subs: []SubIndicator{
			{"5.1", "Percentage of total R&D expenditure financed by the business sector"},
			{"5.2", "University-industry collaboration in R&D"},
			{"5.3", "Knowledge impact"},
			{"5.4", "Knowledge absorption"},
		},
	},
	{
		Name:      "Sixth Pillar: Future Technologies",
		Dimension: "Readiness in digital\nfor the citizen",
		Short:     "Future Technologies",
		TotalCol:  "6",
		Subs: []SubIndicator{
			{"6.1", "Adoption of emerging technologies"},
			{"6.2", "Investment in emerging technologies"},
			{"6.3", "Artificial Intelligence (AI) strategy"},
		},
	},
	{
		Name:      "Seventh Pillar: Market Development and Sophistication",
		Dimension: "Market Development and Sophistication",
		Short:     "Market Development\nand Sophistication",
		TotalCol:  "7",
		Subs: []SubIndicator{
			{"7.1", "Financing of startups and ease of access"},
			{"7.2", "Domestic credit to private sector, % of GDP"},
			{"7.3", "Diversification of local industry"},
		},
	},
	{
		Name:      "Eighth Pillar: Financial Market Development",
		Dimension: "Financial Market Development",
		Short:     "Financial Market\nDevelopment",
		TotalCol:  "8",
		Subs: []SubIndicator{
			{"8.1.1", "FinTech and Financial Inclusion"},
			{"8.1.2", "Percentage of population (age 15+) who own bank accounts"},
			{"8.1.3", "Percentage (age 15+) who own a debit or credit card"},
			{"8.1", "Percentage (age 15+) who have made or received a digital payment"},
			{"8.2", "Market capitalization as a % of GDP"},
		},
	},
	{
		Name:      "Ninth Pillar: Sustainable Development Goals",
		Dimension: "Sustainable Development",
		Short:     "Sustainable\nDevelopment",
		TotalCol:  "9",
		Subs: []SubIndicator{
			{"9.1", "Goal 1: No Poverty"},
			{"9.2", "Goal 2: Zero Hunger"},
			{"9.3", "Goal 3: Good Health and Well-being"},
			{"9.4", "Goal 4: Quality Education"},
			{"9.5", "Goal 8: Decent Work and Economic Growth"},
			{"9.6", "Goal 9: Industry, Innovation and Infrastructure"},
			{"9.7", "Goal 17: Partnerships for the Goals"},
		},
	},
}
