// Package regions maps ADEI countries to peer regions and ISO geo codes.
// The region table is plain configuration: a YAML partition of the 57
// countries, embedded as a default and overridable at startup. A Classifier
// is immutable once built — callers that need a different partition build a
// second one instead of mutating shared state.
package regions

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Other is the catch-all region for countries absent from the table.
const Other = "Other"

//go:embed regions.yaml
var defaultTable []byte

type regionEntry struct {
	Name      string   `yaml:"name"`
	Countries []string `yaml:"countries"`
}

type regionTable struct {
	Regions []regionEntry `yaml:"regions"`
}

// Classifier answers country→region lookups over a fixed partition.
type Classifier struct {
	order   []string
	byName  map[string]string   // normalized country -> region
	members map[string][]string // region -> country names as declared
}

// Default builds a Classifier from the embedded region table.
func Default() *Classifier {
	c, err := Parse(defaultTable)
	if err != nil {
		// The embedded table is fixed at build time; failing to parse it is
		// a programming error, not a runtime condition.
		panic(fmt.Sprintf("regions: embedded table: %v", err))
	}
	return c
}

// Parse builds a Classifier from YAML region table bytes.
func Parse(data []byte) (*Classifier, error) {
	var tbl regionTable
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("parse region table: %w", err)
	}
	if len(tbl.Regions) == 0 {
		return nil, fmt.Errorf("region table declares no regions")
	}

	c := &Classifier{
		byName:  make(map[string]string),
		members: make(map[string][]string),
	}
	for _, r := range tbl.Regions {
		if r.Name == "" {
			return nil, fmt.Errorf("region with empty name")
		}
		c.order = append(c.order, r.Name)
		for _, country := range r.Countries {
			key := normalizeName(country)
			if prev, dup := c.byName[key]; dup {
				return nil, fmt.Errorf("country %q in both %s and %s", country, prev, r.Name)
			}
			c.byName[key] = r.Name
			c.members[r.Name] = append(c.members[r.Name], country)
		}
	}
	return c, nil
}

// Region returns the region for a country, or Other when unmatched.
func (c *Classifier) Region(country string) string {
	if r, ok := c.byName[normalizeName(country)]; ok {
		return r
	}
	return Other
}

// Members returns the declared member countries of a region.
func (c *Classifier) Members(region string) []string {
	return c.members[region]
}

// Regions returns all region names in table order.
func (c *Classifier) Regions() []string {
	return c.order
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName lowercases, strips accents and squeezes whitespace so that
// "Côte d'Ivoire" and "Cote d'Ivoire" resolve identically.
func normalizeName(s string) string {
	out, _, _ := transform.String(stripAccents, strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(out), " ")
}
