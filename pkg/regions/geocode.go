package regions

// ISO alpha-3 resolution for map views. A small override table catches the
// workbook spellings that no generic matcher resolves cleanly; everything
// else goes through the normalized-name table. Absent means "exclude from
// the map", never an error.

var isoOverrides = map[string]string{
	"Iran, Islamic Rep.":   "IRN",
	"Brunei Darussalam":    "BRN",
	"Cote d'Ivoire":        "CIV",
	"Syrian Arab Republic": "SYR",
}

var isoByName = map[string]string{
	"united arab emirates": "ARE",
	"saudi arabia":         "SAU",
	"malaysia":             "MYS",
	"qatar":                "QAT",
	"indonesia":            "IDN",
	"turkey":               "TUR",
	"kazakhstan":           "KAZ",
	"jordan":               "JOR",
	"morocco":              "MAR",
	"tunisia":              "TUN",
	"oman":                 "OMN",
	"uzbekistan":           "UZB",
	"bahrain":              "BHR",
	"egypt":                "EGY",
	"kuwait":               "KWT",
	"albania":              "ALB",
	"senegal":              "SEN",
	"azerbaijan":           "AZE",
	"algeria":              "DZA",
	"iran":                 "IRN",
	"bangladesh":           "BGD",
	"brunei":               "BRN",
	"pakistan":             "PAK",
	"nigeria":              "NGA",
	"benin":                "BEN",
	"uganda":               "UGA",
	"cote d'ivoire":        "CIV",
	"lebanon":              "LBN",
	"cameroon":             "CMR",
	"tajikistan":           "TJK",
	"mali":                 "MLI",
	"maldives":             "MDV",
	"kyrgyz republic":      "KGZ",
	"kyrgyzstan":           "KGZ",
	"togo":                 "TGO",
	"suriname":             "SUR",
	"mozambique":           "MOZ",
	"mauritania":           "MRT",
	"burkina faso":         "BFA",
	"gabon":                "GAB",
	"guyana":               "GUY",
	"sierra leone":         "SLE",
	"iraq":                 "IRQ",
	"guinea":               "GIN",
	"gambia":               "GMB",
	"niger":                "NER",
	"yemen":                "YEM",
	"turkmenistan":         "TKM",
	"chad":                 "TCD",
	"djibouti":             "DJI",
	"comoros":              "COM",
	"guinea-bissau":        "GNB",
	"palestine":            "PSE",
	"syria":                "SYR",
	"libya":                "LBY",
	"sudan":                "SDN",
	"afghanistan":          "AFG",
	"somalia":              "SOM",
}

// ISOAlpha3 resolves a country name to its ISO 3166-1 alpha-3 code. The
// boolean is false when the name resolves to nothing; callers drop the row
// from geographic views.
func ISOAlpha3(country string) (string, bool) {
	if code, ok := isoOverrides[country]; ok {
		return code, true
	}
	code, ok := isoByName[normalizeName(country)]
	return code, ok
}
