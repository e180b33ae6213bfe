// Package classify maps NOC occupation codes and NAICS industry codes to
// human-readable categories and sectors, and provides the static metadata
// (skills, salary, description) shown for each category.
//
// Only the first two characters of a code (the major group) are used. Groups
// are compared as strings, never as numbers, so "01" falls inside "01"-"05"
// exactly as the coding standards write their ranges.
package classify

// Other is the fallback category and sector for absent or unmatched codes.
const Other = "Other"

// Group is one row of a classification table: an inclusive range of
// two-character major groups. Single-code rows have Lo == Hi.
type Group struct {
	Lo, Hi string
	Name   string
}

// Contains reports whether majorGroup lies in [Lo, Hi] by string comparison.
func (g Group) Contains(majorGroup string) bool {
	return majorGroup >= g.Lo && majorGroup <= g.Hi
}

// Ranges must stay disjoint; lookup returns the first match.
var occupationGroups = []Group{
	{"00", "00", "Senior management"},
	{"01", "05", "Specialized middle management"},
	{"06", "09", "Middle management"},
	{"11", "14", "Professional occupations in business and finance"},
	{"21", "22", "Professional occupations in natural and applied sciences"},
	{"30", "31", "Professional occupations in health"},
	{"32", "34", "Technical and skilled occupations in health"},
	{"40", "42", "Professional occupations in education, law, social and government services"},
	{"43", "44", "Paraprofessional occupations in legal, social and education services"},
	{"51", "52", "Professional occupations in art and culture"},
	{"53", "54", "Technical occupations in art, culture and sport"},
	{"62", "63", "Retail sales supervisors and specialized sales occupations"},
	{"64", "66", "Service supervisors and specialized service occupations"},
	{"67", "68", "Service representatives and other customer service occupations"},
	{"72", "73", "Industrial, electrical and construction trades"},
	{"74", "75", "Maintenance and equipment operation trades"},
	{"76", "76", "Other installers, repairers and servicers"},
	{"82", "83", "Supervisors and technical occupations in natural resources and agriculture"},
	{"84", "85", "Workers in natural resources and agriculture"},
	{"86", "86", "Harvesting and landscaping supervisors and laborers"},
	{"92", "93", "Processing, manufacturing and utilities supervisors and central control operators"},
	{"94", "95", "Processing and manufacturing machine operators and assemblers"},
	{"96", "96", "Laborers in processing, manufacturing and utilities"},
}

var sectorGroups = []Group{
	{"11", "11", "Agriculture, forestry, fishing and hunting"},
	{"21", "21", "Mining, quarrying, and oil and gas extraction"},
	{"22", "22", "Utilities"},
	{"23", "23", "Construction"},
	{"31", "33", "Manufacturing"},
	{"41", "41", "Wholesale trade"},
	{"44", "45", "Retail trade"},
	{"48", "49", "Transportation and warehousing"},
	{"51", "51", "Information and cultural industries"},
	{"52", "52", "Finance and insurance"},
	{"53", "53", "Real estate and rental and leasing"},
	{"54", "54", "Professional, scientific and technical services"},
	{"55", "55", "Management of companies and enterprises"},
	{"56", "56", "Administrative and support, waste management and remediation services"},
	{"61", "61", "Educational services"},
	{"62", "62", "Health care and social assistance"},
	{"71", "71", "Arts, entertainment and recreation"},
	{"72", "72", "Accommodation and food services"},
	{"81", "81", "Other services (except public administration)"},
	{"91", "91", "Public administration"},
}

// MajorGroup returns the first two characters of code, or the whole code when
// it is shorter.
func MajorGroup(code string) string {
	if len(code) < 2 {
		return code
	}
	return code[:2]
}

// Occupation returns the NOC category for code, or Other.
func Occupation(code string) string {
	return lookup(occupationGroups, code)
}

// Sector returns the NAICS sector for code, or Other.
func Sector(code string) string {
	return lookup(sectorGroups, code)
}

// OccupationGroups returns a copy of the NOC table.
func OccupationGroups() []Group {
	return append([]Group(nil), occupationGroups...)
}

// SectorGroups returns a copy of the NAICS table.
func SectorGroups() []Group {
	return append([]Group(nil), sectorGroups...)
}

func lookup(table []Group, code string) string {
	if code == "" {
		return Other
	}
	mg := MajorGroup(code)
	for _, g := range table {
		if g.Contains(mg) {
			return g.Name
		}
	}
	return Other
}
