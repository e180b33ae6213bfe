package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwa/backend/internal/classify"
)

// ── Occupation ────────────────────────────────────────────────────────────

func TestOccupation(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"2171", "Professional occupations in natural and applied sciences"},
		{"0012", "Senior management"},
		{"01", "Specialized middle management"},
		{"05999", "Specialized middle management"},
		{"0912", "Middle management"},
		{"1111", "Professional occupations in business and finance"},
		{"3012", "Professional occupations in health"},
		{"7611", "Other installers, repairers and servicers"},
		{"9619", "Laborers in processing, manufacturing and utilities"},
		// Gaps between ranges.
		{"1000", classify.Other},
		{"9999", classify.Other},
		// String ordering, not numeric: "0A" sorts after "09".
		{"0A", classify.Other},
		// Single-character codes compare as themselves.
		{"2", classify.Other},
		{"", classify.Other},
	}
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			assert.Equal(t, c.want, classify.Occupation(c.code))
		})
	}
}

// ── Sector ────────────────────────────────────────────────────────────────

func TestSector(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"54", "Professional, scientific and technical services"},
		{"541510", "Professional, scientific and technical services"},
		{"31", "Manufacturing"},
		{"332", "Manufacturing"},
		{"33", "Manufacturing"},
		{"45", "Retail trade"},
		{"91", "Public administration"},
		{"42", classify.Other},
		{"99", classify.Other},
		{"", classify.Other},
	}
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			assert.Equal(t, c.want, classify.Sector(c.code))
		})
	}
}

func TestMajorGroup(t *testing.T) {
	assert.Equal(t, "21", classify.MajorGroup("2171"))
	assert.Equal(t, "2", classify.MajorGroup("2"))
	assert.Equal(t, "", classify.MajorGroup(""))
}

// ── Tables ────────────────────────────────────────────────────────────────

func TestTables_DisjointAndOrdered(t *testing.T) {
	for name, table := range map[string][]classify.Group{
		"noc":   classify.OccupationGroups(),
		"naics": classify.SectorGroups(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, table)
			for i, g := range table {
				assert.LessOrEqual(t, g.Lo, g.Hi, g.Name)
				if i > 0 {
					assert.Less(t, table[i-1].Hi, g.Lo, "%s overlaps %s", g.Name, table[i-1].Name)
				}
			}
		})
	}
	assert.Len(t, classify.OccupationGroups(), 23)
	assert.Len(t, classify.SectorGroups(), 20)
}

func TestTables_AccessorsReturnCopies(t *testing.T) {
	groups := classify.OccupationGroups()
	groups[0].Name = "mutated"
	assert.Equal(t, "Senior management", classify.Occupation("00"))
}

func TestEveryOccupationHasMetadata(t *testing.T) {
	for _, g := range classify.OccupationGroups() {
		md := classify.For(g.Name, "Utilities")
		assert.Len(t, md.Skills, 5, g.Name)
		assert.NotEmpty(t, md.SalaryRange, g.Name)
		assert.Positive(t, md.MedianSalary, g.Name)
		assert.Contains(t, md.Description, "Utilities", g.Name)
	}
}

// ── Metadata ──────────────────────────────────────────────────────────────

func TestMetadata_KnownCategory(t *testing.T) {
	name := "Professional occupations in natural and applied sciences"
	assert.Equal(t, []string{"Research", "Technical Analysis", "Problem Solving", "Project Management", "Technical Documentation"}, classify.Skills(name))
	assert.Equal(t, "$70,000 - $140,000", classify.SalaryRange(name))
	assert.Equal(t, 105000, classify.MedianSalary(name))

	desc := classify.Description(name, "Professional, scientific and technical services")
	assert.True(t, strings.HasPrefix(desc, "Natural and applied sciences professionals"))
	assert.Contains(t, desc, "in the Professional, scientific and technical services sector")
}

func TestMetadata_Fallbacks(t *testing.T) {
	assert.Equal(t, []string{"Communication", "Teamwork", "Problem Solving", "Organization", "Attention to Detail"}, classify.Skills("Underwater basket weaving"))
	assert.Equal(t, "$40,000 - $80,000", classify.SalaryRange("Underwater basket weaving"))
	assert.Equal(t, 60000, classify.MedianSalary("Underwater basket weaving"))

	desc := classify.Description("Underwater basket weaving", "Utilities")
	assert.True(t, strings.HasPrefix(desc, "Underwater basket weaving professionals work in the Utilities sector."))
}

func TestMetadata_OtherCategory(t *testing.T) {
	md := classify.For(classify.Other, classify.Other)
	assert.Len(t, md.Skills, 5)
	assert.Equal(t, "$40,000 - $80,000", md.SalaryRange)
	assert.Equal(t, 60000, md.MedianSalary)
	assert.True(t, strings.HasPrefix(md.Description, "Other professionals work in the Other sector."))
}

func TestDescription_EmptyNamesRenderAsOther(t *testing.T) {
	assert.True(t, strings.HasPrefix(classify.Description("", ""), "Other professionals work in the Other sector."))
	assert.Contains(t, classify.Description("Senior management", ""), "in the Other sector")
}

func TestSkills_ReturnsCopy(t *testing.T) {
	s := classify.Skills("Senior management")
	s[0] = "mutated"
	assert.Equal(t, "Strategic Planning", classify.Skills("Senior management")[0])

	g := classify.Skills("unknown")
	g[0] = "mutated"
	assert.Equal(t, "Communication", classify.Skills("unknown")[0])
}
