package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// fixedNow keeps every test reproducible regardless of when it runs.
var fixedNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func experienceSection(text string) types.Section {
	return types.Section{Label: types.SectionExperience, Text: text}
}

func TestExtract_ExplicitStatement(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		years float64
	}{
		{"plain", "5 years of experience in backend systems", 5},
		{"plus and abbreviation", "7+ yrs experience with distributed systems", 7},
		{"fractional", "2.5 years of experience", 2.5},
		{"qualified", "8 years of professional software experience", 8},
		{"shorthand plus", "Requirements: 3+ years", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fact := Extract([]types.Section{{Label: types.SectionSummary, Text: tt.text}}, fixedNow)
			assert.Equal(t, types.DerivationExplicit, fact.Derivation)
			assert.InDelta(t, tt.years, fact.Years, 1e-9)
		})
	}
}

func TestExtract_ExplicitBeatsDateRanges(t *testing.T) {
	sections := []types.Section{
		{Label: types.SectionSummary, Text: "10 years of experience"},
		experienceSection("Acme Corp Jan 2023 - Jan 2024"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationExplicit, fact.Derivation)
	assert.InDelta(t, 10.0, fact.Years, 1e-9)
}

func TestExtract_FirstStatementInDocumentOrderWins(t *testing.T) {
	sections := []types.Section{
		{Label: types.SectionSummary, Text: "6 years of experience"},
		experienceSection("previously claimed 9 years of experience"),
	}
	fact := Extract(sections, fixedNow)
	assert.InDelta(t, 6.0, fact.Years, 1e-9)
}

func TestExtract_EarlierShorthandBeatsLaterFullForm(t *testing.T) {
	sections := []types.Section{
		{Label: types.SectionSummary, Text: "5+ years building distributed systems"},
		experienceSection("mentored engineers with 2 years of experience"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationExplicit, fact.Derivation)
	assert.InDelta(t, 5.0, fact.Years, 1e-9)
}

func TestExtract_ShorthandEarlierInSameSectionWins(t *testing.T) {
	sections := []types.Section{
		{Label: types.SectionSummary, Text: "4+ years with Go; 12 years of experience overall claimed elsewhere"},
	}
	fact := Extract(sections, fixedNow)
	assert.InDelta(t, 4.0, fact.Years, 1e-9)
}

func TestExtract_DateRangeSum(t *testing.T) {
	sections := []types.Section{
		experienceSection("Acme Corp, Jan 2020 - Jan 2022\nInitech, Mar 2022 - Mar 2023"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationDateRangeSum, fact.Derivation)
	assert.InDelta(t, 3.0, fact.Years, 1e-9)
}

func TestExtract_PresentResolvesToInjectedClock(t *testing.T) {
	sections := []types.Section{
		experienceSection("Acme Corp, Jun 2024 - Present"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationDateRangeSum, fact.Derivation)
	assert.InDelta(t, 1.0, fact.Years, 1e-9)
}

func TestExtract_NumericAndBareYearFormats(t *testing.T) {
	sections := []types.Section{
		experienceSection("01/2020 - 07/2021\n2018 to 2019"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationDateRangeSum, fact.Derivation)
	// 18 months + 12 months = 30 months = 2.5 years
	assert.InDelta(t, 2.5, fact.Years, 1e-9)
}

func TestExtract_OverlappingRangesAreAdditive(t *testing.T) {
	sections := []types.Section{
		experienceSection("Jan 2020 - Jan 2022\nJan 2021 - Jan 2023"),
	}
	fact := Extract(sections, fixedNow)
	assert.InDelta(t, 4.0, fact.Years, 1e-9, "concurrent roles count in full")
}

func TestExtract_RangesOutsideExperienceSectionIgnored(t *testing.T) {
	sections := []types.Section{
		{Label: types.SectionEducation, Text: "University, 2014 - 2018"},
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationNone, fact.Derivation)
	assert.Zero(t, fact.Years)
}

func TestExtract_NothingFoundDefaultsToZero(t *testing.T) {
	fact := Extract([]types.Section{{Label: types.SectionSummary, Text: "no numbers here"}}, fixedNow)
	assert.Equal(t, types.DerivationNone, fact.Derivation)
	assert.Zero(t, fact.Years)
}

func TestExtract_ImplausibleYearRejected(t *testing.T) {
	sections := []types.Section{
		experienceSection("project codename 1024 - 2048"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationNone, fact.Derivation)
}

func TestExtract_ReversedRangeIgnored(t *testing.T) {
	sections := []types.Section{
		experienceSection("Jan 2023 - Jan 2020"),
	}
	fact := Extract(sections, fixedNow)
	assert.Equal(t, types.DerivationNone, fact.Derivation)
}

func TestParseDate_Formats(t *testing.T) {
	date, ok := parseDate("Sep 2021", fixedNow)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2021, time.September, 1, 0, 0, 0, 0, time.UTC), date)

	date, ok = parseDate("september 2021", fixedNow)
	assert.True(t, ok)
	assert.Equal(t, time.September, date.Month())

	date, ok = parseDate("present", fixedNow)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), date)

	date, ok = parseDate("2020", fixedNow)
	assert.True(t, ok)
	assert.Equal(t, time.January, date.Month())

	_, ok = parseDate("13/2020", fixedNow)
	assert.False(t, ok)
}
