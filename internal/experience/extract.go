// Package experience derives total years of experience from document text
// using regex-driven arithmetic over explicit statements and date ranges.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Two derivation strategies are tried in order; the first that produces a
// value wins. When neither does, the result is an explicit 0.0 so downstream
// gap arithmetic stays total.

// reExplicit matches a stated total like "5 years of experience" or
// "7+ yrs professional experience".
var reExplicit = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:[a-z]+\s+){0,2}experience\b`)

// rePlusYears matches shorthand like "5+ years" where the trailing plus marks
// the number as a career total rather than a single role's duration.
var rePlusYears = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*\+\s*(?:years?|yrs?)\b`)

// dateToken recognizes "Jan 2020", "01/2020" and bare "2020".
const dateToken = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})`

// reRange matches a start-end pair with any common dash or "to"/"until".
var reRange = regexp.MustCompile(`(?i)(` + dateToken + `)\s*(?:-|–|—|to|till|until)\s*(` + dateToken + `|present|current|now)`)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Extract derives the experience fact for a segmented document. The explicit
// statement strategy scans every section; date-range summation only trusts
// the Experience section. The now argument resolves "present" and is injected
// by the caller so identical inputs always yield identical output.
func Extract(sections []types.Section, now time.Time) types.ExperienceFact {
	if years, ok := explicitStatement(sections); ok {
		return types.ExperienceFact{Years: years, Derivation: types.DerivationExplicit}
	}
	if years, ok := dateRangeSum(sections, now); ok {
		return types.ExperienceFact{Years: years, Derivation: types.DerivationDateRangeSum}
	}
	return types.ExperienceFact{Years: 0.0, Derivation: types.DerivationNone}
}

// explicitStatement returns the first stated total in document order. Both
// statement shapes compete in a single pass; when full form and shorthand
// match at the same offset the full form wins.
func explicitStatement(sections []types.Section) (float64, bool) {
	for _, section := range sections {
		best := -1
		var value float64
		for _, re := range []*regexp.Regexp{reExplicit, rePlusYears} {
			loc := re.FindStringSubmatchIndex(section.Text)
			if loc == nil {
				continue
			}
			years, err := strconv.ParseFloat(section.Text[loc[2]:loc[3]], 64)
			if err != nil || years < 0 {
				continue
			}
			if best == -1 || loc[0] < best {
				best = loc[0]
				value = years
			}
		}
		if best >= 0 {
			return value, true
		}
	}
	return 0, false
}

// dateRangeSum converts every recognizable start-end pair in the Experience
// section into a duration and sums them. Overlapping ranges are treated as
// additive: concurrent roles count in full unless an explicit total statement
// exists, which would have won in the prior strategy.
func dateRangeSum(sections []types.Section, now time.Time) (float64, bool) {
	totalMonths := 0
	found := false

	for _, section := range sections {
		if section.Label != types.SectionExperience {
			continue
		}
		for _, pair := range reRange.FindAllStringSubmatch(section.Text, -1) {
			start, okStart := parseDate(pair[1], now)
			end, okEnd := parseDate(pair[2], now)
			if !okStart || !okEnd {
				continue
			}
			months := monthsBetween(start, end)
			if months < 0 {
				continue
			}
			totalMonths += months
			found = true
		}
	}

	if !found {
		return 0, false
	}
	// Month-precision arithmetic, reported to one decimal.
	return roundTenth(float64(totalMonths) / 12.0), true
}

// parseDate resolves one date token to month precision. Bare years resolve to
// January; "present"/"current"/"now" resolve to the injected analysis time.
func parseDate(token string, now time.Time) (time.Time, bool) {
	token = strings.ToLower(strings.TrimSpace(token))

	switch token {
	case "present", "current", "now":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}

	if len(token) >= 3 {
		if month, ok := monthIndex[token[:3]]; ok {
			fields := strings.Fields(token)
			if len(fields) == 2 {
				if year, err := strconv.Atoi(fields[1]); err == nil && plausibleYear(year) {
					return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
				}
			}
			return time.Time{}, false
		}
	}

	if slash := strings.IndexByte(token, '/'); slash > 0 {
		monthNum, errM := strconv.Atoi(token[:slash])
		year, errY := strconv.Atoi(token[slash+1:])
		if errM == nil && errY == nil && monthNum >= 1 && monthNum <= 12 && plausibleYear(year) {
			return time.Date(year, time.Month(monthNum), 1, 0, 0, 0, 0, time.UTC), true
		}
		return time.Time{}, false
	}

	if year, err := strconv.Atoi(token); err == nil && plausibleYear(year) {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// plausibleYear filters four-digit numbers that are not calendar years.
func plausibleYear(year int) bool {
	return year >= 1950 && year <= 2100
}

func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
