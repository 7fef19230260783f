package cleaning

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/jobclean/internal/types"
)

// Abbreviation is one whole-word rewrite rule for locations
type Abbreviation struct {
	From string
	To   string
}

// wordRule replaces from with to wherever from stands as a whole word. A word
// character is any Unicode letter or number, or an underscore.
type wordRule struct {
	from string
	to   string
}

// locationAbbreviations is applied top to bottom. Longer phrases come before
// the short tokens they contain ("washington dc" before "dc").
var locationAbbreviations = []Abbreviation{
	{"washington dc", "washington"},
	{"new york city", "new york"},
	{"ny", "new york"},
	{"nyc", "new york"},
	{"sf", "san francisco"},
	{"la", "los angeles"},
	{"dc", "washington"},
	{"philly", "philadelphia"},
	{"vegas", "las vegas"},
	{"ksa", "saudi arabia"},
	{"uae", "united arab emirates"},
	{"uk", "united kingdom"},
	{"usa", "united states"},
	{"us", "united states"},
}

// acronyms restores tokens that title casing lowers
var acronyms = []Abbreviation{
	{"Usa", "USA"},
	{"Uk", "UK"},
	{"Uae", "UAE"},
	{"Dc", "DC"},
}

var (
	abbreviationRules = compileWordRules(locationAbbreviations)
	acronymRules      = compileWordRules(acronyms)
)

func compileWordRules(table []Abbreviation) []wordRule {
	rules := make([]wordRule, 0, len(table))
	for _, a := range table {
		rules = append(rules, wordRule{from: a.From, to: a.To})
	}
	return rules
}

// LocationAbbreviations returns a copy of the ordered abbreviation table
func LocationAbbreviations() []Abbreviation {
	return append([]Abbreviation(nil), locationAbbreviations...)
}

// NormalizeLocation returns the canonical form of a free-text location.
// Empty input is returned unchanged.
func NormalizeLocation(location string) string {
	if location == "" {
		return location
	}

	normalized := strings.Join(strings.Fields(strings.ToLower(location)), " ")
	normalized = applyWordRules(normalized, abbreviationRules)
	return applyWordRules(titleCase(normalized), acronymRules)
}

func applyWordRules(s string, rules []wordRule) string {
	for _, rule := range rules {
		s = rule.replace(s)
	}
	return s
}

// replace rewrites every non-overlapping whole-word occurrence, left to right.
func (r wordRule) replace(s string) string {
	if r.from == "" {
		return s
	}

	var sb strings.Builder
	last, pos := 0, 0
	for pos <= len(s)-len(r.from) {
		i := strings.Index(s[pos:], r.from)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(r.from)

		if wordBoundaryBefore(s, start) && wordBoundaryAfter(s, end) {
			sb.WriteString(s[last:start])
			sb.WriteString(r.to)
			last, pos = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}

	if last == 0 {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func wordBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(s string, i int) bool {
	if i == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

// titleCase upper-cases a letter that follows a non-letter and lower-cases the rest.
func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (p *Processor) normalizeLocations(records []types.JobRecord) int {
	normalizedCount := 0

	for _, rec := range records {
		original, ok := rec[types.FieldLocation].(string)
		if !ok || original == "" {
			continue
		}

		normalized := NormalizeLocation(original)
		if normalized == original {
			continue
		}

		rec[types.FieldLocation] = normalized
		rec[types.FieldOriginalLocation] = original
		normalizedCount++
		p.logger.Debug("normalized location", "from", original, "to", normalized)
	}

	p.logger.Info("normalized location entries", "count", normalizedCount)
	return normalizedCount
}
