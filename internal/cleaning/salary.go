package cleaning

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/jobclean/internal/types"
)

// salaryPatterns is tried in order; the first pattern that matches and
// converts cleanly wins. Group 1 is the low bound, optional group 2 the high.
var salaryPatterns = []string{
	// "100k-150k", "50k - 70k"
	`(\d{1,3})k\s*-\s*(\d{1,3})k`,
	// "$50k-$70k"
	`\$(\d{1,3})k-\$(\d{1,3})k`,
	// "$100,000 - $150,000"
	`\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*-\s*\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`,
	// "$80,000/year"
	`\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)(?:\s*(?:per\s+)?(?:year|yr|annually|annual|/year|/yr))?`,
}

var (
	salaryCascade = compileSalaryPatterns(salaryPatterns)

	hourlyPattern  = regexp.MustCompile(`(?i)per\s+hour|/hour|/hr|hourly`)
	monthlyPattern = regexp.MustCompile(`(?i)per\s+month|/month|monthly`)
)

// currencySymbols is checked in order; the first symbol present wins
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"£", types.CurrencyGBP},
	{"€", types.CurrencyEUR},
	{"₹", types.CurrencyINR},
}

func compileSalaryPatterns(sources []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+src))
	}
	return compiled
}

// SalaryPatterns returns a copy of the ordered extraction patterns
func SalaryPatterns() []string {
	return append([]string(nil), salaryPatterns...)
}

// ParseSalary turns a free-text salary into a numeric range. It reports false when
// no pattern yields usable numbers; that is a parse miss, not an error.
func ParseSalary(salary string) (types.SalaryRange, bool) {
	salary = strings.TrimSpace(salary)
	if salary == "" {
		return types.SalaryRange{}, false
	}

	hourly := hourlyPattern.MatchString(salary)

	for _, pattern := range salaryCascade {
		match := pattern.FindStringSubmatch(salary)
		if match == nil {
			continue
		}
		rng, err := rangeFromMatch(salary, match, hourly)
		if err != nil {
			continue
		}
		return rng, true
	}

	return types.SalaryRange{}, false
}

func rangeFromMatch(salary string, match []string, hourly bool) (types.SalaryRange, error) {
	low := strings.ReplaceAll(match[1], ",", "")
	high := low
	if len(match) > 2 && match[2] != "" {
		high = strings.ReplaceAll(match[2], ",", "")
	}

	minVal, err := strconv.ParseFloat(low, 64)
	if err != nil {
		return types.SalaryRange{}, err
	}
	maxVal, err := strconv.ParseFloat(high, 64)
	if err != nil {
		return types.SalaryRange{}, err
	}

	// k anywhere in the text means thousands
	if strings.Contains(strings.ToLower(salary), "k") {
		minVal *= 1000
		maxVal *= 1000
	}

	// Small bare numbers on non-hourly listings are read as thousands.
	if !hourly {
		if minVal < 1000 {
			minVal *= 1000
		}
		if maxVal < 1000 {
			maxVal *= 1000
		}
	}

	return types.SalaryRange{
		Min:      minVal,
		Max:      maxVal,
		Currency: detectCurrency(salary),
		Period:   detectPeriod(salary, hourly),
	}, nil
}

func detectCurrency(salary string) string {
	for _, c := range currencySymbols {
		if strings.Contains(salary, c.symbol) {
			return c.code
		}
	}
	return types.CurrencyUSD
}

func detectPeriod(salary string, hourly bool) string {
	switch {
	case hourly:
		return types.PeriodHourly
	case monthlyPattern.MatchString(salary):
		return types.PeriodMonthly
	default:
		return types.PeriodYearly
	}
}

func (p *Processor) normalizeSalaries(records []types.JobRecord) int {
	normalizedCount := 0

	for _, rec := range records {
		original, ok := rec[types.FieldSalary].(string)
		if !ok || original == "" {
			continue
		}

		rng, ok := ParseSalary(original)
		if !ok {
			p.logger.Debug("salary not parsed", "salary", original)
			continue
		}

		rng.Apply(rec, original)
		normalizedCount++
		p.logger.Debug("normalized salary",
			"salary", original,
			"min", rng.Min,
			"max", rng.Max,
			"currency", rng.Currency,
			"period", rng.Period)
	}

	p.logger.Info("normalized salary entries", "count", normalizedCount)
	return normalizedCount
}
