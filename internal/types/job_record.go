// Package types provides type definitions for structured data used throughout the jobclean system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Field names consumed and produced by the cleaning pipeline
const (
	FieldTitle    = "title"
	FieldCompany  = "company"
	FieldLocation = "location"
	FieldSalary   = "salary"

	FieldOriginalLocation = "original_location"
	FieldOriginalSalary   = "original_salary"
	FieldSalaryMin        = "salary_min"
	FieldSalaryMax        = "salary_max"
	FieldSalaryCurrency   = "salary_currency"
	FieldSalaryPeriod     = "salary_period"
)

// Salary periods
const (
	PeriodHourly  = "hourly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Currency codes recognised by the salary parser
const (
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
	CurrencyINR = "INR"
)

// JobRecord is one scraped listing. Keys are not fixed; any key the
// pipeline does not know about passes through untouched.
type JobRecord map[string]any

// Text returns the string form of a field. Absent and nil fields read as "".
// ok is false when the field holds something other than a string.
func (r JobRecord) Text(field string) (value string, ok bool) {
	v, present := r[field]
	if !present || v == nil {
		return "", true
	}
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	return s, true
}

// SalaryRange is a parsed salary expression
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}

// Apply writes the range onto a record, keeping the raw text in original_salary.
func (s SalaryRange) Apply(rec JobRecord, raw string) {
	rec[FieldSalaryMin] = s.Min
	rec[FieldSalaryMax] = s.Max
	rec[FieldSalaryCurrency] = s.Currency
	rec[FieldSalaryPeriod] = s.Period
	rec[FieldOriginalSalary] = raw
}
