// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobclean/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", fitLine(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fitLine truncates or pads line to exactly width runes
func fitLine(line string, width int) string {
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// PrintStats outputs the counters of a cleaning run.
func (p *Printer) PrintStats(stats types.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total processed:       %d\n", stats.TotalProcessed))
	sb.WriteString(fmt.Sprintf("Duplicates removed:    %d\n", stats.DuplicatesRemoved))
	sb.WriteString(fmt.Sprintf("Incomplete removed:    %d\n", stats.IncompleteRemoved))
	sb.WriteString(fmt.Sprintf("Locations normalized:  %d\n", stats.LocationsNormalized))
	sb.WriteString(fmt.Sprintf("Salaries normalized:   %d\n", stats.SalariesNormalized))
	sb.WriteString(fmt.Sprintf("Errors:                %d", stats.Errors))

	p.printBox("CLEANING STATISTICS", sb.String())
}

// PrintCleanedSample outputs the first few cleaned records.
func (p *Printer) PrintCleanedSample(records []types.JobRecord) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cleaned jobs: %d\n\n", len(records)))

	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := records[i]
		title, _ := rec.Text(types.FieldTitle)
		company, _ := rec.Text(types.FieldCompany)
		location, _ := rec.Text(types.FieldLocation)

		sb.WriteString(fmt.Sprintf("#%d  %s at %s\n", i+1, title, company))
		sb.WriteString(fmt.Sprintf("    Location: %s", location))
		if original, ok := rec[types.FieldOriginalLocation].(string); ok {
			sb.WriteString(fmt.Sprintf(" (was %q)", original))
		}
		sb.WriteString("\n")
		if salary := formatSalary(rec); salary != "" {
			sb.WriteString(fmt.Sprintf("    Salary:   %s\n", salary))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(records)-maxItemsToShow))
	}

	p.printBox("CLEANED JOBS", strings.TrimSuffix(sb.String(), "\n"))
}

func formatSalary(rec types.JobRecord) string {
	minVal, okMin := rec[types.FieldSalaryMin].(float64)
	maxVal, okMax := rec[types.FieldSalaryMax].(float64)
	if !okMin || !okMax {
		return ""
	}
	currency, _ := rec[types.FieldSalaryCurrency].(string)
	period, _ := rec[types.FieldSalaryPeriod].(string)

	if minVal == maxVal {
		return fmt.Sprintf("%s %.0f %s", currency, minVal, period)
	}
	return fmt.Sprintf("%s %.0f-%.0f %s", currency, minVal, maxVal, period)
}

// PrintSaveResult outputs how many cleaned jobs reached the database.
func (p *Printer) PrintSaveResult(runID string, inserted, skipped int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", runID))
	sb.WriteString(fmt.Sprintf("Inserted:  %d\n", inserted))
	sb.WriteString(fmt.Sprintf("Skipped:   %d (already stored)", skipped))

	p.printBox("DATABASE", sb.String())
}
