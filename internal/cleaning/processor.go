// Package cleaning deduplicates, filters and normalizes scraped job records.
//
// A Processor runs four stages over a batch, always in this order:
// deduplication, completeness filtering, location normalization and salary
// normalization. Records are modified in place; surviving records keep their
// input order.
//
// A Processor is not safe for concurrent use. Give each goroutine its own
// Processor and merge the resulting Stats, as CleanAll does.
package cleaning

import (
	"log/slog"

	"github.com/jonathan/jobclean/internal/logger"
	"github.com/jonathan/jobclean/internal/types"
)

// Processor runs the cleaning stages and keeps the statistics of the last run
type Processor struct {
	logger *slog.Logger
	stats  types.Stats
}

// Option configures a Processor
type Option func(*Processor)

// WithLogger sets the logger used for stage summaries and per-record decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a Processor. Logging is discarded unless WithLogger is given.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{logger: logger.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clean runs every stage over records and returns the cleaned records with a
// copy of the run statistics. Statistics are reset first.
//
// Messy data never fails a run. Only a structurally invalid record (nil, or an
// identity field that is not a string) aborts it with a *RecordError.
func (p *Processor) Clean(records []types.JobRecord) ([]types.JobRecord, types.Stats, error) {
	p.ResetStats()
	p.stats.TotalProcessed = len(records)
	p.logger.Info("starting data cleaning", "jobs", len(records))

	jobs, duplicates, err := p.removeDuplicates(records)
	if err != nil {
		p.stats.Errors++
		p.logger.Error("data cleaning aborted", "error", err)
		return nil, p.Stats(), err
	}
	p.stats.DuplicatesRemoved = duplicates

	jobs, incomplete := p.removeIncomplete(jobs)
	p.stats.IncompleteRemoved = incomplete

	p.stats.LocationsNormalized = p.normalizeLocations(jobs)
	p.stats.SalariesNormalized = p.normalizeSalaries(jobs)

	p.logger.Info("data cleaning complete", "remaining", len(jobs), "stats", p.stats)
	return jobs, p.Stats(), nil
}

// Stats returns a snapshot of the counters
func (p *Processor) Stats() types.Stats {
	return p.stats
}

// ResetStats zeroes every counter
func (p *Processor) ResetStats() {
	p.stats = types.Stats{}
}

// Clean cleans records with a fresh Processor
func Clean(records []types.JobRecord) ([]types.JobRecord, types.Stats, error) {
	return NewProcessor().Clean(records)
}
