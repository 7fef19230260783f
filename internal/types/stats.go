package types

import "log/slog"

// Stats summarizes what one cleaning run did to a batch
type Stats struct {
	TotalProcessed      int `json:"total_processed"`
	DuplicatesRemoved   int `json:"duplicates_removed"`
	IncompleteRemoved   int `json:"incomplete_removed"`
	LocationsNormalized int `json:"locations_normalized"`
	SalariesNormalized  int `json:"salaries_normalized"`
	Errors              int `json:"errors"`
}

// Merge returns the counter-wise sum of s and other.
func (s Stats) Merge(other Stats) Stats {
	return Stats{
		TotalProcessed:      s.TotalProcessed + other.TotalProcessed,
		DuplicatesRemoved:   s.DuplicatesRemoved + other.DuplicatesRemoved,
		IncompleteRemoved:   s.IncompleteRemoved + other.IncompleteRemoved,
		LocationsNormalized: s.LocationsNormalized + other.LocationsNormalized,
		SalariesNormalized:  s.SalariesNormalized + other.SalariesNormalized,
		Errors:              s.Errors + other.Errors,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("total_processed", s.TotalProcessed),
		slog.Int("duplicates_removed", s.DuplicatesRemoved),
		slog.Int("incomplete_removed", s.IncompleteRemoved),
		slog.Int("locations_normalized", s.LocationsNormalized),
		slog.Int("salaries_normalized", s.SalariesNormalized),
		slog.Int("errors", s.Errors),
	)
}
