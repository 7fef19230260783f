package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/jobclean/internal/types"
)

// Output file names written by WriteOutput
const (
	CleanedFileName = "jobs.cleaned.json"
	StatsFileName   = "jobs.stats.json"
	MetaFileName    = "jobs.meta.json"
)

// MarshalRecords renders cleaned records as an indented JSON array. An empty
// batch renders as [] rather than null.
func MarshalRecords(records []types.JobRecord) ([]byte, error) {
	data, err := json.MarshalIndent(nonNil(records), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleaned records: %w", err)
	}
	return data, nil
}

// WriteOutput writes the cleaned records, statistics and metadata to outDir
func WriteOutput(outDir string, cleanedJSON []byte, stats types.Stats, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, CleanedFileName)
	if err := os.WriteFile(cleanedPath, cleanedJSON, 0644); err != nil {
		return fmt.Errorf("failed to write cleaned jobs file: %w", err)
	}

	statsJSON, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	statsPath := filepath.Join(outDir, StatsFileName)
	if err := os.WriteFile(statsPath, statsJSON, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(outDir, MetaFileName)
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
