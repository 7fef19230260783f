package cleaning

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobclean/internal/types"
)

// CleanAll cleans each batch with its own Processor, concurrently. Results are
// returned in batch order and the statistics are summed. Duplicates are only
// detected within a batch, never across batches.
//
// On error the merged statistics still include every batch that ran.
func CleanAll(ctx context.Context, batches [][]types.JobRecord, opts ...Option) ([][]types.JobRecord, types.Stats, error) {
	results := make([][]types.JobRecord, len(batches))
	perBatch := make([]types.Stats, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cleaned, stats, err := NewProcessor(opts...).Clean(batch)
			perBatch[i] = stats
			if err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}
			results[i] = cleaned
			return nil
		})
	}
	err := g.Wait()

	var merged types.Stats
	for _, stats := range perBatch {
		merged = merged.Merge(stats)
	}
	if err != nil {
		return nil, merged, err
	}
	return results, merged, nil
}
