package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobclean/internal/cleaning"
	"github.com/jonathan/jobclean/internal/config"
	"github.com/jonathan/jobclean/internal/db"
	"github.com/jonathan/jobclean/internal/ingestion"
	"github.com/jonathan/jobclean/internal/logger"
	"github.com/jonathan/jobclean/internal/observability"
	"github.com/jonathan/jobclean/internal/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean one or more job batch files",
	Long: `Loads job batches, removes duplicates and incomplete listings, normalizes locations
and salaries, and writes jobs.cleaned.json, jobs.stats.json and jobs.meta.json.

Each input file is cleaned as its own batch unless --merge is given. Configuration can be
loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runClean,
}

var (
	cleanConfigPath  string
	cleanInputs      []string
	cleanOutDir      string
	cleanDatabaseURL string
	cleanMerge       bool
	cleanVerbose     bool
	cleanQuiet       bool
	cleanJSONLogs    bool
)

func init() {
	cleanCmd.Flags().StringVar(&cleanConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cleanCmd.Flags().StringArrayVarP(&cleanInputs, "in", "i", nil, "Job batch file to clean (repeatable)")
	cleanCmd.Flags().StringVarP(&cleanOutDir, "out", "o", "", "Output directory (default \"out\")")
	cleanCmd.Flags().StringVar(&cleanDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cleanCmd.Flags().BoolVar(&cleanMerge, "merge", false, "Clean all inputs as one batch so duplicates across files are removed")
	cleanCmd.Flags().BoolVarP(&cleanVerbose, "verbose", "v", false, "Print debug logs and summaries")
	cleanCmd.Flags().BoolVarP(&cleanQuiet, "quiet", "q", false, "Only log errors (overrides --verbose for logs)")
	cleanCmd.Flags().BoolVar(&cleanJSONLogs, "json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := resolveCleanConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("at least one --in file must be provided (via flag or config)")
	}

	log := logger.New(logger.Options{
		Debug:  cfg.Verbose,
		Quiet:  cfg.Quiet,
		JSON:   cfg.JSONLogs,
		Output: cmd.ErrOrStderr(),
	})
	printer := observability.NewPrinter(out)

	batches := make([][]types.JobRecord, 0, len(cfg.Inputs))
	inputCount := 0
	for _, path := range cfg.Inputs {
		records, err := ingestion.LoadBatch(path)
		if err != nil {
			return err
		}
		log.Info("loaded batch", "path", path, "jobs", len(records))
		inputCount += len(records)
		batches = append(batches, records)
	}
	if cleanMerge {
		batches = [][]types.JobRecord{mergeBatches(batches)}
	}

	runID := uuid.New()
	var store *db.DB
	if cfg.DatabaseURL != "" {
		store, err = openStore(ctx, cfg, log, runID)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	results, stats, cleanErr := cleaning.CleanAll(ctx, batches, cleaning.WithLogger(log))
	if cleanErr != nil {
		if store != nil {
			if err := store.CompleteRun(context.WithoutCancel(ctx), runID, db.RunStatusFailed, stats); err != nil {
				log.Error("failed to record failed run", "run_id", runID, "error", err)
			}
		}
		return fmt.Errorf("cleaning failed: %w", cleanErr)
	}
	cleaned := mergeBatches(results)

	cleanedJSON, err := ingestion.MarshalRecords(cleaned)
	if err != nil {
		return err
	}
	meta := ingestion.NewMetadata(runID.String(), cleanedJSON, cfg.Inputs, inputCount, len(cleaned))
	if err := ingestion.WriteOutput(cfg.OutDir, cleanedJSON, stats, meta); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	var saved db.SaveResult
	if store != nil {
		saved, err = store.SaveCleanedJobs(ctx, runID, cleaned)
		if err != nil {
			if cErr := store.CompleteRun(context.WithoutCancel(ctx), runID, db.RunStatusFailed, stats); cErr != nil {
				log.Error("failed to record failed run", "run_id", runID, "error", cErr)
			}
			return err
		}
		if err := store.CompleteRun(ctx, runID, db.RunStatusCompleted, stats); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Successfully cleaned %d of %d jobs\n", len(cleaned), inputCount)
	fmt.Fprintf(out, "Cleaned jobs: %s\n", filepath.Join(cfg.OutDir, ingestion.CleanedFileName))
	fmt.Fprintf(out, "Statistics: %s\n", filepath.Join(cfg.OutDir, ingestion.StatsFileName))
	fmt.Fprintf(out, "Metadata: %s\n", filepath.Join(cfg.OutDir, ingestion.MetaFileName))

	if cfg.Verbose {
		printer.PrintStats(stats)
		printer.PrintCleanedSample(cleaned)
		if store != nil {
			printer.PrintSaveResult(runID.String(), saved.Inserted, saved.Skipped)
		}
	}
	return nil
}

// resolveCleanConfig merges the config file, explicitly set flags and the
// built-in defaults, in increasing order of precedence for flags.
func resolveCleanConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if cleanConfigPath != "" {
		loadedCfg, err := config.LoadConfig(cleanConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	if cmd.Flags().Changed("in") {
		cfg.Inputs = append([]string(nil), cleanInputs...)
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = cleanOutDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = cleanDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = cleanVerbose
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Quiet = cleanQuiet
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = cleanJSONLogs
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger, runID uuid.UUID) (*db.DB, error) {
	store, err := db.Connect(ctx, cfg.DatabaseURL,
		db.WithRetryPolicy(cfg.RetryPolicy()),
		db.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if err := store.CreateRun(ctx, runID, cfg.Inputs); err != nil {
		store.Close()
		return nil, err
	}
	log.Info("recording run", "run_id", runID)
	return store, nil
}

func mergeBatches(batches [][]types.JobRecord) []types.JobRecord {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	merged := make([]types.JobRecord, 0, n)
	for _, b := range batches {
		merged = append(merged, b...)
	}
	return merged
}
