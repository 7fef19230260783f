package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobclean/internal/cleaning"
	"github.com/jonathan/jobclean/internal/types"
)

var normalizeLocationCmd = &cobra.Command{
	Use:   "normalize-location LOCATION...",
	Short: "Print the canonical form of each location",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			fmt.Fprintln(cmd.OutOrStdout(), cleaning.NormalizeLocation(arg))
		}
		return nil
	},
}

var normalizeSalaryCmd = &cobra.Command{
	Use:   "normalize-salary SALARY...",
	Short: "Parse each salary into a numeric range, one JSON object per line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalizeSalary,
}

// salaryResult is one line of normalize-salary output
type salaryResult struct {
	Salary string `json:"salary"`
	Parsed bool   `json:"parsed"`
	*types.SalaryRange
}

func init() {
	rootCmd.AddCommand(normalizeLocationCmd)
	rootCmd.AddCommand(normalizeSalaryCmd)
}

func runNormalizeSalary(cmd *cobra.Command, args []string) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)

	for _, arg := range args {
		result := salaryResult{Salary: arg}
		if rng, ok := cleaning.ParseSalary(arg); ok {
			result.Parsed = true
			result.SalaryRange = &rng
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode salary result: %w", err)
		}
	}
	return nil
}
