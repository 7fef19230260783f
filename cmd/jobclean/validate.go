package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobclean/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a job batch file against the job batch schema",
	Long:  "Validates a job batch file against the embedded job batch schema, or against a schema file given with --schema.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to job batch file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file (defaults to the embedded job batch schema)")

	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateInput)
	} else {
		var data []byte
		data, err = os.ReadFile(validateInput)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", validateInput, err)
		}
		err = schemas.ValidateJobBatch(data)
	}

	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Validation failed")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
