package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobclean/internal/cleaning"
	"github.com/jonathan/jobclean/internal/types"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Print the duplicate-detection fingerprint of a listing",
	RunE:  runFingerprint,
}

var (
	fpTitle    string
	fpCompany  string
	fpLocation string
)

func init() {
	fingerprintCmd.Flags().StringVar(&fpTitle, "title", "", "Job title")
	fingerprintCmd.Flags().StringVar(&fpCompany, "company", "", "Company name")
	fingerprintCmd.Flags().StringVar(&fpLocation, "location", "", "Job location")

	rootCmd.AddCommand(fingerprintCmd)
}

func runFingerprint(cmd *cobra.Command, _ []string) error {
	fp, err := cleaning.Fingerprint(types.JobRecord{
		types.FieldTitle:    fpTitle,
		types.FieldCompany:  fpCompany,
		types.FieldLocation: fpLocation,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), fp)
	return nil
}
