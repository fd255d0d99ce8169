package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAutoFillCmd() *cobra.Command {
	var region string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Fill empty event slots of a region from its organization pages",
		Long: `autofill scrapes the event pages configured for the region in
AUTOFILL_SOURCES_FILE and places upcoming events into empty event slots,
one per organization. A report is emailed to AUTOFILL_REPORT_EMAIL when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.autoFill.AutoFill(cmd.Context(), region)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(out, "region %s: %d filled, %d skipped\n", report.RegionID, len(report.Filled), len(report.Skipped))
			for _, s := range report.Filled {
				fmt.Fprintf(out, "  slot %d  %s\n", s.SlotNumber, s.Payload.Title)
			}
			for _, s := range report.Skipped {
				fmt.Fprintf(out, "  skip     %s (%s)\n", s.URL, s.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "region to fill")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("region")
	return cmd
}
