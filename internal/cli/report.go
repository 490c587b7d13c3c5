package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/taxrank/internal/report"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Rank parcels by tax paid per square foot",
		Long: `Load the building, tax and location datasets, join them on the tax parcel id
and print the parcels with the highest taxes paid per square foot of lot for
the target year. Assessments with a lot under 10 sqft or no tax paid are left
out of the ranking and counted.`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().String("year", "", "fiscal year to rank (default 2021)")
	cmd.Flags().Int("limit", 0, "maximum number of parcels to list (default 200)")
	cmd.Flags().String("source", "", "where to read records from (files|db)")
	addDatasetFlags(cmd)

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd)
	ctx := cmd.Context()

	src, closeSrc, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	ds, err := src.Load(ctx)
	if err != nil {
		return err
	}

	rep := report.Build(ds, report.Options{TargetYear: cfg.TargetYear, Limit: cfg.Limit}, logger)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), rep)
	}
	return printReport(cmd.OutOrStdout(), rep)
}
