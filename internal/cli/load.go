package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/taxrank/internal/db"
	"github.com/evcraddock/taxrank/internal/source"
)

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Store the datasets in the local database",
		Long: `Read the building, tax and location files and store them in the SQLite
database, replacing any earlier snapshot. Later runs can read them with
'taxrank report --source db'.`,
		Args: cobra.NoArgs,
		RunE: runLoad,
	}

	addDatasetFlags(cmd)

	return cmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if db.IsOracle(cfg.DB) {
		return fmt.Errorf("load writes to a local SQLite database, not %s", redactDSN(cfg.DB))
	}

	logger := setupLogger(cmd)
	ctx := cmd.Context()

	files := source.Files{
		Buildings:          cfg.Buildings,
		Taxes:              cfg.Taxes,
		Locations:          cfg.Locations,
		LocationsShapefile: cfg.LocationsShapefile,
		Logger:             logger,
	}
	ds, err := files.Load(ctx)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer closeDB(logger, database)

	locations := cfg.Locations
	if cfg.LocationsShapefile != "" {
		locations = cfg.LocationsShapefile
	}
	desc := strings.Join([]string{cfg.Buildings, cfg.Taxes, locations}, ",")

	store := source.SQL{DB: database, Name: cfg.DB, Logger: logger}
	info, err := store.Save(ctx, ds, desc)
	if err != nil {
		return fmt.Errorf("storing datasets: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), info)
	}
	return printLoadInfo(cmd.OutOrStdout(), cfg.DB, info)
}
