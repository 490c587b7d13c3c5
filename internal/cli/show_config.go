package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after applying the config file, TAXRANK_* environment variables and flags.",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}

	cmd.Flags().String("year", "", "fiscal year to rank")
	cmd.Flags().Int("limit", 0, "maximum number of parcels to list")
	cmd.Flags().String("source", "", "where to read records from (files|db)")
	addDatasetFlags(cmd)

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.DB = redactDSN(cfg.DB)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
