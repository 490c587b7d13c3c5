// Package cli defines the cobra command tree for taxrank.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/evcraddock/taxrank/internal/db"
	"github.com/evcraddock/taxrank/internal/logging"
	"github.com/evcraddock/taxrank/internal/source"
)

var errNoSnapshot = errors.New("no snapshot loaded; run taxrank load")

var (
	flagFormat  string
	flagConfig  string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taxrank",
		Short:         "Rank parcels by tax paid per square foot",
		Long:          "Join building, tax and parcel location datasets on the tax parcel id and rank parcels by taxes paid per square foot of lot for one fiscal year.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/taxrank/config.yaml)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newReportCmd(),
		newLoadCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// setupLogger sends logs to the command's stderr.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	return logging.Setup(cmd.ErrOrStderr(), flagVerbose)
}

// openSource returns the record source selected by cfg and a function that
// releases it.
func openSource(ctx context.Context, cfg Config, logger *slog.Logger) (source.Source, func(), error) {
	if cfg.Source != sourceDB {
		return source.Files{
			Buildings:          cfg.Buildings,
			Taxes:              cfg.Taxes,
			Locations:          cfg.Locations,
			LocationsShapefile: cfg.LocationsShapefile,
			Logger:             logger,
		}, func() {}, nil
	}

	database, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, nil, &source.OpenError{Dataset: "database", Path: redactDSN(cfg.DB), Err: err}
	}
	src := source.SQL{DB: database, Name: redactDSN(cfg.DB), Logger: logger}

	if !db.IsOracle(cfg.DB) {
		info, err := src.LastLoad(ctx)
		if err == nil && info == nil {
			err = errNoSnapshot
		}
		if err != nil {
			closeDB(logger, database)
			return nil, nil, &source.OpenError{Dataset: "database", Path: cfg.DB, Err: err}
		}
		logger.Info("using stored snapshot", "load_id", info.ID, "loaded_at", info.CreatedAt, "source", info.Source)
	}

	return src, func() { closeDB(logger, database) }, nil
}

// closeDB closes the database, logging any error.
func closeDB(logger *slog.Logger, database *sql.DB) {
	if err := database.Close(); err != nil {
		logger.Warn("closing database", "error", err)
	}
}

// redactDSN hides the password of an oracle:// DSN.
func redactDSN(dsn string) string {
	if !db.IsOracle(dsn) {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "oracle://"
	}
	return u.Redacted()
}

func checkFormat() error {
	switch flagFormat {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q (want text or json)", flagFormat)
}
