package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/taxrank/internal/db"
	"github.com/evcraddock/taxrank/internal/report"
)

const (
	sourceFiles = "files"
	sourceDB    = "db"

	defaultBuildingsFile = "property-building-data.json"
	defaultTaxesFile     = "property-taxes-by-parcel-id.json"
	defaultLocationsFile = "tax-parcel-gps-locations.json"
)

// Config holds the settings for a run.
type Config struct {
	TargetYear         string `yaml:"target_year" json:"target_year"`
	Limit              int    `yaml:"limit" json:"limit"`
	Source             string `yaml:"source" json:"source"`
	Buildings          string `yaml:"buildings" json:"buildings"`
	Taxes              string `yaml:"taxes" json:"taxes"`
	Locations          string `yaml:"locations" json:"locations"`
	LocationsShapefile string `yaml:"locations_shapefile,omitempty" json:"locations_shapefile,omitempty"`
	DB                 string `yaml:"db,omitempty" json:"db,omitempty"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		TargetYear: report.DefaultTargetYear,
		Limit:      report.DefaultLimit,
		Source:     sourceFiles,
		Buildings:  filepath.Join("data", defaultBuildingsFile),
		Taxes:      filepath.Join("data", defaultTaxesFile),
		Locations:  filepath.Join("data", defaultLocationsFile),
	}
}

// configPath returns the path to the default config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taxrank", "config.yaml"), nil
}

// loadConfigFile overlays the YAML file at path onto cfg. A missing file is
// fine unless it was named explicitly.
func loadConfigFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays TAXRANK_* environment variables onto cfg. A .env file
// in the working directory is loaded first without overriding variables
// that are already set.
func applyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv("TAXRANK_YEAR"); v != "" {
		cfg.TargetYear = v
	}
	if v := os.Getenv("TAXRANK_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TAXRANK_LIMIT %q: %w", v, err)
		}
		cfg.Limit = n
	}
	if dir := os.Getenv("TAXRANK_DATA_DIR"); dir != "" {
		cfg.Buildings = filepath.Join(dir, defaultBuildingsFile)
		cfg.Taxes = filepath.Join(dir, defaultTaxesFile)
		cfg.Locations = filepath.Join(dir, defaultLocationsFile)
	}
	if v := os.Getenv("TAXRANK_DB"); v != "" {
		cfg.DB = v
	}
	return nil
}

// applyFlags overlays any flags the user set on cmd.
func applyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()
	strs := []struct {
		name string
		dst  *string
	}{
		{"year", &cfg.TargetYear},
		{"source", &cfg.Source},
		{"buildings", &cfg.Buildings},
		{"taxes", &cfg.Taxes},
		{"locations", &cfg.Locations},
		{"locations-shp", &cfg.LocationsShapefile},
		{"db", &cfg.DB},
	}
	for _, s := range strs {
		if flags.Lookup(s.name) == nil || !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if flags.Lookup("limit") != nil && flags.Changed("limit") {
		n, err := flags.GetInt("limit")
		if err != nil {
			return err
		}
		cfg.Limit = n
	}
	return nil
}

// validate checks settings that would otherwise produce a silent empty report.
func (c *Config) validate() error {
	if c.TargetYear == "" {
		return fmt.Errorf("target year is required")
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	switch c.Source {
	case sourceFiles, sourceDB:
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, sourceFiles, sourceDB)
	}
	if c.DB == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return err
		}
		c.DB = path
	}
	return nil
}

// resolveConfig merges defaults, config file, environment and flags,
// in increasing precedence.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg := defaultConfig()
	if err := loadConfigFile(&cfg, flagConfig); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// addDatasetFlags registers the flags naming the input datasets.
func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().String("buildings", "", "building records JSON file")
	cmd.Flags().String("taxes", "", "tax records JSON file")
	cmd.Flags().String("locations", "", "location records JSON file")
	cmd.Flags().String("locations-shp", "", "read locations from a point shapefile instead")
	cmd.Flags().String("db", "", "database path or oracle:// DSN (default: ~/.config/taxrank/taxrank.db)")
}
