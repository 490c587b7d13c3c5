package source

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/evcraddock/taxrank/internal/record"
	"github.com/evcraddock/taxrank/internal/report"
)

// Files reads the datasets from JSON exports on disk. When
// LocationsShapefile is set it is read instead of Locations.
type Files struct {
	Buildings          string
	Taxes              string
	Locations          string
	LocationsShapefile string
	Logger             *slog.Logger
}

// Load reads all three datasets. The first failure aborts the load.
func (f Files) Load(ctx context.Context) (*report.Dataset, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var ds report.Dataset
	var err error

	logger.Info("loading buildings", "path", f.Buildings)
	if ds.Buildings, err = readJSON[record.Building](datasetBuildings, f.Buildings); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("loading taxes", "path", f.Taxes)
	if ds.Taxes, err = readJSON[record.Tax](datasetTaxes, f.Taxes); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.LocationsShapefile != "" {
		logger.Info("loading locations", "path", f.LocationsShapefile, "format", "shapefile")
		ds.Locations, err = readShapefile(f.LocationsShapefile)
	} else {
		logger.Info("loading locations", "path", f.Locations)
		ds.Locations, err = readJSON[record.Location](datasetLocations, f.Locations)
	}
	if err != nil {
		return nil, err
	}

	return &ds, nil
}

// readJSON decodes a JSON array of records from path.
func readJSON[T any](dataset, path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Dataset: dataset, Path: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	var out []T
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&out); err != nil {
		return nil, &ParseError{Dataset: dataset, Path: path, Err: err}
	}
	return out, nil
}
