// Package source reads the building, tax and location datasets.
package source

import (
	"context"
	"fmt"

	"github.com/evcraddock/taxrank/internal/report"
)

// Source supplies one dataset snapshot.
type Source interface {
	Load(ctx context.Context) (*report.Dataset, error)
}

// OpenError reports a dataset that could not be opened.
type OpenError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening %s dataset %s: %v", e.Dataset, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ParseError reports a dataset whose contents could not be decoded.
type ParseError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s dataset %s: %v", e.Dataset, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const (
	datasetBuildings = "buildings"
	datasetTaxes     = "taxes"
	datasetLocations = "locations"
)
