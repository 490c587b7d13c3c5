// Package report runs the parcel tax pipeline over one dataset snapshot.
package report

import (
	"encoding/json"
	"log/slog"
	"math"

	"github.com/evcraddock/taxrank/internal/property"
	"github.com/evcraddock/taxrank/internal/record"
	"github.com/evcraddock/taxrank/internal/tax"
)

// Defaults used when Options leaves a field unset.
const (
	DefaultTargetYear = "2021"
	DefaultLimit      = 200
)

// Dataset is the three record collections handed over by a source.
type Dataset struct {
	Buildings []record.Building
	Taxes     []record.Tax
	Locations []record.Location
}

// Options controls which records are ranked.
type Options struct {
	TargetYear string
	Limit      int
}

func (o Options) withDefaults() Options {
	if o.TargetYear == "" {
		o.TargetYear = DefaultTargetYear
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// Entry is one ranked parcel.
type Entry struct {
	Rank      int       `json:"rank"`
	ParcelID  string    `json:"parcel_id"`
	Ratio     tax.Ratio `json:"ratio"`
	TaxesPaid float64   `json:"taxes_paid"`
	LotSize   int64     `json:"lot_size"`
	Year      string    `json:"year"`
	Address   *string   `json:"address,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// MarshalJSON writes NaN or infinite numbers as null.
func (e Entry) MarshalJSON() ([]byte, error) {
	type entry Entry
	return json.Marshal(struct {
		entry
		TaxesPaid *float64 `json:"taxes_paid"`
		Latitude  *float64 `json:"latitude,omitempty"`
		Longitude *float64 `json:"longitude,omitempty"`
	}{entry(e), finite(&e.TaxesPaid), finite(e.Latitude), finite(e.Longitude)})
}

func finite(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	return f
}

// Report is the outcome of one run.
type Report struct {
	TargetYear string              `json:"target_year"`
	Limit      int                 `json:"limit"`
	Properties int                 `json:"properties"`
	Index      property.BuildStats `json:"index"`
	Assembled  int                 `json:"assembled"`
	Tally      tax.Tally           `json:"tally"`
	Entries    []Entry             `json:"entries"`
}

// Build indexes the properties, joins the tax payments, drops invalid
// ratios and ranks what is left for the target year. Invalid records are
// counted across all years.
func Build(ds *Dataset, opts Options, logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	logger.Info("indexing properties", "buildings", len(ds.Buildings), "locations", len(ds.Locations))
	idx := property.BuildIndex(ds.Buildings, ds.Locations)
	stats := idx.Stats()
	logger.Debug("property index built",
		"properties", idx.Len(),
		"skipped", stats.BuildingsSkipped,
		"duplicates", stats.Duplicates,
		"locations_applied", stats.LocationsApplied,
		"locations_discarded", stats.LocationsDiscarded,
	)

	logger.Info("joining taxes", "taxes", len(ds.Taxes))
	assembled := tax.Assemble(ds.Taxes, idx)

	valid, tally := tax.Filter(assembled)
	logger.Debug("filtered tax records",
		"assembled", len(assembled),
		"valid", tally.Valid,
		"invalid_lot", tally.InvalidLot,
		"zero_tax", tally.ZeroTax,
	)

	logger.Info("ranking", "year", opts.TargetYear, "limit", opts.Limit)
	ranked := tax.Rank(valid, opts.TargetYear, opts.Limit)

	entries := make([]Entry, 0, len(ranked))
	for i, r := range ranked {
		e := Entry{
			Rank:      i + 1,
			ParcelID:  r.ParcelID,
			Ratio:     r.Ratio,
			TaxesPaid: r.TaxesPaid,
			LotSize:   r.LotSize,
			Year:      r.Year,
		}
		if p, ok := idx.Get(r.ParcelID); ok {
			e.Address = p.Address
			e.Latitude = p.Latitude
			e.Longitude = p.Longitude
		}
		entries = append(entries, e)
	}

	return &Report{
		TargetYear: opts.TargetYear,
		Limit:      opts.Limit,
		Properties: idx.Len(),
		Index:      stats,
		Assembled:  len(assembled),
		Tally:      tally,
		Entries:    entries,
	}
}
