package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/taxrank/internal/record"
	"github.com/evcraddock/taxrank/internal/report"
)

// SQL reads and writes dataset snapshots in the buildings, taxes and
// locations tables. Name identifies the database in errors.
type SQL struct {
	DB     *sql.DB
	Name   string
	Logger *slog.Logger
}

// LoadInfo describes a stored snapshot.
type LoadInfo struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Buildings int       `json:"buildings"`
	Taxes     int       `json:"taxes"`
	Locations int       `json:"locations"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	selectBuildingsSQL = `SELECT recordid, taxparcelid, lotsqfeet, streetaddressformatted FROM buildings ORDER BY seq`
	selectTaxesSQL     = `SELECT recordid, taxparcelid, fiscalyear, taxamount FROM taxes ORDER BY seq`
	selectLocationsSQL = `SELECT recordid, taxparcelid, latitude, longitude FROM locations ORDER BY seq`

	insertBuildingSQL = `INSERT INTO buildings (recordid, taxparcelid, lotsqfeet, streetaddressformatted) VALUES (?, ?, ?, ?)`
	insertTaxSQL      = `INSERT INTO taxes (recordid, taxparcelid, fiscalyear, taxamount) VALUES (?, ?, ?, ?)`
	insertLocationSQL = `INSERT INTO locations (recordid, taxparcelid, latitude, longitude) VALUES (?, ?, ?, ?)`
	insertLoadSQL     = `INSERT INTO loads (id, source, buildings, taxes, locations) VALUES (?, ?, ?, ?, ?)`
)

func (s SQL) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Load reads the stored snapshot.
func (s SQL) Load(ctx context.Context) (*report.Dataset, error) {
	var ds report.Dataset

	s.logger().Info("loading buildings", "db", s.Name)
	err := s.query(ctx, datasetBuildings, selectBuildingsSQL, func(rows *sql.Rows) error {
		var recordID, parcelID, address sql.NullString
		var lot sql.NullInt64
		if err := rows.Scan(&recordID, &parcelID, &lot, &address); err != nil {
			return err
		}
		ds.Buildings = append(ds.Buildings, record.Building{
			RecordID: recordID.String,
			Fields: &record.BuildingFields{
				TaxParcelID: nullString(parcelID),
				LotSqFeet:   nullInt(lot),
				Address:     nullString(address),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Info("loading taxes", "db", s.Name)
	err = s.query(ctx, datasetTaxes, selectTaxesSQL, func(rows *sql.Rows) error {
		var recordID, parcelID, year sql.NullString
		var amount sql.NullFloat64
		if err := rows.Scan(&recordID, &parcelID, &year, &amount); err != nil {
			return err
		}
		ds.Taxes = append(ds.Taxes, record.Tax{
			RecordID: recordID.String,
			Fields: &record.TaxFields{
				TaxParcelID: nullString(parcelID),
				FiscalYear:  nullString(year),
				TaxAmount:   nullFloat(amount),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Info("loading locations", "db", s.Name)
	err = s.query(ctx, datasetLocations, selectLocationsSQL, func(rows *sql.Rows) error {
		var recordID, parcelID sql.NullString
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&recordID, &parcelID, &lat, &lon); err != nil {
			return err
		}
		ds.Locations = append(ds.Locations, record.Location{
			RecordID: recordID.String,
			Fields: &record.LocationFields{
				TaxParcelID: nullString(parcelID),
				Latitude:    nullFloat(lat),
				Longitude:   nullFloat(lon),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ds, nil
}

// query runs q and calls scan for every row. Query failures are open
// errors; scan and iteration failures are parse errors.
func (s SQL) query(ctx context.Context, dataset, q string, scan func(*sql.Rows) error) (err error) {
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return &OpenError{Dataset: dataset, Path: s.Name, Err: err}
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &ParseError{Dataset: dataset, Path: s.Name, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &ParseError{Dataset: dataset, Path: s.Name, Err: err}
	}
	return nil
}

// Save replaces the stored snapshot with ds in one transaction and records
// the load. A record without a field-set is stored as a row of nulls.
func (s SQL) Save(ctx context.Context, ds *report.Dataset, sourceDesc string) (*LoadInfo, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger().Warn("rolling back load", "error", err)
		}
	}()

	for _, table := range []string{"buildings", "taxes", "locations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, b := range ds.Buildings {
		f := b.Fields
		if f == nil {
			f = &record.BuildingFields{}
		}
		if _, err := tx.ExecContext(ctx, insertBuildingSQL, b.RecordID, f.TaxParcelID, f.LotSqFeet, f.Address); err != nil {
			return nil, fmt.Errorf("inserting building: %w", err)
		}
	}

	for _, t := range ds.Taxes {
		f := t.Fields
		if f == nil {
			f = &record.TaxFields{}
		}
		if _, err := tx.ExecContext(ctx, insertTaxSQL, t.RecordID, f.TaxParcelID, f.FiscalYear, f.TaxAmount); err != nil {
			return nil, fmt.Errorf("inserting tax: %w", err)
		}
	}

	for _, l := range ds.Locations {
		f := l.Fields
		if f == nil {
			f = &record.LocationFields{}
		}
		if _, err := tx.ExecContext(ctx, insertLocationSQL, l.RecordID, f.TaxParcelID, f.Latitude, f.Longitude); err != nil {
			return nil, fmt.Errorf("inserting location: %w", err)
		}
	}

	info := &LoadInfo{
		ID:        uuid.NewString(),
		Source:    sourceDesc,
		Buildings: len(ds.Buildings),
		Taxes:     len(ds.Taxes),
		Locations: len(ds.Locations),
	}
	if _, err := tx.ExecContext(ctx, insertLoadSQL, info.ID, info.Source, info.Buildings, info.Taxes, info.Locations); err != nil {
		return nil, fmt.Errorf("recording load: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load: %w", err)
	}

	return s.LastLoad(ctx)
}

// LastLoad returns the most recent load, or nil if nothing was loaded.
func (s SQL) LastLoad(ctx context.Context) (*LoadInfo, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, source, buildings, taxes, locations, created_at FROM loads ORDER BY created_at DESC, rowid DESC LIMIT 1`)

	var info LoadInfo
	err := row.Scan(&info.ID, &info.Source, &info.Buildings, &info.Taxes, &info.Locations, &info.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last load: %w", err)
	}
	return &info, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
