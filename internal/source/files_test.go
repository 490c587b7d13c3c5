package source

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	buildingsJSON = `[
		{"recordid": "b1", "fields": {"taxparcelid": "P1", "lotsqfeet": 1000, "streetaddressformatted": "1 Main St"}},
		{"recordid": "b2", "fields": {"taxparcelid": "P2"}},
		{"recordid": "b3"},
		{"recordid": "b4", "fields": {}}
	]`
	taxesJSON = `[
		{"fields": {"taxparcelid": "P1", "fiscalyear": "2021", "taxamount": 500.0}},
		{"fields": {"taxparcelid": "P2", "fiscalyear": "2021"}}
	]`
	locationsJSON = `[
		{"fields": {"taxparcelid": "P1", "latitude": 35.99, "longitude": -78.9}}
	]`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testFiles(t *testing.T) Files {
	t.Helper()
	dir := t.TempDir()
	return Files{
		Buildings: writeFile(t, dir, "buildings.json", buildingsJSON),
		Taxes:     writeFile(t, dir, "taxes.json", taxesJSON),
		Locations: writeFile(t, dir, "locations.json", locationsJSON),
		Logger:    slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}
}

func TestFilesLoad(t *testing.T) {
	ds, err := testFiles(t).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Buildings, 4)
	b := ds.Buildings[0]
	assert.Equal(t, "b1", b.RecordID)
	require.NotNil(t, b.Fields)
	assert.Equal(t, "P1", *b.Fields.TaxParcelID)
	assert.Equal(t, int64(1000), *b.Fields.LotSqFeet)
	assert.Equal(t, "1 Main St", *b.Fields.Address)

	assert.Nil(t, ds.Buildings[1].Fields.LotSqFeet)
	assert.Nil(t, ds.Buildings[2].Fields, "missing field-set should stay nil")
	require.NotNil(t, ds.Buildings[3].Fields)
	assert.Nil(t, ds.Buildings[3].Fields.TaxParcelID)

	require.Len(t, ds.Taxes, 2)
	assert.Equal(t, 500.0, *ds.Taxes[0].Fields.TaxAmount)
	assert.Nil(t, ds.Taxes[1].Fields.TaxAmount)

	require.Len(t, ds.Locations, 1)
	assert.Equal(t, -78.9, *ds.Locations[0].Fields.Longitude)
}

func TestFilesLoadMissingFile(t *testing.T) {
	f := testFiles(t)
	f.Taxes = filepath.Join(t.TempDir(), "nope.json")

	_, err := f.Load(context.Background())
	require.Error(t, err)

	var openErr *OpenError
	require.True(t, errors.As(err, &openErr), "expected OpenError, got %T", err)
	assert.Equal(t, "taxes", openErr.Dataset)
	assert.Equal(t, f.Taxes, openErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFilesLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `this is not json`},
		{"truncated", `[{"fields": {"taxparcelid": "P1"`},
		{"wrong type", `[{"fields": {"taxparcelid": "P1", "lotsqfeet": "big"}}]`},
		{"object not array", `{"fields": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFiles(t)
			f.Buildings = writeFile(t, t.TempDir(), "bad.json", tt.content)

			_, err := f.Load(context.Background())
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
			assert.Equal(t, "buildings", parseErr.Dataset)
		})
	}
}

func TestFilesLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testFiles(t).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, "opening taxes dataset t.json: boom", (&OpenError{Dataset: "taxes", Path: "t.json", Err: cause}).Error())
	assert.Equal(t, "parsing taxes dataset t.json: boom", (&ParseError{Dataset: "taxes", Path: "t.json", Err: cause}).Error())
}
