package source

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/evcraddock/taxrank/internal/record"
)

// parcelIDAttr is the DBF column holding the tax parcel id.
const parcelIDAttr = "TAXPARCELID"

// readShapefile reads location records from a point shapefile. Each point's
// Y is the latitude and X the longitude. Non-point shapes keep their parcel
// id but carry no coordinates.
func readShapefile(path string) ([]record.Location, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, &OpenError{Dataset: datasetLocations, Path: path, Err: err}
	}
	defer r.Close()

	col := -1
	for i, f := range r.Fields() {
		if strings.EqualFold(strings.TrimSpace(f.String()), parcelIDAttr) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, &ParseError{
			Dataset: datasetLocations,
			Path:    path,
			Err:     fmt.Errorf("no %s attribute", parcelIDAttr),
		}
	}

	var out []record.Location
	for r.Next() {
		n, shape := r.Shape()

		var fields record.LocationFields
		if id := strings.TrimSpace(r.ReadAttribute(n, col)); id != "" {
			fields.TaxParcelID = &id
		}
		if pt, ok := shape.(*shp.Point); ok {
			fields.Latitude = record.Float(pt.Y)
			fields.Longitude = record.Float(pt.X)
		}
		out = append(out, record.Location{Fields: &fields})
	}
	if err := r.Err(); err != nil {
		return nil, &ParseError{Dataset: datasetLocations, Path: path, Err: err}
	}

	return out, nil
}
