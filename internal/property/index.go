package property

import (
	"github.com/evcraddock/taxrank/internal/record"
)

// Index maps parcel ids to properties. It is populated once by BuildIndex
// and read-only afterwards.
type Index struct {
	props map[string]Property
	stats BuildStats
}

// BuildStats describes what BuildIndex did with its input.
type BuildStats struct {
	Buildings          int `json:"buildings"`
	BuildingsSkipped   int `json:"buildings_skipped"`
	Duplicates         int `json:"duplicates"`
	LocationsApplied   int `json:"locations_applied"`
	LocationsDiscarded int `json:"locations_discarded"`
}

// BuildIndex folds building records and then location records into an Index.
// Buildings create (or overwrite) properties; locations only set coordinates
// on properties that already exist.
func BuildIndex(buildings []record.Building, locations []record.Location) *Index {
	idx := &Index{props: make(map[string]Property, len(buildings))}

	for _, b := range buildings {
		if b.Fields == nil || b.Fields.TaxParcelID == nil {
			idx.stats.BuildingsSkipped++
			continue
		}
		id := *b.Fields.TaxParcelID
		if _, ok := idx.props[id]; ok {
			idx.stats.Duplicates++
		}
		idx.props[id] = Property{
			LotSize: b.Fields.LotSqFeet,
			Address: b.Fields.Address,
		}
		idx.stats.Buildings++
	}

	for _, l := range locations {
		if l.Fields == nil || l.Fields.TaxParcelID == nil {
			idx.stats.LocationsDiscarded++
			continue
		}
		p, ok := idx.props[*l.Fields.TaxParcelID]
		if !ok {
			idx.stats.LocationsDiscarded++
			continue
		}
		p.Latitude = l.Fields.Latitude
		p.Longitude = l.Fields.Longitude
		idx.props[*l.Fields.TaxParcelID] = p
		idx.stats.LocationsApplied++
	}

	return idx
}

// Get returns the property for a parcel id.
func (idx *Index) Get(parcelID string) (Property, bool) {
	p, ok := idx.props[parcelID]
	return p, ok
}

// Len returns the number of indexed parcels.
func (idx *Index) Len() int {
	return len(idx.props)
}

// Stats returns counters gathered while building the index.
func (idx *Index) Stats() BuildStats {
	return idx.stats
}
