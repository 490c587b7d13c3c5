// Package property builds the parcel index that tax records are joined against.
package property

// Property holds the physical attributes known for one parcel.
// Nil fields are unknown.
type Property struct {
	LotSize   *int64   `json:"lot_size,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// HasLocation returns true if both coordinates are known.
func (p Property) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
