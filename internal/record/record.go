// Package record defines the raw building, tax and location records supplied
// by the open-data exports. Every field is optional: a nil pointer means the
// value is unknown, not that the record is malformed.
package record

// Envelope is one exported row. Fields is nil when the export carried no
// field-set for the row.
type Envelope[F any] struct {
	RecordID string `json:"recordid,omitempty"`
	Fields   *F     `json:"fields,omitempty"`
}

// BuildingFields holds the recognized keys of a building record.
type BuildingFields struct {
	TaxParcelID *string `json:"taxparcelid,omitempty"`
	LotSqFeet   *int64  `json:"lotsqfeet,omitempty"`
	Address     *string `json:"streetaddressformatted,omitempty"`
}

// TaxFields holds the recognized keys of a tax payment record.
type TaxFields struct {
	TaxParcelID *string  `json:"taxparcelid,omitempty"`
	FiscalYear  *string  `json:"fiscalyear,omitempty"`
	TaxAmount   *float64 `json:"taxamount,omitempty"`
}

// LocationFields holds the recognized keys of a GPS location record.
type LocationFields struct {
	TaxParcelID *string  `json:"taxparcelid,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type (
	Building = Envelope[BuildingFields]
	Tax      = Envelope[TaxFields]
	Location = Envelope[LocationFields]
)

// String returns a pointer to s. Used when building records by hand.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int64) *int64 { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
