package tax

import (
	"github.com/evcraddock/taxrank/internal/property"
	"github.com/evcraddock/taxrank/internal/record"
)

// Record is one tax assessment joined with the lot size of its parcel.
type Record struct {
	ParcelID  string  `json:"parcel_id"`
	Year      string  `json:"year"`
	TaxesPaid float64 `json:"taxes_paid"`
	LotSize   int64   `json:"lot_size"`
	Ratio     Ratio   `json:"ratio"`
}

// Assemble joins tax payments against the property index. A payment is kept
// only when its parcel id, year and amount are present and the parcel is
// indexed with a known lot size. Input order is preserved.
func Assemble(taxes []record.Tax, idx *property.Index) []Record {
	var out []Record
	for _, t := range taxes {
		f := t.Fields
		if f == nil || f.TaxParcelID == nil || f.FiscalYear == nil || f.TaxAmount == nil {
			continue
		}
		p, ok := idx.Get(*f.TaxParcelID)
		if !ok || p.LotSize == nil {
			continue
		}
		out = append(out, Record{
			ParcelID:  *f.TaxParcelID,
			Year:      *f.FiscalYear,
			TaxesPaid: *f.TaxAmount,
			LotSize:   *p.LotSize,
			Ratio:     ComputeRatio(*f.TaxAmount, *p.LotSize),
		})
	}
	return out
}
