// Package tax joins tax payments to parcels and ranks them by tax paid per
// square foot of lot.
package tax

import (
	"encoding/json"
	"fmt"
	"math"
)

// MinLotSize is the smallest lot, in square feet, used as a ratio denominator.
const MinLotSize = 10

// RatioKind tags the outcome of ComputeRatio.
type RatioKind int

const (
	RatioAmount RatioKind = iota
	RatioInvalidLotSize
	RatioZeroTaxPaid
)

// String returns the kind's machine name.
func (k RatioKind) String() string {
	switch k {
	case RatioAmount:
		return "amount"
	case RatioInvalidLotSize:
		return "invalid_lot_size"
	case RatioZeroTaxPaid:
		return "zero_tax_paid"
	}
	return fmt.Sprintf("RatioKind(%d)", int(k))
}

// Ratio is tax paid per square foot. Value is meaningful only when Kind is
// RatioAmount.
type Ratio struct {
	Kind  RatioKind
	Value float64
}

// ComputeRatio derives the tax-per-sqft ratio for a payment on a lot.
func ComputeRatio(amount float64, lotSize int64) Ratio {
	if lotSize < MinLotSize {
		return Ratio{Kind: RatioInvalidLotSize}
	}
	if amount <= 0 {
		return Ratio{Kind: RatioZeroTaxPaid}
	}
	return Ratio{Kind: RatioAmount, Value: amount / float64(lotSize)}
}

// Amount returns the ratio value and true if the ratio is an amount.
func (r Ratio) Amount() (float64, bool) {
	if r.Kind != RatioAmount {
		return 0, false
	}
	return r.Value, true
}

// String formats the ratio for display.
func (r Ratio) String() string {
	switch r.Kind {
	case RatioAmount:
		return fmt.Sprintf("$ %.2f / sqft", r.Value)
	case RatioInvalidLotSize:
		return "Invalid Lot"
	case RatioZeroTaxPaid:
		return "$0"
	}
	return r.Kind.String()
}

// MarshalJSON encodes the ratio as {"kind": ..., "value": ...}, omitting the
// value for non-amount outcomes. A NaN or infinite amount is written as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind    string          `json:"kind"`
		Value   json.RawMessage `json:"value,omitempty"`
		Display string          `json:"display"`
	}{Kind: r.Kind.String(), Display: r.String()}
	if v, ok := r.Amount(); ok {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out.Value = json.RawMessage("null")
		} else {
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			out.Value = b
		}
	}
	return json.Marshal(out)
}
