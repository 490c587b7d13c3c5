package tax

// Tally counts assembled records by ratio outcome.
type Tally struct {
	Valid      int `json:"valid"`
	InvalidLot int `json:"invalid_lot"`
	ZeroTax    int `json:"zero_tax"`
}

// Total returns the number of records counted.
func (t Tally) Total() int {
	return t.Valid + t.InvalidLot + t.ZeroTax
}

// Filter keeps the records whose ratio is an amount, in input order, and
// counts the rest by category.
func Filter(records []Record) ([]Record, Tally) {
	var (
		valid []Record
		tally Tally
	)
	for _, r := range records {
		switch r.Ratio.Kind {
		case RatioAmount:
			valid = append(valid, r)
			tally.Valid++
		case RatioInvalidLotSize:
			tally.InvalidLot++
		case RatioZeroTaxPaid:
			tally.ZeroTax++
		}
	}
	return valid, tally
}
