package tax

import (
	"cmp"
	"slices"
)

// Rank returns at most limit records for targetYear, highest ratio first.
// Equal ratios keep their input order and NaN ratios sort last. Records whose
// ratio is not an amount rank below every amount.
func Rank(records []Record, targetYear string, limit int) []Record {
	if limit <= 0 {
		return []Record{}
	}

	selected := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Year == targetYear {
			selected = append(selected, r)
		}
	}

	// cmp.Compare orders NaN before every number, so comparing b to a
	// puts NaN at the end of a descending sort.
	slices.SortStableFunc(selected, func(a, b Record) int {
		av, aok := a.Ratio.Amount()
		bv, bok := b.Ratio.Amount()
		if aok != bok {
			if aok {
				return -1
			}
			return 1
		}
		return cmp.Compare(bv, av)
	})

	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}
