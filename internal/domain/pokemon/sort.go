package pokemon

import (
	"cmp"
	"strings"
)

// SortKey selects catalog ordering.
type SortKey string

const (
	SortIDAsc    SortKey = "id-asc"
	SortIDDesc   SortKey = "id-desc"
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
)

// ParseSortKey falls back to SortIDAsc for empty or unknown values.
func ParseSortKey(raw string) SortKey {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case SortIDAsc, SortIDDesc, SortNameAsc, SortNameDesc:
		return key
	default:
		return SortIDAsc
	}
}

// IsKnownSortKey reports whether raw names one of the supported orderings.
func IsKnownSortKey(raw string) bool {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortIDAsc, SortIDDesc, SortNameAsc, SortNameDesc:
		return true
	default:
		return false
	}
}

// Compare orders a and b by the key. Name orderings break ties by id ascending.
func (k SortKey) Compare(a, b Pokemon) int {
	switch k {
	case SortIDDesc:
		return cmp.Compare(b.ID, a.ID)
	case SortNameAsc:
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	case SortNameDesc:
		if c := cmp.Compare(b.Name, a.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}
