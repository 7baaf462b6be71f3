package query

import (
	"fmt"

	dErrors "worldranks/pkg/domain-errors"
)

// SortKey selects the field the country list is ordered by.
type SortKey string

const (
	SortByName       SortKey = "Name"
	SortByPopulation SortKey = "Population"
	SortByArea       SortKey = "Area"
)

// AllSortKeys returns the sort keys in the order the controls list them.
func AllSortKeys() []SortKey {
	return []SortKey{SortByName, SortByPopulation, SortByArea}
}

// ParseSortKey matches s exactly against the sort key names.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid sort key %q: must be one of Name, Population, Area", s))
	}
	return k, nil
}

func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByPopulation, SortByArea:
		return true
	}
	return false
}

func (k SortKey) String() string {
	return string(k)
}
