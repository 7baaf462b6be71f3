// Package pipeline holds the pure stages of the country list:
// Sort, then Filter, then Paginate. Every stage returns a new slice and
// leaves its input untouched.
package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
)

// Sort returns collection ordered ascending by key. The sort is stable:
// records that compare equal keep their input order. Names compare byte-wise
// without collation.
func Sort(collection []models.CountryOverview, key query.SortKey) []models.CountryOverview {
	out := slices.Clone(collection)
	slices.SortStableFunc(out, compareBy(key))
	return out
}

func compareBy(key query.SortKey) func(a, b models.CountryOverview) int {
	switch key {
	case query.SortByName:
		return func(a, b models.CountryOverview) int {
			return strings.Compare(a.Name.Common, b.Name.Common)
		}
	case query.SortByArea:
		return func(a, b models.CountryOverview) int {
			return cmp.Compare(a.Area, b.Area)
		}
	default:
		return func(a, b models.CountryOverview) int {
			return cmp.Compare(a.Population, b.Population)
		}
	}
}
