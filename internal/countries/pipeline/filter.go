package pipeline

import (
	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
)

// Filter returns the records of collection that satisfy every query, in
// input order. Trivial queries (empty needle, empty region set, no required
// status) are skipped.
func Filter(collection []models.CountryOverview, queries []query.FilterQuery) []models.CountryOverview {
	matchers := make([]func(models.CountryOverview) bool, 0, len(queries))
	for _, q := range queries {
		if q.IsTrivial() {
			continue
		}
		matchers = append(matchers, q.Matcher())
	}

	out := make([]models.CountryOverview, 0, len(collection))
	for _, c := range collection {
		if matchAll(c, matchers) {
			out = append(out, c)
		}
	}
	return out
}

func matchAll(c models.CountryOverview, matchers []func(models.CountryOverview) bool) bool {
	for _, m := range matchers {
		if !m(c) {
			return false
		}
	}
	return true
}
