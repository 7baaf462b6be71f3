// Package query defines the user-controlled query parameters of the country
// list: the filter predicates, the sort key and the query state that owns them.
package query

import (
	"strings"

	"worldranks/internal/countries/models"
)

// Kind tags a FilterQuery variant.
type Kind int

const (
	KindText Kind = iota + 1
	KindRegion
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindRegion:
		return "region"
	case KindStatus:
		return "status"
	}
	return "unknown"
}

// FilterQuery is one predicate of the AND-composed visibility test. It is a
// closed union: exactly one payload is meaningful, selected by Kind. Build
// values with Text, Regions or Statuses.
type FilterQuery struct {
	kind    Kind
	needle  string
	regions RegionSet
	status  StatusFlags
}

// Text matches records whose common name, region or sub-region contains
// needle, ignoring case.
func Text(needle string) FilterQuery {
	return FilterQuery{kind: KindText, needle: needle}
}

// Regions matches records whose region is in set; an empty set matches all.
func Regions(set RegionSet) FilterQuery {
	return FilterQuery{kind: KindRegion, regions: set.Clone()}
}

// Statuses matches records satisfying every required status flag.
func Statuses(flags StatusFlags) FilterQuery {
	return FilterQuery{kind: KindStatus, status: flags}
}

func (q FilterQuery) Kind() Kind { return q.kind }

// IsTrivial reports whether q accepts every record.
func (q FilterQuery) IsTrivial() bool {
	switch q.kind {
	case KindText:
		return q.needle == ""
	case KindRegion:
		return q.regions.Len() == 0
	case KindStatus:
		return !q.status.IndependentRequired && !q.status.UNMemberRequired
	}
	return false
}

// Matches evaluates the predicate against c.
func (q FilterQuery) Matches(c models.CountryOverview) bool {
	switch q.kind {
	case KindText:
		return matchText(c, strings.ToLower(q.needle))
	case KindRegion:
		return q.regions.Len() == 0 || q.regions.Contains(c.Region)
	case KindStatus:
		return (!q.status.IndependentRequired || c.Independent) &&
			(!q.status.UNMemberRequired || c.UNMember)
	}
	return false
}

// Matcher returns a predicate with per-query work (lower-casing the needle)
// done once, for use over a whole collection.
func (q FilterQuery) Matcher() func(models.CountryOverview) bool {
	if q.IsTrivial() {
		return func(models.CountryOverview) bool { return true }
	}
	if q.kind == KindText {
		needle := strings.ToLower(q.needle)
		return func(c models.CountryOverview) bool { return matchText(c, needle) }
	}
	return q.Matches
}

func matchText(c models.CountryOverview, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(c.Name.Common), lowerNeedle) ||
		strings.Contains(strings.ToLower(c.Region.String()), lowerNeedle) ||
		strings.Contains(strings.ToLower(c.SubRegion), lowerNeedle)
}
