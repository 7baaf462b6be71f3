package query

import (
	"slices"

	"worldranks/internal/countries/models"
)

// RegionSet is an unordered set of regions. The zero value is an empty set.
// RegionSet values are not shared: mutating methods are only called on sets
// owned by a single QueryState.
type RegionSet struct {
	m map[models.Region]struct{}
}

// NewRegionSet builds a set from regions, ignoring duplicates.
func NewRegionSet(regions ...models.Region) RegionSet {
	s := RegionSet{}
	for _, r := range regions {
		s.add(r)
	}
	return s
}

func (s *RegionSet) add(r models.Region) {
	if s.m == nil {
		s.m = make(map[models.Region]struct{})
	}
	s.m[r] = struct{}{}
}

// Toggle inserts r if absent and removes it if present.
func (s *RegionSet) Toggle(r models.Region) {
	if s.Contains(r) {
		delete(s.m, r)
		return
	}
	s.add(r)
}

func (s RegionSet) Contains(r models.Region) bool {
	_, ok := s.m[r]
	return ok
}

func (s RegionSet) Len() int {
	return len(s.m)
}

// Sorted returns the members in region declaration order.
func (s RegionSet) Sorted() []models.Region {
	out := make([]models.Region, 0, len(s.m))
	for r := range s.m {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.Region) int {
		return a.Ordinal() - b.Ordinal()
	})
	return out
}

func (s RegionSet) Equal(other RegionSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for r := range s.m {
		if !other.Contains(r) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s RegionSet) Clone() RegionSet {
	return NewRegionSet(s.Sorted()...)
}
