package query

import "worldranks/internal/countries/models"

// QueryState is the full set of user-controlled list parameters.
type QueryState struct {
	SearchText  string
	SortKey     SortKey
	Regions     RegionSet
	Status      StatusFlags
	CurrentPage int
}

// DefaultQueryState is the state of a fresh list: no search, sorted by
// population, no region or status filter, first page.
func DefaultQueryState() QueryState {
	return QueryState{
		SearchText:  "",
		SortKey:     SortByPopulation,
		Regions:     RegionSet{},
		Status:      StatusFlags{},
		CurrentPage: 0,
	}
}

// Queries returns the filter predicates in evaluation order.
func (s QueryState) Queries() []FilterQuery {
	return []FilterQuery{
		Text(s.SearchText),
		Regions(s.Regions),
		Statuses(s.Status),
	}
}

// Clone returns a copy that shares nothing with s.
func (s QueryState) Clone() QueryState {
	s.Regions = s.Regions.Clone()
	return s
}

// SelectedRegions lists the region filter in declaration order.
func (s QueryState) SelectedRegions() []models.Region {
	return s.Regions.Sorted()
}
