// Package browse holds the country list's query state and keeps the derived
// view (sorted, filtered and paged records) consistent with it.
//
// Every mutation recomputes synchronously in dependency order:
//
//	raw, sort key          -> Sort
//	sorted, filter fields  -> Filter
//	filtered changed       -> reset to page 0
//	filtered, page         -> Paginate
//
// Stages whose inputs did not change are skipped. A Store is not safe for
// concurrent use; callers serialise access to it.
package browse

import (
	"log/slog"
	"slices"

	"worldranks/internal/countries/models"
	"worldranks/internal/countries/pipeline"
	"worldranks/internal/countries/query"
)

// Stats counts recomputations since the Store was created.
type Stats struct {
	Ingests    int
	Sorts      int
	Filters    int
	PageResets int
}

// View is an immutable snapshot of the derived state.
type View struct {
	VisibleSlice []models.CountryOverview
	MatchCount   int
	TotalPages   int
	CurrentPage  int
	PageSize     int
	Query        query.QueryState
	// Loaded is false until the first Ingest.
	Loaded   bool
	RawCount int
}

// Store owns the query state and the raw collection.
type Store struct {
	pageSize int
	logger   *slog.Logger

	state  query.QueryState
	raw    []models.CountryOverview
	rawRev uint64
	loaded bool

	sorted       []models.CountryOverview
	sortedRev    uint64
	sortedForRaw uint64
	sortedForKey query.SortKey
	hasSorted    bool

	filtered        []models.CountryOverview
	filteredForSort uint64
	filteredText    string
	filteredRegions query.RegionSet
	filteredStatus  query.StatusFlags
	hasFiltered     bool

	page  pipeline.Page
	stats Stats
}

// Option configures a Store.
type Option func(*Store)

// WithPageSize overrides the default page size of 15. Values below 1 are
// ignored.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store with the default query state and no records.
func New(opts ...Option) *Store {
	s := &Store{
		pageSize: pipeline.DefaultPageSize,
		logger:   slog.New(slog.DiscardHandler),
		state:    query.DefaultQueryState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute(false)
	s.stats = Stats{}
	return s
}

// Ingest replaces the raw collection. It always returns to the first page.
func (s *Store) Ingest(raw []models.CountryOverview) {
	s.raw = slices.Clone(raw)
	s.rawRev++
	s.loaded = true
	s.stats.Ingests++
	s.recompute(true)
}

// SetSearchText sets the free-text filter.
func (s *Store) SetSearchText(text string) {
	if s.state.SearchText == text {
		return
	}
	s.state.SearchText = text
	s.recompute(false)
}

// SetSortKey changes the ordering of the list.
func (s *Store) SetSortKey(key query.SortKey) {
	if s.state.SortKey == key || !key.IsValid() {
		return
	}
	s.state.SortKey = key
	s.recompute(false)
}

// ToggleRegion adds region to the region filter, or removes it if present.
func (s *Store) ToggleRegion(region models.Region) {
	if !region.IsValid() {
		return
	}
	s.state.Regions.Toggle(region)
	s.recompute(false)
}

// SetStatusFlag sets one of the status filters.
func (s *Store) SetStatusFlag(status query.Status, value bool) {
	next := s.state.Status.With(status, value)
	if next == s.state.Status {
		return
	}
	s.state.Status = next
	s.recompute(false)
}

// GoToPage moves to page, clamped into the valid range. It never resets
// the query fields.
func (s *Store) GoToPage(page int) {
	s.state.CurrentPage = page
	s.paginate()
}

// Reset restores the default query state and keeps the raw collection.
func (s *Store) Reset() {
	s.state = query.DefaultQueryState()
	s.recompute(true)
}

// View returns the current derived state. It has no side effects.
func (s *Store) View() View {
	return View{
		VisibleSlice: slices.Clone(s.page.Items),
		MatchCount:   s.page.MatchCount,
		TotalPages:   s.page.TotalPages,
		CurrentPage:  s.page.CurrentPage,
		PageSize:     s.pageSize,
		Query:        s.state.Clone(),
		Loaded:       s.loaded,
		RawCount:     len(s.raw),
	}
}

// Sorted returns a copy of the sorted collection.
func (s *Store) Sorted() []models.CountryOverview {
	return slices.Clone(s.sorted)
}

// Filtered returns a copy of the filtered collection.
func (s *Store) Filtered() []models.CountryOverview {
	return slices.Clone(s.filtered)
}

// Query returns a copy of the query state.
func (s *Store) Query() query.QueryState {
	return s.state.Clone()
}

func (s *Store) Stats() Stats {
	return s.stats
}

func (s *Store) recompute(forceReset bool) {
	s.sort()
	changed := s.filter()
	if changed || forceReset {
		if s.state.CurrentPage != 0 {
			s.logger.Debug("page reset", "from_page", s.state.CurrentPage, "matches", len(s.filtered))
		}
		s.state.CurrentPage = 0
		s.stats.PageResets++
	}
	s.paginate()
}

func (s *Store) sort() {
	if s.hasSorted && s.sortedForRaw == s.rawRev && s.sortedForKey == s.state.SortKey {
		return
	}
	s.sorted = pipeline.Sort(s.raw, s.state.SortKey)
	s.sortedRev++
	s.sortedForRaw = s.rawRev
	s.sortedForKey = s.state.SortKey
	s.hasSorted = true
	s.stats.Sorts++
}

// filter reruns the Filter stage if its inputs moved and reports whether
// the filtered collection's content changed.
func (s *Store) filter() bool {
	if s.hasFiltered &&
		s.filteredForSort == s.sortedRev &&
		s.filteredText == s.state.SearchText &&
		s.filteredRegions.Equal(s.state.Regions) &&
		s.filteredStatus == s.state.Status {
		return false
	}

	next := pipeline.Filter(s.sorted, s.state.Queries())
	changed := !s.hasFiltered || !slices.Equal(next, s.filtered)

	s.filtered = next
	s.filteredForSort = s.sortedRev
	s.filteredText = s.state.SearchText
	s.filteredRegions = s.state.Regions.Clone()
	s.filteredStatus = s.state.Status
	s.hasFiltered = true
	s.stats.Filters++
	return changed
}

func (s *Store) paginate() {
	s.page = pipeline.Paginate(s.filtered, s.state.CurrentPage, s.pageSize)
	s.state.CurrentPage = s.page.CurrentPage
}
