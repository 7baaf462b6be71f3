package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"worldranks/internal/countries/browse"
	"worldranks/internal/countries/cache"
	"worldranks/internal/countries/client"
	"worldranks/internal/countries/ingest"
	"worldranks/internal/countries/metrics"
	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
	"worldranks/internal/countries/store/session"
	id "worldranks/pkg/domain"
	dErrors "worldranks/pkg/domain-errors"
	"worldranks/pkg/platform/sentinel"
)

// Upstream is the remote country API.
type Upstream interface {
	ListAll(ctx context.Context) ([]byte, error)
	Detail(ctx context.Context, code models.CCA3) ([]byte, error)
	Neighbours(ctx context.Context, codes []models.CCA3) ([]byte, error)
}

// PayloadCache stores raw upstream payloads by key.
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

type SessionStore interface {
	Create(ctx context.Context, st *browse.Store) (*session.Session, error)
	FindByID(ctx context.Context, sessionID id.SessionID) (*session.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
	All(ctx context.Context) []*session.Session
	Sweep(ctx context.Context) int
	Len() int
}

// BrowseResult is returned when a session is created or its list refreshed.
type BrowseResult struct {
	SessionID id.SessionID
	View      browse.View
	Warnings  []ingest.Warning
}

// Service orchestrates the country list, browse sessions and detail lookups.
type Service struct {
	upstream       Upstream
	cache          PayloadCache
	sessions       SessionStore
	pageSize       int
	refreshWorkers int
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPageSize sets the page size of new browse sessions.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithRefreshWorkers bounds how many sessions RefreshAll ingests at once.
func WithRefreshWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.refreshWorkers = n
		}
	}
}

// New constructs a Service.
func New(upstream Upstream, payloads PayloadCache, sessions SessionStore, opts ...Option) *Service {
	s := &Service{
		upstream:       upstream,
		cache:          payloads,
		sessions:       sessions,
		pageSize:       15,
		refreshWorkers: 8,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession loads the country list (cached when possible) into a new
// browse session.
func (s *Service) CreateSession(ctx context.Context) (*BrowseResult, error) {
	res, err := s.loadCountries(ctx, false)
	if err != nil {
		return nil, err
	}

	st := browse.New(browse.WithPageSize(s.pageSize), browse.WithLogger(s.logger))
	st.Ingest(res.Countries)

	sess, err := s.sessions.Create(ctx, st)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create browse session")
	}
	s.metrics.SetActiveSessions(s.sessions.Len())
	s.logger.InfoContext(ctx, "browse session created",
		"session_id", sess.ID.String(),
		"countries", len(res.Countries),
		"skipped", len(res.Warnings),
	)

	var view browse.View
	sess.Do(func(st *browse.Store) { view = st.View() })
	return &BrowseResult{SessionID: sess.ID, View: view, Warnings: res.Warnings}, nil
}

// View returns the session's current view without changing it.
func (s *Service) View(ctx context.Context, sessionID id.SessionID) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(*browse.Store) {})
}

func (s *Service) SetSearchText(ctx context.Context, sessionID id.SessionID, text string) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(st *browse.Store) { st.SetSearchText(text) })
}

func (s *Service) SetSortKey(ctx context.Context, sessionID id.SessionID, key query.SortKey) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(st *browse.Store) { st.SetSortKey(key) })
}

func (s *Service) ToggleRegion(ctx context.Context, sessionID id.SessionID, region models.Region) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(st *browse.Store) { st.ToggleRegion(region) })
}

func (s *Service) SetStatusFlag(ctx context.Context, sessionID id.SessionID, status query.Status, value bool) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(st *browse.Store) { st.SetStatusFlag(status, value) })
}

func (s *Service) GoToPage(ctx context.Context, sessionID id.SessionID, page int) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(st *browse.Store) { st.GoToPage(page) })
}

// Reset restores the default query state; the ingested list is kept.
func (s *Service) Reset(ctx context.Context, sessionID id.SessionID) (browse.View, error) {
	return s.mutate(ctx, sessionID, func(st *browse.Store) { st.Reset() })
}

// Refresh re-fetches the list from the API, bypassing the cache, and ingests
// it into the session.
func (s *Service) Refresh(ctx context.Context, sessionID id.SessionID) (*BrowseResult, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res, err := s.loadCountries(ctx, true)
	if err != nil {
		return nil, err
	}
	view := s.apply(sess, func(st *browse.Store) { st.Ingest(res.Countries) })
	return &BrowseResult{SessionID: sess.ID, View: view, Warnings: res.Warnings}, nil
}

func (s *Service) EndSession(ctx context.Context, sessionID id.SessionID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return translateSessionErr(err)
	}
	s.metrics.SetActiveSessions(s.sessions.Len())
	s.logger.InfoContext(ctx, "browse session ended", "session_id", sessionID.String())
	return nil
}

// RefreshAll fetches a fresh list, drops idle sessions and ingests the list
// into every live session. It returns the number of sessions refreshed.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	res, err := s.loadCountries(ctx, true)
	if err != nil {
		return 0, err
	}

	if swept := s.sessions.Sweep(ctx); swept > 0 {
		s.logger.InfoContext(ctx, "expired browse sessions removed", "count", swept)
	}
	sessions := s.sessions.All(ctx)
	s.metrics.SetActiveSessions(len(sessions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.refreshWorkers)
	for _, sess := range sessions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.apply(sess, func(st *browse.Store) { st.Ingest(res.Countries) })
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(sessions), nil
}

// CountryDetail fetches one country and its land neighbours. Neighbours are
// resolved in a single batched call, skipped when there are no borders.
func (s *Service) CountryDetail(ctx context.Context, code models.CCA3) (*models.CountryDetail, error) {
	country, _, err := fetchDecoded(ctx, s, cache.DetailKey(code), false,
		func(ctx context.Context) ([]byte, error) { return s.upstream.Detail(ctx, code) },
		func(payload []byte) (models.Country, error) {
			c, warnings, err := ingest.DecodeCountry(payload)
			s.logWarnings(ctx, warnings)
			return c, err
		},
	)
	if err != nil {
		return nil, err
	}

	detail := &models.CountryDetail{Country: country, Neighbours: []models.NeighbouringCountry{}}
	if !country.HasBorders() {
		return detail, nil
	}

	neighbours, _, err := fetchDecoded(ctx, s, cache.NeighboursKey(country.Borders), false,
		func(ctx context.Context) ([]byte, error) { return s.upstream.Neighbours(ctx, country.Borders) },
		func(payload []byte) ([]models.NeighbouringCountry, error) {
			n, warnings, err := ingest.DecodeNeighbours(payload)
			s.logWarnings(ctx, warnings)
			return n, err
		},
	)
	if err != nil {
		return nil, err
	}
	detail.Neighbours = neighbours
	return detail, nil
}

func (s *Service) loadCountries(ctx context.Context, bypassCache bool) (ingest.Result, error) {
	res, fresh, err := fetchDecoded(ctx, s, cache.ListKey(), bypassCache,
		s.upstream.ListAll,
		ingest.DecodeOverviews,
	)
	if err != nil {
		return ingest.Result{}, err
	}
	if fresh {
		s.logWarnings(ctx, res.Warnings)
		s.logger.InfoContext(ctx, "country list fetched",
			"countries", len(res.Countries),
			"skipped", len(res.Warnings),
		)
	}
	return res, nil
}

// fetchDecoded serves key from the payload cache, falling back to fetch. A
// fetched payload is cached only after it decodes. fresh reports whether the
// upstream API was called.
func fetchDecoded[T any](
	ctx context.Context,
	s *Service,
	key string,
	bypassCache bool,
	fetch func(context.Context) ([]byte, error),
	decode func([]byte) (T, error),
) (value T, fresh bool, err error) {
	if !bypassCache {
		payload, cerr := s.cache.Get(ctx, key)
		switch {
		case cerr == nil:
			v, derr := decode(payload)
			if derr == nil {
				s.metrics.IncrementCacheHit()
				return v, false, nil
			}
			s.logger.WarnContext(ctx, "discarding undecodable cached payload", "key", key, "error", derr)
			_ = s.cache.Delete(ctx, key)
		case errors.Is(cerr, sentinel.ErrNotFound), errors.Is(cerr, sentinel.ErrExpired):
		default:
			s.logger.WarnContext(ctx, "payload cache read failed", "key", key, "error", cerr)
		}
		s.metrics.IncrementCacheMiss()
	}

	payload, err := fetch(ctx)
	if err != nil {
		return value, false, translateUpstream(err)
	}
	value, err = decode(payload)
	if err != nil {
		return value, false, err
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.WarnContext(ctx, "payload cache write failed", "key", key, "error", err)
	}
	return value, true, nil
}

func (s *Service) mutate(ctx context.Context, sessionID id.SessionID, fn func(*browse.Store)) (browse.View, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return browse.View{}, err
	}
	return s.apply(sess, fn), nil
}

// apply runs fn under the session lock and records the recomputation it
// caused.
func (s *Service) apply(sess *session.Session, fn func(*browse.Store)) browse.View {
	var view browse.View
	sess.Do(func(st *browse.Store) {
		before := st.Stats()
		fn(st)
		after := st.Stats()
		s.metrics.AddRecomputations(
			after.Sorts-before.Sorts,
			after.Filters-before.Filters,
			after.PageResets-before.PageResets,
		)
		view = st.View()
	})
	return view
}

func (s *Service) findSession(ctx context.Context, sessionID id.SessionID) (*session.Session, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, translateSessionErr(err)
	}
	return sess, nil
}

func (s *Service) logWarnings(ctx context.Context, warnings []ingest.Warning) {
	for _, w := range warnings {
		s.metrics.IncrementIngestWarning(w.Field)
		s.logger.WarnContext(ctx, "skipped country record",
			"index", w.Index,
			"cca3", w.CCA3,
			"field", w.Field,
			"raw_value", w.RawValue,
			"error", w.Err,
		)
	}
}

func translateSessionErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "browse session not found")
	case errors.Is(err, sentinel.ErrExpired):
		return dErrors.New(dErrors.CodeNotFound, "browse session expired")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load browse session")
	}
}

func translateUpstream(err error) error {
	switch client.CategoryOf(err) {
	case client.ErrorNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, "country not found")
	case client.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "country API timed out")
	case client.ErrorBadData:
		return dErrors.Wrap(err, dErrors.CodeBadData, "country API returned an unexpected response")
	case client.ErrorProviderOutage, client.ErrorRateLimited:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "country API is unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch countries")
	}
}
