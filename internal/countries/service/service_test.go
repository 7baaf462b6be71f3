package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Upstream,PayloadCache

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"worldranks/internal/countries/cache"
	"worldranks/internal/countries/client"
	"worldranks/internal/countries/metrics"
	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
	"worldranks/internal/countries/service/mocks"
	"worldranks/internal/countries/store/session"
	id "worldranks/pkg/domain"
	dErrors "worldranks/pkg/domain-errors"
	"worldranks/pkg/platform/sentinel"
)

const listPayload = `[
 {"name":{"common":"Norway","official":"Kingdom of Norway"},"cca3":"NOR","independent":true,"unMember":true,
  "region":"Europe","subregion":"Northern Europe","area":323802,"population":5379475,"flags":{"png":"","svg":"no.svg"}},
 {"name":{"common":"Japan","official":"Japan"},"cca3":"JPN","independent":true,"unMember":true,
  "region":"Asia","subregion":"Eastern Asia","area":377930,"population":125836021,"flags":{"png":"","svg":"jp.svg"}},
 {"name":{"common":"Greenland","official":"Kalaallit Nunaat"},"cca3":"GRL","independent":false,"unMember":false,
  "region":"Americas","subregion":"North America","area":2166086,"population":56367,"flags":{"png":"","svg":"gl.svg"}},
 {"name":{"common":"Atlantis","official":"Atlantis"},"cca3":"ATL","independent":true,"unMember":false,
  "region":"Submerged","subregion":"","area":1,"population":1,"flags":{"png":"","svg":""}}
]`

const refreshedPayload = `[
 {"name":{"common":"Norway","official":"Kingdom of Norway"},"cca3":"NOR","independent":true,"unMember":true,
  "region":"Europe","subregion":"Northern Europe","area":323802,"population":5379475,"flags":{"png":"","svg":"no.svg"}},
 {"name":{"common":"Japan","official":"Japan"},"cca3":"JPN","independent":true,"unMember":true,
  "region":"Asia","subregion":"Eastern Asia","area":377930,"population":125836021,"flags":{"png":"","svg":"jp.svg"}},
 {"name":{"common":"Greenland","official":"Kalaallit Nunaat"},"cca3":"GRL","independent":false,"unMember":false,
  "region":"Americas","subregion":"North America","area":2166086,"population":56367,"flags":{"png":"","svg":"gl.svg"}},
 {"name":{"common":"Fiji","official":"Republic of Fiji"},"cca3":"FJI","independent":true,"unMember":true,
  "region":"Oceania","subregion":"Melanesia","area":18272,"population":896444,"flags":{"png":"","svg":"fj.svg"}}
]`

const spainPayload = `[{"name":{"common":"Spain","official":"Kingdom of Spain"},"capital":["Madrid"],
 "region":"Europe","subregion":"Southern Europe","borders":["FRA","PRT"],"area":505992,"population":47351567,
 "flags":{"png":"","svg":"es.svg"}}]`

const icelandPayload = `[{"name":{"common":"Iceland","official":"Iceland"},"capital":["Reykjavik"],
 "region":"Europe","subregion":"Northern Europe","area":103000,"population":366425,"flags":{"png":"","svg":"is.svg"}}]`

const neighboursPayload = `[
 {"name":{"common":"France","official":"French Republic"},"flags":{"png":"","svg":"fr.svg"},"cca3":"FRA"},
 {"name":{"common":"Portugal","official":"Portuguese Republic"},"flags":{"png":"","svg":"pt.svg"},"cca3":"PRT"}
]`

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	upstream *mocks.MockUpstream
	cache    *mocks.MockPayloadCache
	sessions *session.InMemorySessionStore
	metrics  *metrics.Metrics
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.upstream = mocks.NewMockUpstream(ctrl)
	s.cache = mocks.NewMockPayloadCache(ctrl)
	s.sessions = session.New()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = New(s.upstream, s.cache, s.sessions, WithMetrics(s.metrics), WithPageSize(2))
}

func (s *ServiceSuite) expectCachedList(payload string) {
	s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return([]byte(payload), nil)
}

func (s *ServiceSuite) newSession() id.SessionID {
	s.expectCachedList(listPayload)
	res, err := s.service.CreateSession(s.ctx)
	s.Require().NoError(err)
	return res.SessionID
}

func (s *ServiceSuite) TestCreateSession() {
	s.Run("cache miss fetches, ingests and stores the payload", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return(nil, sentinel.ErrNotFound)
		s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(listPayload), nil)
		s.cache.EXPECT().Set(gomock.Any(), cache.ListKey(), []byte(listPayload)).Return(nil)

		res, err := s.service.CreateSession(s.ctx)
		s.Require().NoError(err)
		s.False(res.SessionID.IsNil())
		s.True(res.View.Loaded)
		s.Equal(3, res.View.MatchCount)
		s.Equal(2, res.View.TotalPages)
		s.Require().Len(res.Warnings, 1)
		s.Equal("region", res.Warnings[0].Field)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.IngestWarnings.WithLabelValues("region")))
	})

	s.Run("cache hit does not call the API", func() {
		s.expectCachedList(listPayload)

		res, err := s.service.CreateSession(s.ctx)
		s.Require().NoError(err)
		s.Equal(3, res.View.MatchCount)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))
	})

	s.Run("expired entry is refetched", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return(nil, sentinel.ErrExpired)
		s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(listPayload), nil)
		s.cache.EXPECT().Set(gomock.Any(), cache.ListKey(), gomock.Any()).Return(nil)

		_, err := s.service.CreateSession(s.ctx)
		s.Require().NoError(err)
	})

	s.Run("undecodable cache entry is dropped and refetched", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return([]byte(`{"oops":true}`), nil)
		s.cache.EXPECT().Delete(gomock.Any(), cache.ListKey()).Return(nil)
		s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(listPayload), nil)
		s.cache.EXPECT().Set(gomock.Any(), cache.ListKey(), gomock.Any()).Return(nil)

		res, err := s.service.CreateSession(s.ctx)
		s.Require().NoError(err)
		s.Equal(3, res.View.MatchCount)
	})

	s.Run("cache failures do not fail the request", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return(nil, errors.New("connection refused"))
		s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(listPayload), nil)
		s.cache.EXPECT().Set(gomock.Any(), cache.ListKey(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := s.service.CreateSession(s.ctx)
		s.Require().NoError(err)
	})

	s.Run("open circuit is unavailable", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return(nil, sentinel.ErrNotFound)
		s.upstream.EXPECT().ListAll(gomock.Any()).
			Return(nil, client.NewUpstreamError(client.ErrorProviderOutage, client.OpList, "circuit open", sentinel.ErrUnavailable))

		_, err := s.service.CreateSession(s.ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("non-array payload is bad data and not cached", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.ListKey()).Return(nil, sentinel.ErrNotFound)
		s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(`{"status":500}`), nil)

		_, err := s.service.CreateSession(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeBadData))
	})
}

func (s *ServiceSuite) TestSessionMutations() {
	sid := s.newSession()

	view, err := s.service.View(s.ctx, sid)
	s.Require().NoError(err)
	s.Equal(query.SortByPopulation, view.Query.SortKey)
	s.Equal("Greenland", view.VisibleSlice[0].Name.Common)

	view, err = s.service.GoToPage(s.ctx, sid, 1)
	s.Require().NoError(err)
	s.Equal(1, view.CurrentPage)
	s.Equal("Japan", view.VisibleSlice[0].Name.Common)

	view, err = s.service.SetSearchText(s.ctx, sid, "EUROPE")
	s.Require().NoError(err)
	s.Equal(0, view.CurrentPage)
	s.Equal(1, view.MatchCount)
	s.Equal("Norway", view.VisibleSlice[0].Name.Common)

	view, err = s.service.SetSearchText(s.ctx, sid, "")
	s.Require().NoError(err)
	view, err = s.service.SetStatusFlag(s.ctx, sid, query.StatusIndependent, true)
	s.Require().NoError(err)
	s.Equal(2, view.MatchCount)

	view, err = s.service.ToggleRegion(s.ctx, sid, models.RegionAsia)
	s.Require().NoError(err)
	s.Equal(1, view.MatchCount)
	s.Equal("JPN", view.VisibleSlice[0].CCA3.String())

	view, err = s.service.SetSortKey(s.ctx, sid, query.SortByName)
	s.Require().NoError(err)
	s.Equal(query.SortByName, view.Query.SortKey)

	view, err = s.service.Reset(s.ctx, sid)
	s.Require().NoError(err)
	s.Equal(3, view.MatchCount)
	s.Equal(query.DefaultQueryState().SortKey, view.Query.SortKey)
	s.Zero(view.Query.Regions.Len())

	s.Positive(testutil.ToFloat64(s.metrics.Recomputations.WithLabelValues("filter")))
	s.Positive(testutil.ToFloat64(s.metrics.PageResets))
}

func (s *ServiceSuite) TestUnknownSession() {
	_, err := s.service.View(s.ctx, id.NewSessionID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.service.EndSession(s.ctx, id.NewSessionID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestEndSession() {
	sid := s.newSession()
	s.Require().NoError(s.service.EndSession(s.ctx, sid))

	_, err := s.service.SetSearchText(s.ctx, sid, "x")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal(0.0, testutil.ToFloat64(s.metrics.ActiveSessions))
}

func (s *ServiceSuite) TestRefreshBypassesCacheAndResetsPage() {
	sid := s.newSession()
	_, err := s.service.GoToPage(s.ctx, sid, 1)
	s.Require().NoError(err)

	s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(refreshedPayload), nil)
	s.cache.EXPECT().Set(gomock.Any(), cache.ListKey(), []byte(refreshedPayload)).Return(nil)

	res, err := s.service.Refresh(s.ctx, sid)
	s.Require().NoError(err)
	s.Equal(4, res.View.MatchCount)
	s.Equal(0, res.View.CurrentPage)
	s.Empty(res.Warnings)
}

func (s *ServiceSuite) TestRefreshAll() {
	first := s.newSession()
	second := s.newSession()

	s.upstream.EXPECT().ListAll(gomock.Any()).Return([]byte(refreshedPayload), nil)
	s.cache.EXPECT().Set(gomock.Any(), cache.ListKey(), gomock.Any()).Return(nil)

	n, err := s.service.RefreshAll(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)

	for _, sid := range []id.SessionID{first, second} {
		view, err := s.service.View(s.ctx, sid)
		s.Require().NoError(err)
		s.Equal(4, view.MatchCount)
	}
	s.Equal(2.0, testutil.ToFloat64(s.metrics.ActiveSessions))
}

func (s *ServiceSuite) TestRefreshAllKeepsSessionsOnFailure() {
	sid := s.newSession()
	s.upstream.EXPECT().ListAll(gomock.Any()).
		Return(nil, client.NewUpstreamError(client.ErrorTimeout, client.OpList, "request timed out", context.DeadlineExceeded))

	_, err := s.service.RefreshAll(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))

	view, err := s.service.View(s.ctx, sid)
	s.Require().NoError(err)
	s.Equal(3, view.MatchCount)
}

func (s *ServiceSuite) TestCountryDetail() {
	spain := models.MustCCA3("ESP")
	borders := []models.CCA3{models.MustCCA3("FRA"), models.MustCCA3("PRT")}

	s.Run("resolves neighbours in one call", func() {
		s.cache.EXPECT().Get(gomock.Any(), cache.DetailKey(spain)).Return(nil, sentinel.ErrNotFound)
		s.upstream.EXPECT().Detail(gomock.Any(), spain).Return([]byte(spainPayload), nil)
		s.cache.EXPECT().Set(gomock.Any(), cache.DetailKey(spain), gomock.Any()).Return(nil)
		s.cache.EXPECT().Get(gomock.Any(), cache.NeighboursKey(borders)).Return(nil, sentinel.ErrNotFound)
		s.upstream.EXPECT().Neighbours(gomock.Any(), borders).Return([]byte(neighboursPayload), nil).Times(1)
		s.cache.EXPECT().Set(gomock.Any(), cache.NeighboursKey(borders), gomock.Any()).Return(nil)

		detail, err := s.service.CountryDetail(s.ctx, spain)
		s.Require().NoError(err)
		s.Equal("Spain", detail.Country.Name.Common)
		s.Require().Len(detail.Neighbours, 2)
		s.Equal("Portugal", detail.Neighbours[1].Name.Common)
	})

	s.Run("no borders skips the neighbour call", func() {
		iceland := models.MustCCA3("ISL")
		s.cache.EXPECT().Get(gomock.Any(), cache.DetailKey(iceland)).Return([]byte(icelandPayload), nil)

		detail, err := s.service.CountryDetail(s.ctx, iceland)
		s.Require().NoError(err)
		s.NotNil(detail.Neighbours)
		s.Empty(detail.Neighbours)
	})

	s.Run("unknown country is not found", func() {
		unknown := models.MustCCA3("ZZZ")
		s.cache.EXPECT().Get(gomock.Any(), cache.DetailKey(unknown)).Return(nil, sentinel.ErrNotFound)
		s.upstream.EXPECT().Detail(gomock.Any(), unknown).
			Return(nil, client.NewUpstreamError(client.ErrorNotFound, client.OpDetail, "not found", sentinel.ErrNotFound))

		_, err := s.service.CountryDetail(s.ctx, unknown)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
