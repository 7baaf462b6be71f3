package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"worldranks/internal/countries/models"
	"worldranks/pkg/platform/circuit"
	"worldranks/pkg/platform/sentinel"
)

type ClientSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	hits    atomic.Int32
	client  *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.hits.Store(0)
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.handler(w, r)
	}))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("test",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	s.client = New(s.server.URL+"/", WithBreaker(breaker), WithTimeout(time.Second))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestRequestPaths() {
	var got []string
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.RequestURI())
		_, _ = w.Write([]byte(`[]`))
	}
	ctx := context.Background()

	_, err := s.client.ListAll(ctx)
	s.Require().NoError(err)
	_, err = s.client.Detail(ctx, models.MustCCA3("ESP"))
	s.Require().NoError(err)
	_, err = s.client.Neighbours(ctx, []models.CCA3{models.MustCCA3("FRA"), models.MustCCA3("PRT"), models.MustCCA3("FRA")})
	s.Require().NoError(err)

	s.Equal([]string{
		"/all?fields=flags,name,population,area,region,subregion,cca3,independent,unMember",
		"/alpha/ESP",
		"/alpha?fields=name,flags,cca3&codes=FRA,PRT",
	}, got)
}

func (s *ClientSuite) TestNeighboursWithoutCodesSkipsRequest() {
	body, err := s.client.Neighbours(context.Background(), nil)
	s.Require().NoError(err)
	s.JSONEq(`[]`, string(body))
	s.Equal(int32(0), s.hits.Load())
}

func (s *ClientSuite) TestStatusMapping() {
	cases := []struct {
		status    int
		category  ErrorCategory
		retryable bool
	}{
		{http.StatusNotFound, ErrorNotFound, false},
		{http.StatusTooManyRequests, ErrorRateLimited, true},
		{http.StatusBadGateway, ErrorProviderOutage, true},
		{http.StatusBadRequest, ErrorBadData, false},
	}
	for _, tc := range cases {
		s.Run(http.StatusText(tc.status), func() {
			s.client.breaker.Reset()
			s.handler = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}
			_, err := s.client.Detail(context.Background(), models.MustCCA3("XXX"))
			s.Require().Error(err)
			s.Equal(tc.category, CategoryOf(err))
			s.Equal(tc.retryable, IsRetryable(err))
		})
	}
}

func (s *ClientSuite) TestNotFoundWrapsSentinel() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}
	_, err := s.client.Detail(context.Background(), models.MustCCA3("ZZZ"))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *ClientSuite) TestBreakerOpensAfterRepeatedOutages() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	ctx := context.Background()

	for range 2 {
		_, err := s.client.ListAll(ctx)
		s.Require().Error(err)
	}
	s.True(s.client.breaker.IsOpen())

	_, err := s.client.ListAll(ctx)
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrUnavailable))
	s.Equal(int32(2), s.hits.Load(), "open circuit must not reach the API")
}

func (s *ClientSuite) TestNotFoundDoesNotTripBreaker() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}
	for range 3 {
		_, _ = s.client.Detail(context.Background(), models.MustCCA3("ZZZ"))
	}
	s.False(s.client.breaker.IsOpen())
}

func (s *ClientSuite) TestContextDeadlineIsTimeout() {
	release := make(chan struct{})
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.client.ListAll(ctx)
	s.Require().Error(err)
	s.Equal(ErrorTimeout, CategoryOf(err))
}

func TestCategoryOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorInternal, CategoryOf(errors.New("boom")))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := NewUpstreamError(ErrorBadData, OpList, "unexpected status 400", nil)
	require.EqualError(t, err, "countries api list [bad_data]: unexpected status 400")
}
