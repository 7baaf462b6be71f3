package pipeline

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
)

func randomQueries(r *rand.Rand) []query.FilterQuery {
	var qs []query.FilterQuery
	needles := []string{"", "land1", "LAND", "sub 2", "europe", "zzz"}
	if r.IntN(2) == 0 {
		qs = append(qs, query.Text(needles[r.IntN(len(needles))]))
	}
	if r.IntN(2) == 0 {
		var set query.RegionSet
		for _, reg := range testRegions {
			if r.IntN(3) == 0 {
				set.Toggle(reg)
			}
		}
		qs = append(qs, query.Regions(set))
	}
	if r.IntN(2) == 0 {
		qs = append(qs, query.Statuses(query.StatusFlags{
			IndependentRequired: r.IntN(2) == 0,
			UNMemberRequired:    r.IntN(2) == 0,
		}))
	}
	return qs
}

func TestFilter_Idempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for range 200 {
		c := randomCollection(r, r.IntN(50))
		q := randomQueries(r)
		once := Filter(c, q)
		assert.Equal(t, once, Filter(once, q))
	}
}

func TestFilter_MonotonicNarrowing(t *testing.T) {
	r := rand.New(rand.NewPCG(13, 17))
	for range 200 {
		c := randomCollection(r, r.IntN(50))
		q := randomQueries(r)
		extra := randomQueries(r)
		if len(extra) == 0 {
			continue
		}
		base := Filter(c, q)
		narrowed := Filter(c, append(append([]query.FilterQuery{}, q...), extra[0]))
		assert.LessOrEqual(t, len(narrowed), len(base))
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(19, 23))
	c := randomCollection(r, 80)
	pos := positions(c)
	out := Filter(c, []query.FilterQuery{query.Statuses(query.StatusFlags{UNMemberRequired: true})})
	for i := 1; i < len(out); i++ {
		require.Less(t, pos[out[i-1].CCA3], pos[out[i].CCA3])
	}
}

func TestFilter_TrivialQueriesKeepEverything(t *testing.T) {
	c := randomCollection(rand.New(rand.NewPCG(29, 31)), 25)
	out := Filter(c, query.DefaultQueryState().Queries())
	assert.Equal(t, c, out)
}

func TestFilter_IndependentRequiredExcludesDependency(t *testing.T) {
	c := []models.CountryOverview{
		{CCA3: models.MustCCA3("GRL"), Name: models.Name{Common: "Greenland"}, Region: models.RegionAmericas, Independent: false, UNMember: true, Population: 56000},
		{CCA3: models.MustCCA3("ISL"), Name: models.Name{Common: "Iceland"}, Region: models.RegionEurope, Independent: true, UNMember: true, Population: 366000},
	}
	state := query.DefaultQueryState()
	state.Status = query.StatusFlags{IndependentRequired: true, UNMemberRequired: false}

	out := Filter(c, state.Queries())
	require.Len(t, out, 1)
	assert.Equal(t, "ISL", out[0].CCA3.String())
}

func TestFilter_ANDAcrossKinds(t *testing.T) {
	c := []models.CountryOverview{
		{CCA3: models.MustCCA3("FRA"), Name: models.Name{Common: "France"}, Region: models.RegionEurope, SubRegion: "Western Europe", Independent: true, UNMember: true},
		{CCA3: models.MustCCA3("GUF"), Name: models.Name{Common: "French Guiana"}, Region: models.RegionAmericas, SubRegion: "South America", Independent: false},
		{CCA3: models.MustCCA3("PYF"), Name: models.Name{Common: "French Polynesia"}, Region: models.RegionOceania, SubRegion: "Polynesia", Independent: false},
	}
	out := Filter(c, []query.FilterQuery{
		query.Text("french"),
		query.Regions(query.NewRegionSet(models.RegionAmericas, models.RegionOceania)),
		query.Statuses(query.StatusFlags{}),
	})
	assert.Equal(t, []string{"French Guiana", "French Polynesia"}, commonNames(out))
}
