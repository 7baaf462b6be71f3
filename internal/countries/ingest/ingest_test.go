package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldranks/internal/countries/models"
	dErrors "worldranks/pkg/domain-errors"
)

const listPayload = `[
  {"flags":{"png":"https://flagcdn.com/w320/no.png","svg":"https://flagcdn.com/no.svg","alt":"Norway"},
   "name":{"common":"Norway","official":"Kingdom of Norway","nativeName":{}},
   "cca3":"NOR","independent":true,"unMember":true,"region":"Europe","subregion":"Northern Europe",
   "area":323802,"population":5379475},
  {"flags":{"png":"","svg":""},"name":{"common":"Bad Region","official":"Bad Region"},
   "cca3":"BRG","independent":true,"unMember":false,"region":"Polar","subregion":"",
   "area":1,"population":1},
  {"flags":{"png":"","svg":""},"name":{"common":"Bad Code","official":"Bad Code"},
   "cca3":"bc","independent":true,"unMember":false,"region":"Asia","subregion":"",
   "area":1,"population":1},
  {"flags":{"png":"","svg":""},"name":{"common":"Negative","official":"Negative"},
   "cca3":"NEG","independent":true,"unMember":false,"region":"Asia","subregion":"",
   "area":-3,"population":1},
  {"name":"not an object"},
  {"flags":{"png":"","svg":"https://flagcdn.com/jp.svg"},"name":{"common":"Japan","official":"Japan"},
   "cca3":"JPN","independent":true,"unMember":true,"region":"Asia","subregion":"Eastern Asia",
   "area":377930,"population":125836021}
]`

func TestDecodeOverviews_SkipsInvalidRecords(t *testing.T) {
	res, err := DecodeOverviews([]byte(listPayload))
	require.NoError(t, err)

	require.Len(t, res.Countries, 2)
	assert.Equal(t, "NOR", res.Countries[0].CCA3.String())
	assert.Equal(t, models.RegionEurope, res.Countries[0].Region)
	assert.Equal(t, "Kingdom of Norway", res.Countries[0].Name.Official)
	assert.Equal(t, int64(5379475), res.Countries[0].Population)
	assert.Equal(t, "https://flagcdn.com/no.svg", res.Countries[0].FlagImageURL())
	assert.Equal(t, "JPN", res.Countries[1].CCA3.String())

	require.Len(t, res.Warnings, 4)
	assert.Equal(t, Warning{Index: 1, CCA3: "BRG", Field: "region", RawValue: "Polar", Err: res.Warnings[0].Err}, res.Warnings[0])
	assert.Equal(t, "cca3", res.Warnings[1].Field)
	assert.Equal(t, "bc", res.Warnings[1].RawValue)
	assert.True(t, dErrors.HasCode(res.Warnings[1].Err, dErrors.CodeInvalidInput))
	assert.Equal(t, "record", res.Warnings[2].Field)
	assert.Equal(t, 3, res.Warnings[2].Index)
	assert.Equal(t, 4, res.Warnings[3].Index)
	assert.Contains(t, res.Warnings[0].String(), "Polar")
}

func TestDecodeOverviews_RejectsNonArray(t *testing.T) {
	_, err := DecodeOverviews([]byte(`{"status":404,"message":"Not Found"}`))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadData))
}

func TestDecodeOverviews_EmptyArray(t *testing.T) {
	res, err := DecodeOverviews([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, res.Countries)
	assert.Empty(t, res.Warnings)
}

func TestDecodeCountry(t *testing.T) {
	payload := `[{"name":{"common":"Spain","official":"Kingdom of Spain"},
	  "currencies":{"EUR":{"name":"Euro","symbol":"€"}},
	  "capital":["Madrid"],"region":"Europe","subregion":"Southern Europe",
	  "languages":{"spa":"Spanish"},"borders":["AND","FRA","GIB","prt","MAR"],
	  "area":505992,"population":47351567,
	  "flags":{"png":"https://flagcdn.com/w320/es.png","svg":"https://flagcdn.com/es.svg"}}]`

	c, warnings, err := DecodeCountry([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "Spain", c.Name.Common)
	assert.Equal(t, "Euro", c.Currencies["EUR"].Name)
	require.NotNil(t, c.SubRegion)
	assert.Equal(t, "Southern Europe", *c.SubRegion)
	assert.Len(t, c.Borders, 4)
	require.Len(t, warnings, 1)
	assert.Equal(t, "prt", warnings[0].RawValue)

	t.Run("empty array is not found", func(t *testing.T) {
		_, _, err := DecodeCountry([]byte(`[]`))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("missing optional fields", func(t *testing.T) {
		c, _, err := DecodeCountry([]byte(`[{"name":{"common":"Antarctica","official":"Antarctica"},"region":"Antarctic","area":14000000,"population":1000,"flags":{"png":"","svg":""}}]`))
		require.NoError(t, err)
		assert.Nil(t, c.SubRegion)
		assert.Nil(t, c.Capital)
		assert.False(t, c.HasBorders())
	})
}

func TestDecodeNeighbours(t *testing.T) {
	payload := `[
	  {"name":{"common":"France","official":"French Republic"},"flags":{"png":"","svg":"https://flagcdn.com/fr.svg"},"cca3":"FRA"},
	  {"name":{"common":"Broken","official":"Broken"},"flags":{"png":"","svg":""},"cca3":"12"}
	]`
	out, warnings, err := DecodeNeighbours([]byte(payload))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.MustCCA3("FRA"), out[0].CCA3)
	require.Len(t, warnings, 1)
	assert.Equal(t, "12", warnings[0].RawValue)
}
