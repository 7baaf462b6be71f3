// Package ingest turns country API payloads into validated models. A record
// that fails validation is skipped and reported as a Warning; the rest of the
// payload is still ingested.
package ingest

import (
	"encoding/json"
	"fmt"

	"worldranks/internal/countries/models"
	dErrors "worldranks/pkg/domain-errors"
)

// Warning reports a skipped record.
type Warning struct {
	Index    int    `json:"index"`
	CCA3     string `json:"cca3,omitempty"`
	Field    string `json:"field"`
	RawValue string `json:"raw_value"`
	Err      error  `json:"-"`
}

func (w Warning) String() string {
	return fmt.Sprintf("record %d (%s): field %s=%q: %v", w.Index, w.CCA3, w.Field, w.RawValue, w.Err)
}

// Result is the outcome of decoding a list payload.
type Result struct {
	Countries []models.CountryOverview
	Warnings  []Warning
}

type wireOverview struct {
	Name        models.Name  `json:"name"`
	CCA3        string       `json:"cca3"`
	Independent bool         `json:"independent"`
	UNMember    bool         `json:"unMember"`
	Region      string       `json:"region"`
	SubRegion   string       `json:"subregion"`
	Area        float64      `json:"area"`
	Population  int64        `json:"population"`
	Flags       models.Flags `json:"flags"`
}

// DecodeOverviews decodes a JSON array of country overviews. Only a payload
// that is not a JSON array is an error.
func DecodeOverviews(data []byte) (Result, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeBadData, "country list is not a JSON array")
	}

	res := Result{Countries: make([]models.CountryOverview, 0, len(elements))}
	for i, raw := range elements {
		c, warn, ok := decodeOverview(i, raw)
		if !ok {
			res.Warnings = append(res.Warnings, warn)
			continue
		}
		res.Countries = append(res.Countries, c)
	}
	return res, nil
}

func decodeOverview(index int, raw json.RawMessage) (models.CountryOverview, Warning, bool) {
	var w wireOverview
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.CountryOverview{}, Warning{Index: index, Field: "record", RawValue: truncate(string(raw)), Err: err}, false
	}

	code, err := models.ParseCCA3(w.CCA3)
	if err != nil {
		return models.CountryOverview{}, Warning{Index: index, Field: "cca3", RawValue: w.CCA3, Err: err}, false
	}
	region, err := models.ParseRegion(w.Region)
	if err != nil {
		return models.CountryOverview{}, Warning{Index: index, CCA3: w.CCA3, Field: "region", RawValue: w.Region, Err: err}, false
	}

	c, err := models.NewCountryOverview(w.Name, code, w.Independent, w.UNMember, region, w.SubRegion, w.Area, w.Population, w.Flags)
	if err != nil {
		return models.CountryOverview{}, Warning{
			Index:    index,
			CCA3:     w.CCA3,
			Field:    "record",
			RawValue: fmt.Sprintf("area=%v population=%d", w.Area, w.Population),
			Err:      err,
		}, false
	}
	return c, Warning{}, true
}

func truncate(s string) string {
	const limit = 120
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
