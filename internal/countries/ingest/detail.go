package ingest

import (
	"encoding/json"

	"worldranks/internal/countries/models"
	dErrors "worldranks/pkg/domain-errors"
)

type wireCountry struct {
	Name       models.Name                `json:"name"`
	Currencies map[string]models.Currency `json:"currencies"`
	Capital    []string                   `json:"capital"`
	Region     string                     `json:"region"`
	SubRegion  *string                    `json:"subregion"`
	Languages  map[string]string          `json:"languages"`
	Borders    []string                   `json:"borders"`
	Area       float64                    `json:"area"`
	Population int64                      `json:"population"`
	Flags      models.Flags               `json:"flags"`
}

// DecodeCountry decodes the detail endpoint's payload, a one-element array.
// Border codes that fail validation are dropped and reported.
func DecodeCountry(data []byte) (models.Country, []Warning, error) {
	var list []wireCountry
	if err := json.Unmarshal(data, &list); err != nil {
		return models.Country{}, nil, dErrors.Wrap(err, dErrors.CodeBadData, "country detail is not a JSON array of countries")
	}
	if len(list) == 0 {
		return models.Country{}, nil, dErrors.New(dErrors.CodeNotFound, "country not found")
	}

	w := list[0]
	c := models.Country{
		Name:       w.Name,
		Currencies: w.Currencies,
		Capital:    w.Capital,
		Region:     w.Region,
		SubRegion:  w.SubRegion,
		Languages:  w.Languages,
		Area:       w.Area,
		Population: w.Population,
		Flags:      w.Flags,
	}

	var warnings []Warning
	for i, raw := range w.Borders {
		code, err := models.ParseCCA3(raw)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Field: "borders", RawValue: raw, Err: err})
			continue
		}
		c.Borders = append(c.Borders, code)
	}
	return c, warnings, nil
}

type wireNeighbour struct {
	Name  models.Name  `json:"name"`
	Flags models.Flags `json:"flags"`
	CCA3  string       `json:"cca3"`
}

// DecodeNeighbours decodes the batched neighbour lookup. Records with an
// invalid code are skipped and reported.
func DecodeNeighbours(data []byte) ([]models.NeighbouringCountry, []Warning, error) {
	var list []wireNeighbour
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeBadData, "neighbour list is not a JSON array")
	}

	out := make([]models.NeighbouringCountry, 0, len(list))
	var warnings []Warning
	for i, w := range list {
		code, err := models.ParseCCA3(w.CCA3)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Field: "cca3", RawValue: w.CCA3, Err: err})
			continue
		}
		out = append(out, models.NeighbouringCountry{Name: w.Name, Flags: w.Flags, CCA3: code})
	}
	return out, warnings, nil
}
