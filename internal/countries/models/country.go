package models

import (
	"fmt"
	"math"

	dErrors "worldranks/pkg/domain-errors"
)

// Name holds the common and official English names of a country.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags holds flag image URLs.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// CountryOverview is one row of the country list. Values are built once by
// NewCountryOverview and passed by value afterwards.
type CountryOverview struct {
	Name        Name    `json:"name"`
	CCA3        CCA3    `json:"cca3"`
	Independent bool    `json:"independent"`
	UNMember    bool    `json:"unMember"`
	Region      Region  `json:"region"`
	SubRegion   string  `json:"subregion"`
	Area        float64 `json:"area"`
	Population  int64   `json:"population"`
	Flags       Flags   `json:"flags"`
}

// FlagImageURL is the flag shown next to the country.
func (c CountryOverview) FlagImageURL() string {
	return c.Flags.SVG
}

// NewCountryOverview enforces the overview invariants. The CCA3 and Region
// arguments are already parsed; the numeric fields are checked here.
func NewCountryOverview(name Name, code CCA3, independent, unMember bool, region Region, subRegion string, area float64, population int64, flags Flags) (CountryOverview, error) {
	if code.IsZero() {
		return CountryOverview{}, dErrors.New(dErrors.CodeInvariantViolation, "country code is required")
	}
	if !region.IsValid() {
		return CountryOverview{}, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("invalid region %q", region))
	}
	if area < 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return CountryOverview{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("area must be a non-negative number, got %v", area))
	}
	if population < 0 {
		return CountryOverview{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("population must be non-negative, got %d", population))
	}
	return CountryOverview{
		Name:        name,
		CCA3:        code,
		Independent: independent,
		UNMember:    unMember,
		Region:      region,
		SubRegion:   subRegion,
		Area:        area,
		Population:  population,
		Flags:       flags,
	}, nil
}

// Currency is one entry of a country's currency map.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Country is the detail record for a single country.
type Country struct {
	Name       Name                `json:"name"`
	Currencies map[string]Currency `json:"currencies,omitempty"`
	Capital    []string            `json:"capital,omitempty"`
	Region     string              `json:"region"`
	SubRegion  *string             `json:"subregion,omitempty"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Borders    []CCA3              `json:"borders,omitempty"`
	Area       float64             `json:"area"`
	Population int64               `json:"population"`
	Flags      Flags               `json:"flags"`
}

// HasBorders reports whether the country has at least one land neighbour.
func (c Country) HasBorders() bool {
	return len(c.Borders) > 0
}

// NeighbouringCountry is the reduced record fetched for each border.
type NeighbouringCountry struct {
	Name  Name  `json:"name"`
	Flags Flags `json:"flags"`
	CCA3  CCA3  `json:"cca3"`
}

// CountryDetail is a country with its resolved land neighbours.
type CountryDetail struct {
	Country    Country
	Neighbours []NeighbouringCountry
}
